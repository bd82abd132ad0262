package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/genai"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

type memDraftRepo struct {
	drafts map[uuid.UUID]*domain.ProductDraft
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{drafts: make(map[uuid.UUID]*domain.ProductDraft)}
}

func (m *memDraftRepo) Create(ctx context.Context, d *domain.ProductDraft) error {
	cp := *d
	m.drafts[d.Token] = &cp
	return nil
}

func (m *memDraftRepo) GetByToken(ctx context.Context, token uuid.UUID) (*domain.ProductDraft, error) {
	d, ok := m.drafts[token]
	if !ok || d.ExpiresAt.Before(time.Now()) {
		return nil, &errors.ErrNotFound{Resource: "draft", ID: token.String()}
	}
	return d, nil
}

func (m *memDraftRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	for token, d := range m.drafts {
		if d.ExpiresAt.Before(now) {
			delete(m.drafts, token)
			n++
		}
	}
	return n, nil
}

type memHistoryRepo struct {
	revisions []*domain.DescriptionRevision
}

func (m *memHistoryRepo) Create(ctx context.Context, rev *domain.DescriptionRevision) error {
	m.revisions = append(m.revisions, rev)
	return nil
}

func (m *memHistoryRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*domain.DescriptionRevision, error) {
	out := []*domain.DescriptionRevision{}
	for _, r := range m.revisions {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

// genaiStub answers every generateContent call with the given text.
func genaiStub(text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
	}))
}

func studioFixture(t *testing.T, modelOutput string) (*studioService, *memDraftRepo, *memHistoryRepo, func()) {
	srv := genaiStub(modelOutput)
	gen := genai.NewClientWithBaseURL(srv.URL, config.GenAIConfig{APIKey: "test-key", Model: "test-model"}, zap.NewNop())
	drafts := newMemDraftRepo()
	history := &memHistoryRepo{}
	repos := &repository.Repositories{ProductDraft: drafts, DescriptionHistory: history}
	return NewStudioService(gen, repos, zap.NewNop()), drafts, history, srv.Close
}

func TestGenerateDetails_WellFormedOutput(t *testing.T) {
	output := `{"title":"Lavender Dream","description":"A calming lavender candle.","tags":["lavender","calm"],"price_cents":2450,"reasoning":"mid-range pricing"}`
	svc, drafts, _, done := studioFixture(t, output)
	defer done()

	img := genai.ImageInput{MIMEType: "image/jpeg", Data: []byte("fake-jpeg")}
	draft, err := svc.GenerateDetails(context.Background(), "lavender, purple jar", []genai.ImageInput{img})
	require.NoError(t, err)

	assert.Equal(t, "Lavender Dream", draft.Title)
	assert.Equal(t, "A calming lavender candle.", draft.Description)
	assert.Equal(t, []string{"lavender", "calm"}, draft.Tags)
	require.NotNil(t, draft.PriceCents)
	assert.Equal(t, 2450, *draft.PriceCents)
	assert.NotEqual(t, uuid.Nil, draft.Token)
	assert.True(t, draft.ExpiresAt.After(time.Now()))

	// Stored and redeemable by token
	stored, err := svc.GetDraft(context.Background(), draft.Token)
	require.NoError(t, err)
	assert.Equal(t, draft.Title, stored.Title)
	assert.Len(t, drafts.drafts, 1)
}

func TestGenerateDetails_CodeFencedOutput(t *testing.T) {
	output := "```json\n{\"title\":\"Sea Salt\",\"description\":\"Ocean breeze.\",\"tags\":[],\"price_cents\":null,\"reasoning\":\"\"}\n```"
	svc, _, _, done := studioFixture(t, output)
	defer done()

	img := genai.ImageInput{MIMEType: "image/png", Data: []byte("fake-png")}
	draft, err := svc.GenerateDetails(context.Background(), "", []genai.ImageInput{img})
	require.NoError(t, err)
	assert.Equal(t, "Sea Salt", draft.Title)
	assert.Nil(t, draft.PriceCents)
}

func TestGenerateDetails_MalformedOutputFallsBack(t *testing.T) {
	cases := []string{
		`Sure! Here is a title: Lavender Dream`,
		`{"title":"X","description":"Y","unexpected_field":true}`,
		`{"title":"","description":""}`,
	}
	for _, output := range cases {
		svc, _, _, done := studioFixture(t, output)

		img := genai.ImageInput{MIMEType: "image/jpeg", Data: []byte("fake")}
		draft, err := svc.GenerateDetails(context.Background(), "some notes", []genai.ImageInput{img})
		require.NoError(t, err, "output: %s", output)

		assert.Equal(t, "Untitled Candle", draft.Title, "output: %s", output)
		assert.Equal(t, "some notes", draft.Description)
		assert.Equal(t, "model output could not be parsed", draft.Reasoning)
		done()
	}
}

func TestGenerateDetails_RequiresImage(t *testing.T) {
	svc, _, _, done := studioFixture(t, `{}`)
	defer done()

	_, err := svc.GenerateDetails(context.Background(), "notes", nil)
	var vErr *errors.ErrValidation
	assert.ErrorAs(t, err, &vErr)
}

func TestRewriteDescription_WellFormedOutput(t *testing.T) {
	output := `{"description":"Tighter copy.","reasoning":"removed filler"}`
	svc, _, history, done := studioFixture(t, output)
	defer done()

	rev, err := svc.RewriteDescription(context.Background(), "gid://shopify/Product/1", "Original copy here.", "playful", "admin@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Tighter copy.", rev.Rewritten)
	assert.Equal(t, "removed filler", rev.Reasoning)
	assert.Equal(t, "Original copy here.", rev.Original)
	assert.Equal(t, "admin@example.com", rev.RequestedBy)
	assert.Len(t, history.revisions, 1)
}

func TestRewriteDescription_MalformedOutputKeepsOriginal(t *testing.T) {
	svc, _, history, done := studioFixture(t, `I improved your description: much better now!`)
	defer done()

	rev, err := svc.RewriteDescription(context.Background(), "gid://shopify/Product/1", "Original copy here.", "", "admin@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Original copy here.", rev.Rewritten, "mangled model output must never replace the description")
	assert.Equal(t, "model output could not be parsed", rev.Reasoning)
	assert.Len(t, history.revisions, 1, "failed rewrites still leave an audit row")
}

func TestDraftPurge(t *testing.T) {
	drafts := newMemDraftRepo()
	expired := &domain.ProductDraft{Token: uuid.New(), Title: "old", ExpiresAt: time.Now().Add(-time.Hour)}
	live := &domain.ProductDraft{Token: uuid.New(), Title: "new", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, drafts.Create(context.Background(), expired))
	require.NoError(t, drafts.Create(context.Background(), live))

	repos := &repository.Repositories{ProductDraft: drafts}
	RunDraftPurgeOnce(context.Background(), repos, zap.NewNop())

	assert.Len(t, drafts.drafts, 1)
	_, ok := drafts.drafts[live.Token]
	assert.True(t, ok)
}
