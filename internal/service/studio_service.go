package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/domain"
	"github.com/Tobiscuit/threechicks-admin-api/internal/genai"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository"
	"github.com/Tobiscuit/threechicks-admin-api/pkg/errors"
)

// Drafts are short-lived; the token is handed to the admin UI and must be
// redeemed before expiry.
const draftTTL = 30 * time.Minute

type studioService struct {
	gen    *genai.Client
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewStudioService creates a new studio service
func NewStudioService(gen *genai.Client, repos *repository.Repositories, logger *zap.Logger) *studioService {
	return &studioService{
		gen:    gen,
		repos:  repos,
		logger: logger,
	}
}

// Expected model output for a details generation. Decoded strictly; if the
// model returns anything else the caller gets the single deterministic
// fallback draft, never a partially repaired one.
type generatedDetails struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PriceCents  *int     `json:"price_cents"`
	Reasoning   string   `json:"reasoning"`
}

type rewrittenDescription struct {
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`
}

// GenerateDetails builds a product draft from candle photos plus operator
// notes. The draft is persisted under a fresh token so the UI can redeem it
// later without re-running the model.
func (s *studioService) GenerateDetails(ctx context.Context, notes string, images []genai.ImageInput) (*domain.ProductDraft, error) {
	if !s.gen.Configured() {
		return nil, &errors.ErrValidation{Message: "generative features are not configured"}
	}
	if len(images) == 0 {
		return nil, &errors.ErrValidation{Message: "at least one product image is required"}
	}

	prompt := buildDetailsPrompt(notes)
	raw, err := s.gen.Generate(ctx, prompt, images...)
	if err != nil {
		return nil, err
	}

	draft := domain.ProductDraft{
		Token:     uuid.New(),
		ExpiresAt: time.Now().UTC().Add(draftTTL),
	}

	details, decodeErr := decodeStrict[generatedDetails](raw)
	if decodeErr != nil || details.Title == "" || details.Description == "" {
		s.logger.Warn("Model output did not match the details schema, using fallback",
			zap.Error(decodeErr),
			zap.Int("raw_len", len(raw)),
		)
		draft.Title = "Untitled Candle"
		draft.Description = strings.TrimSpace(notes)
		draft.Tags = []string{"magic-request"}
		draft.Reasoning = "model output could not be parsed"
	} else {
		draft.Title = details.Title
		draft.Description = details.Description
		draft.Tags = details.Tags
		draft.PriceCents = details.PriceCents
		draft.Reasoning = details.Reasoning
	}

	if err := s.repos.ProductDraft.Create(ctx, &draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	return &draft, nil
}

// GetDraft redeems a draft token. Expired drafts read as not found.
func (s *studioService) GetDraft(ctx context.Context, token uuid.UUID) (*domain.ProductDraft, error) {
	return s.repos.ProductDraft.GetByToken(ctx, token)
}

// RewriteDescription asks the model for a tightened description and records
// the before/after pair. On schema mismatch the original text is returned
// untouched so the caller never ships mangled copy.
func (s *studioService) RewriteDescription(ctx context.Context, productID, original, tone, requestedBy string) (*domain.DescriptionRevision, error) {
	if !s.gen.Configured() {
		return nil, &errors.ErrValidation{Message: "generative features are not configured"}
	}
	if strings.TrimSpace(original) == "" {
		return nil, &errors.ErrValidation{Message: "original description is required"}
	}

	prompt := buildRewritePrompt(original, tone)
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	rev := domain.DescriptionRevision{
		ID:          uuid.New(),
		ProductID:   productID,
		Original:    original,
		RequestedBy: requestedBy,
	}

	out, decodeErr := decodeStrict[rewrittenDescription](raw)
	if decodeErr != nil || out.Description == "" {
		s.logger.Warn("Model output did not match the rewrite schema, keeping original",
			zap.String("product_id", productID),
			zap.Error(decodeErr),
		)
		rev.Rewritten = original
		rev.Reasoning = "model output could not be parsed"
	} else {
		rev.Rewritten = out.Description
		rev.Reasoning = out.Reasoning
	}

	if err := s.repos.DescriptionHistory.Create(ctx, &rev); err != nil {
		return nil, fmt.Errorf("failed to record revision: %w", err)
	}
	return &rev, nil
}

// ListRevisions returns past rewrites for a product, newest first.
func (s *studioService) ListRevisions(ctx context.Context, productID string, limit int) ([]*domain.DescriptionRevision, error) {
	return s.repos.DescriptionHistory.ListByProduct(ctx, productID, limit)
}

// decodeStrict unmarshals model output with unknown fields rejected. The only
// leniency allowed is stripping a markdown code fence; no other repair.
func decodeStrict[T any](raw string) (*T, error) {
	text := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	var out T
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func buildDetailsPrompt(notes string) string {
	var b strings.Builder
	b.WriteString("You are writing a product listing for a handmade candle shop.\n")
	b.WriteString("Study the attached photos and the maker's notes, then respond with a single JSON object and nothing else.\n")
	b.WriteString("Schema: {\"title\": string, \"description\": string, \"tags\": [string], \"price_cents\": integer or null, \"reasoning\": string}\n")
	b.WriteString("Keep the title under 60 characters. Tags are lowercase, hyphenated.\n")
	if strings.TrimSpace(notes) != "" {
		b.WriteString("Maker's notes: ")
		b.WriteString(strings.TrimSpace(notes))
		b.WriteString("\n")
	}
	return b.String()
}

func buildRewritePrompt(original, tone string) string {
	var b strings.Builder
	b.WriteString("Rewrite this candle product description. Respond with a single JSON object and nothing else.\n")
	b.WriteString("Schema: {\"description\": string, \"reasoning\": string}\n")
	if strings.TrimSpace(tone) != "" {
		b.WriteString("Desired tone: ")
		b.WriteString(strings.TrimSpace(tone))
		b.WriteString("\n")
	}
	b.WriteString("Original description:\n")
	b.WriteString(original)
	return b.String()
}
