package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresShopifyCredentials(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "test.myshopify.com")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "shpat_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.UseAPrefix)
}

func TestLoad_APrefixIndirection(t *testing.T) {
	t.Setenv("USE_A_PREFIX", "true")
	t.Setenv("SHOPIFY_STORE_URL", "primary.myshopify.com")
	t.Setenv("A_SHOPIFY_STORE_URL", "secondary.myshopify.com")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "shpat_primary")
	t.Setenv("A_SHOPIFY_ADMIN_TOKEN", "shpat_secondary")
	t.Setenv("DB_NAME", "primarydb")

	cfg, err := Load()
	require.NoError(t, err)

	// A_-prefixed values win when present
	assert.Equal(t, "secondary.myshopify.com", cfg.Shopify.StoreURL)
	assert.Equal(t, "shpat_secondary", cfg.Shopify.AdminToken)
	// Bare names still apply when no alias exists
	assert.Equal(t, "primarydb", cfg.Database.DBName)
	assert.True(t, cfg.UseAPrefix)
}

func TestLoad_APrefixIgnoredWhenOff(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "primary.myshopify.com")
	t.Setenv("A_SHOPIFY_STORE_URL", "secondary.myshopify.com")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "shpat_primary")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary.myshopify.com", cfg.Shopify.StoreURL)
}

func TestLoad_AuthorizedEmails(t *testing.T) {
	t.Setenv("SHOPIFY_STORE_URL", "test.myshopify.com")
	t.Setenv("SHOPIFY_ADMIN_TOKEN", "shpat_test")
	t.Setenv("AUTHORIZED_EMAILS", "a@example.com, b@example.com ,,c@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, cfg.AuthorizedEmails)
	assert.True(t, cfg.IsEmailAuthorized("A@Example.com"))
	assert.False(t, cfg.IsEmailAuthorized("intruder@example.com"))
}
