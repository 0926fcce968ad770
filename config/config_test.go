package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "chromedp", cfg.PDFEngine)
	assert.Equal(t, 90*time.Second, cfg.PDFTimeout)
	assert.Equal(t, 1, cfg.PDFRetries)
	assert.Equal(t, "drive", cfg.UploadBackend)
	assert.Equal(t, "static", cfg.SellerStore)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, 12*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.AuthEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("PDF_ENGINE", "gofpdf")
	t.Setenv("PDF_TIMEOUT", "30s")
	t.Setenv("CACHE_SIZE", "10")
	t.Setenv("CHROME_NO_SANDBOX", "false")
	t.Setenv("APP_PASSWORD_HASH", "$2a$10$abc")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "gofpdf", cfg.PDFEngine)
	assert.Equal(t, 30*time.Second, cfg.PDFTimeout)
	assert.Equal(t, 10, cfg.CacheSize)
	assert.False(t, cfg.ChromeNoSandbox)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		msg  string
	}{
		{"bad duration", "PDF_TIMEOUT", "ninety", "PDF_TIMEOUT"},
		{"bad int", "CACHE_SIZE", "many", "CACHE_SIZE"},
		{"bad bool", "CHROME_NO_SANDBOX", "maybe", "CHROME_NO_SANDBOX"},
		{"unknown engine", "PDF_ENGINE", "latex", "PDF_ENGINE"},
		{"unknown backend", "UPLOAD_BACKEND", "ftp", "UPLOAD_BACKEND"},
		{"r2 without bucket", "UPLOAD_BACKEND", "r2", "R2_BUCKET"},
		{"postgres without url", "SELLER_STORE", "postgres", "POSTGRES_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
