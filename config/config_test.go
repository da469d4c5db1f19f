package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AWS_S3_BUCKET", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "test", cfg.GoEnv)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.HasPersistence())
	assert.False(t, cfg.HasS3())
}

func TestHasSupabase(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		key      string
		expected bool
	}{
		{"both set", "https://abc.supabase.co", "anon-key", true},
		{"missing key", "https://abc.supabase.co", "", false},
		{"missing url", "", "anon-key", false},
		{"both missing", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SupabaseURL: tt.url, SupabaseAnonKey: tt.key}
			assert.Equal(t, tt.expected, cfg.HasSupabase())
			assert.Equal(t, tt.expected, cfg.HasPersistence())
		})
	}
}

func TestHasPersistenceWithDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgresql://localhost:5432/printshop"}
	assert.True(t, cfg.HasDatabase())
	assert.True(t, cfg.HasPersistence())
	assert.False(t, cfg.HasSupabase())
}

func TestHasS3(t *testing.T) {
	cfg := &Config{
		AWSRegion:          "us-east-1",
		AWSS3Bucket:        "printshop-designs",
		AWSAccessKeyID:     "AKIA123",
		AWSSecretAccessKey: "secret",
	}
	assert.True(t, cfg.HasS3())

	cfg.AWSS3Bucket = ""
	assert.False(t, cfg.HasS3())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "anon-key", cfg.SupabaseAnonKey)
	assert.True(t, cfg.HasPersistence())
}
