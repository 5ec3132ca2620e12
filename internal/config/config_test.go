package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KEY_ID", "SECRET", "ENDPOINT", "REGION", "BUCKET", "TABLE_KEY",
		"QUEUE_URL", "LISTEN_ADDR", "LOG_LEVEL", "ENV", "MERGE_POLICY_FILE",
		"FREE_OS_MEMORY", "SQS_WAIT_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "s3-bucket-dev-lake-analytics", cfg.LakeBucket)
	assert.Equal(t, DefaultTableKey, cfg.TableKey)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20, cfg.WaitTimeSeconds)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.FreeOSMemory)
	assert.NotEmpty(t, cfg.Warnings, "dev bucket fallback and missing creds warn")
}

func TestLoadFromEnvExplicit(t *testing.T) {
	clearEnv(t)
	t.Setenv("KEY_ID", "AKIATEST")
	t.Setenv("SECRET", "shh")
	t.Setenv("REGION", "ap-southeast-1")
	t.Setenv("BUCKET", "lake-prod")
	t.Setenv("TABLE_KEY", "tables/h2h.parquet")
	t.Setenv("QUEUE_URL", "https://sqs.test/queue")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FREE_OS_MEMORY", "true")
	t.Setenv("SQS_WAIT_SECONDS", "10")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.True(t, cfg.HasS3Credentials())
	assert.Equal(t, "lake-prod", cfg.LakeBucket)
	assert.Equal(t, "tables/h2h.parquet", cfg.TableKey)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.True(t, cfg.FreeOSMemory)
	assert.Equal(t, 10, cfg.WaitTimeSeconds)
	assert.Empty(t, cfg.Warnings)
}

func TestWaitSecondsClamped(t *testing.T) {
	clearEnv(t)

	t.Run("over_sqs_maximum", func(t *testing.T) {
		t.Setenv("SQS_WAIT_SECONDS", "45")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.WaitTimeSeconds)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Setenv("SQS_WAIT_SECONDS", "soon")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.WaitTimeSeconds)
	})
}

func TestProductionRequirements(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing_queue_url",
			env:  map[string]string{"REGION": "ap-southeast-1", "BUCKET": "lake"},
			want: "QUEUE_URL",
		},
		{
			name: "missing_region",
			env:  map[string]string{"QUEUE_URL": "https://sqs.test/q", "BUCKET": "lake"},
			want: "REGION",
		},
		{
			name: "missing_bucket",
			env:  map[string]string{"QUEUE_URL": "https://sqs.test/q", "REGION": "ap-southeast-1"},
			want: "BUCKET",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENV", "production")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("complete_production_config_passes", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "production")
		t.Setenv("QUEUE_URL", "https://sqs.test/q")
		t.Setenv("REGION", "ap-southeast-1")
		t.Setenv("BUCKET", "lake")

		cfg, err := LoadFromEnv()

		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
