// Package config handles environment configuration for the consolidator
// worker.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// DefaultTableKey is where the consolidated head-to-head table lives
// inside the lake bucket.
const DefaultTableKey = "bd_bets/head_to_head/head_to_head.parquet"

// Config holds worker configuration. S3 credential fields are optional;
// when empty the SDK's anonymous provider applies, which only works
// against unauthenticated endpoints.
type Config struct {
	S3KeyID    string // access key id (KEY_ID)
	S3Secret   string // secret access key (SECRET)
	S3Endpoint string // custom S3 endpoint host, empty for AWS (ENDPOINT)
	S3Region   string // region (REGION)

	LakeBucket string // bucket holding the consolidated table (BUCKET)
	TableKey   string // object key of the consolidated table (TABLE_KEY)
	QueueURL   string // SQS queue receiving storage notifications (QUEUE_URL)

	ListenAddr string // health listener address (LISTEN_ADDR, default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")
	Env        string // environment: "development" (default) or "production"

	PolicyFile      string // optional YAML odds-policy override (MERGE_POLICY_FILE)
	FreeOSMemory    bool   // return heap pages to the OS between messages (FREE_OS_MEMORY)
	WaitTimeSeconds int    // SQS long-poll duration (SQS_WAIT_SECONDS, default 20)

	// Warnings collects non-fatal warnings generated during config
	// loading. These are logged by the caller after the logger is
	// initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the worker is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// HasS3Credentials returns true if static S3 credentials are set.
func (c *Config) HasS3Credentials() bool {
	return c.S3KeyID != "" && c.S3Secret != ""
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		S3KeyID:      os.Getenv("KEY_ID"),
		S3Secret:     os.Getenv("SECRET"),
		S3Endpoint:   os.Getenv("ENDPOINT"),
		S3Region:     os.Getenv("REGION"),
		LakeBucket:   os.Getenv("BUCKET"),
		TableKey:     os.Getenv("TABLE_KEY"),
		QueueURL:     os.Getenv("QUEUE_URL"),
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		Env:          os.Getenv("ENV"),
		PolicyFile:   os.Getenv("MERGE_POLICY_FILE"),
		FreeOSMemory: strings.EqualFold(os.Getenv("FREE_OS_MEMORY"), "true"),
	}

	if v := os.Getenv("SQS_WAIT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WaitTimeSeconds = n
		}
	}

	// Defaults
	if cfg.LakeBucket == "" {
		cfg.LakeBucket = "s3-bucket-dev-lake-analytics"
		cfg.Warnings = append(cfg.Warnings, "BUCKET not set - using dev lake bucket")
	}
	if cfg.TableKey == "" {
		cfg.TableKey = DefaultTableKey
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WaitTimeSeconds <= 0 || cfg.WaitTimeSeconds > 20 {
		cfg.WaitTimeSeconds = 20
	}
	if !cfg.HasS3Credentials() {
		cfg.Warnings = append(cfg.Warnings, "KEY_ID/SECRET not set - S3 requests will be unauthenticated")
	}

	// Production mode: missing wiring is a fatal error.
	if cfg.IsProduction() {
		if cfg.QueueURL == "" {
			return nil, fmt.Errorf("QUEUE_URL must be set in production (ENV=production)")
		}
		if cfg.S3Region == "" {
			return nil, fmt.Errorf("REGION must be set in production (ENV=production)")
		}
		if os.Getenv("BUCKET") == "" {
			return nil, fmt.Errorf("BUCKET must be set in production (ENV=production)")
		}
	}

	return cfg, nil
}
