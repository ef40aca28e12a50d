package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Store backends selectable with INTAKE_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Store       string     // INTAKE_STORE (default "memory"; "memory" or "postgres")
	DatabaseURL string     // INTAKE_DATABASE_URL (required when Store is postgres)
	GRPCAddr    string     // INTAKE_GRPC_ADDR (default ":9090")
	HTTPAddr    string     // INTAKE_HTTP_ADDR (default ":8080")
	NATSURL     string     // INTAKE_NATS_URL (optional, empty = no events)
	DefaultUser string     // INTAKE_DEFAULT_USER (default "default-user")
	LogLevel    slog.Level // INTAKE_LOG_LEVEL (default "info")

	// Sync settings
	SyncInterval   time.Duration // INTAKE_SYNC_INTERVAL (default 0 = disabled)
	SyncS3Bucket   string        // INTAKE_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // INTAKE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // INTAKE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // INTAKE_SYNC_S3_KEY (default "intake/events.jsonl")
	SyncGitRepo    string        // INTAKE_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // INTAKE_SYNC_GIT_FILE (default "events.jsonl")
	SyncGitBranch  string        // INTAKE_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		Store:          strings.ToLower(envOrDefault("INTAKE_STORE", StoreMemory)),
		DatabaseURL:    os.Getenv("INTAKE_DATABASE_URL"),
		GRPCAddr:       envOrDefault("INTAKE_GRPC_ADDR", ":9090"),
		HTTPAddr:       envOrDefault("INTAKE_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("INTAKE_NATS_URL"),
		DefaultUser:    envOrDefault("INTAKE_DEFAULT_USER", "default-user"),
		SyncS3Bucket:   os.Getenv("INTAKE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("INTAKE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("INTAKE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("INTAKE_SYNC_S3_KEY", "intake/events.jsonl"),
		SyncGitRepo:    os.Getenv("INTAKE_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("INTAKE_SYNC_GIT_FILE", "events.jsonl"),
		SyncGitBranch:  envOrDefault("INTAKE_SYNC_GIT_BRANCH", "main"),
	}

	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("INTAKE_DATABASE_URL is required when INTAKE_STORE=%s", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("INTAKE_STORE: unknown store %q (want %s or %s)", c.Store, StoreMemory, StorePostgres)
	}

	if err := c.LogLevel.UnmarshalText([]byte(envOrDefault("INTAKE_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("INTAKE_LOG_LEVEL: %w", err)
	}

	intervalStr := envOrDefault("INTAKE_SYNC_INTERVAL", "0")
	d, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("INTAKE_SYNC_INTERVAL: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("INTAKE_SYNC_INTERVAL: must not be negative, got %s", d)
	}
	c.SyncInterval = d

	return c, nil
}

// SyncEnabled reports whether a periodic export is configured.
func (c *Config) SyncEnabled() bool {
	return c.SyncInterval > 0 && (c.SyncS3Bucket != "" || c.SyncGitRepo != "")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
