package bootstrap

import (
	"context"
	"log/slog"
	"testing"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TableName != "groceries" {
		t.Errorf("expected TableName 'groceries', got %q", cfg.TableName)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected empty Endpoint, got %q", cfg.Endpoint)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected LogLevel info, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		EnvTableName:       "groceries-dev",
		EnvRegion:          "eu-west-1",
		EnvEndpoint:        "http://localhost:8000",
		EnvAccessKeyID:     "local",
		EnvSecretAccessKey: "local-secret",
		EnvLogLevel:        "debug",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TableName != "groceries-dev" {
		t.Errorf("expected TableName 'groceries-dev', got %q", cfg.TableName)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("expected Region 'eu-west-1', got %q", cfg.Region)
	}
	if cfg.Endpoint != "http://localhost:8000" {
		t.Errorf("expected Endpoint 'http://localhost:8000', got %q", cfg.Endpoint)
	}
	if cfg.AccessKeyID != "local" || cfg.SecretAccessKey != "local-secret" {
		t.Errorf("unexpected credentials %q/%q", cfg.AccessKeyID, cfg.SecretAccessKey)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected LogLevel debug, got %v", cfg.LogLevel)
	}
}

func TestLoad_LogLevels(t *testing.T) {
	tests := []struct {
		value    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := load(env(map[string]string{EnvLogLevel: tt.value}))
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if cfg.LogLevel != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, cfg.LogLevel)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	if _, err := load(env(map[string]string{EnvLogLevel: "verbose"})); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	logger := NewLogger(Config{LogLevel: slog.LevelWarn})

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

func TestNewDynamoDBClient_Endpoint(t *testing.T) {
	cfg := Config{
		Region:          "us-east-1",
		Endpoint:        "http://localhost:8000",
		AccessKeyID:     "local",
		SecretAccessKey: "local-secret",
	}

	client, err := NewDynamoDBClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewDynamoDBClient failed: %v", err)
	}

	opts := client.Options()
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:8000" {
		t.Errorf("expected base endpoint override, got %v", opts.BaseEndpoint)
	}
	if opts.Region != "us-east-1" {
		t.Errorf("expected region 'us-east-1', got %q", opts.Region)
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve credentials failed: %v", err)
	}
	if creds.AccessKeyID != "local" {
		t.Errorf("expected static access key 'local', got %q", creds.AccessKeyID)
	}
}
