// Package bootstrap wires configuration, logging and the DynamoDB client
// for the Lambda entry points under cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/groceries/handler"
	"github.com/jacentio/groceries/store"
)

// Environment variables read by Load.
const (
	EnvTableName       = "TABLE_NAME"
	EnvRegion          = "AWS_REGION"
	EnvEndpoint        = "DYNAMODB_ENDPOINT"
	EnvAccessKeyID     = "DYNAMODB_ACCESS_KEY_ID"
	EnvSecretAccessKey = "DYNAMODB_SECRET_ACCESS_KEY"
	EnvLogLevel        = "LOG_LEVEL"
)

// Config holds runtime settings for a grocery Lambda.
type Config struct {
	// TableName is the grocery table. Default: "groceries"
	TableName string

	// Region overrides the SDK's region resolution when set.
	Region string

	// Endpoint is an optional DynamoDB base endpoint, e.g. DynamoDB Local
	// at http://localhost:8000. Empty uses the regional AWS endpoint.
	Endpoint string

	// AccessKeyID and SecretAccessKey are static credentials used only
	// together with Endpoint. Otherwise the SDK default chain applies.
	AccessKeyID     string
	SecretAccessKey string

	// LogLevel is one of debug, info, warn, error. Default: info
	LogLevel slog.Level
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		TableName:       getenv(EnvTableName),
		Region:          getenv(EnvRegion),
		Endpoint:        getenv(EnvEndpoint),
		AccessKeyID:     getenv(EnvAccessKeyID),
		SecretAccessKey: getenv(EnvSecretAccessKey),
		LogLevel:        slog.LevelInfo,
	}
	if cfg.TableName == "" {
		cfg.TableName = store.DefaultTableName
	}
	if lvl := strings.TrimSpace(getenv(EnvLogLevel)); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}

// NewLogger returns a JSON logger on stdout at the configured level.
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

// NewDynamoDBClient builds a DynamoDB client from the SDK default
// configuration, applying the region, endpoint and static credentials
// overrides from cfg.
func NewDynamoDBClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" && cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewHandler loads the configuration and returns a ready handler.
// The DynamoDB client is created once and shared by all invocations.
func NewHandler(ctx context.Context) (*handler.Handler, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg)

	client, err := NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("handler initialized",
		"table", cfg.TableName,
		"endpoint", cfg.Endpoint,
	)

	return handler.NewHandler(store.New(client, store.Config{TableName: cfg.TableName}), logger), nil
}
