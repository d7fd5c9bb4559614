package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultMaxUploadBytes = 16 << 20 // 16 MiB

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	BlobStoreType     string
	LocalStoreDir     string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	MetadataStoreType string
	DynamoTable       string
	DatabaseURL       string
	IdentityProvider  string
	CognitoPoolID     string
	CognitoClientID   string
	CognitoSecret     string
	MaxUploadBytes    int64
	AllowedExtensions []string
	PresignTTL        time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	metadataStore := normalizeMetadataStore(getEnv("METADATA_STORE", "memory"))

	if env == "production" && metadataStore == "postgres" && dbURL == "" {
		log.Printf("DATABASE_URL is required when METADATA_STORE=postgres")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		BlobStoreType:     normalizeBlobStore(getEnv("BLOB_STORE", "local")),
		LocalStoreDir:     getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:         getEnv("AWS_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", ""),
		MetadataStoreType: metadataStore,
		DynamoTable:       getEnv("DYNAMODB_TABLE", "image-metadata"),
		DatabaseURL:       dbURL,
		IdentityProvider:  normalizeIdentityProvider(getEnv("IDENTITY_PROVIDER", "memory")),
		CognitoPoolID:     getEnv("COGNITO_USER_POOL_ID", ""),
		CognitoClientID:   getEnv("COGNITO_CLIENT_ID", ""),
		CognitoSecret:     getEnv("COGNITO_CLIENT_SECRET", ""),
		MaxUploadBytes:    getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		AllowedExtensions: splitAndTrim(getEnv("ALLOWED_EXTENSIONS", "png,jpg,jpeg,gif,webp")),
		PresignTTL:        getEnvDuration("PRESIGN_TTL", time.Hour),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid, using default %d", key, def)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config: %s invalid, using default %s", key, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeBlobStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeMetadataStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dynamo", "dynamodb":
		return "dynamo"
	case "postgres", "pg":
		return "postgres"
	default:
		return "memory"
	}
}

func normalizeIdentityProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cognito":
		return "cognito"
	default:
		return "memory"
	}
}
