// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// UploadDir is the filesystem root for the blob store
	// (one subdirectory per owner).
	UploadDir string

	// JWTSecret signs issued bearer tokens.
	JWTSecret string

	// TokenTTL is the validity duration of issued tokens.
	TokenTTL time.Duration

	// OpenAIKey authenticates transcription and summarization calls.
	OpenAIKey string

	// ChatModel is the chat-completion model used for summaries.
	ChatModel string

	// GoogleClientID, when set, is checked against the audience claim
	// of Google ID tokens presented to /auth/google.
	GoogleClientID string

	// BlobBackend selects the blob store: "fs" (default) or "s3".
	BlobBackend string

	// S3 settings, used when BlobBackend is "s3". Endpoint may point
	// at a MinIO instance.
	S3Region   string
	S3Bucket   string
	S3Endpoint string
	S3User     string
	S3Password string
}

// options holds the current configuration values.
var options = &Options{TokenTTL: 24 * time.Hour}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.UploadDir, "u", "uploads", "blob store root directory")
	flag.StringVar(&options.BlobBackend, "b", "fs", "blob store backend (fs or s3)")
}

// Parse parses command-line flags and environment variables to set
// configuration values. A .env file, if present, is loaded first.
// Secrets come from the environment only. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	// Load .env if present; fall back to the process environment.
	_ = godotenv.Load()

	flag.Parse()
	applyEnv(options)

	return options
}

// applyEnv overrides flag values with environment variables where set.
// Secrets are read from the environment only.
func applyEnv(o *Options) {
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		o.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		o.UploadDir = dir
	}
	if backend := os.Getenv("BLOB_BACKEND"); backend != "" {
		o.BlobBackend = backend
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			o.TokenTTL = d
		}
	}

	o.JWTSecret = os.Getenv("JWT_SECRET")
	o.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	o.ChatModel = os.Getenv("OPENAI_CHAT_MODEL")
	o.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	o.S3Region = os.Getenv("S3_REGION")
	o.S3Bucket = os.Getenv("S3_BUCKET")
	o.S3Endpoint = os.Getenv("S3_ENDPOINT")
	o.S3User = os.Getenv("S3_USER")
	o.S3Password = os.Getenv("S3_PASSWORD")
}
