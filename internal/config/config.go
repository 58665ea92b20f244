package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Gemini generation
	GeminiAPIKey string
	GeminiModel  string

	// Generation pacing
	BatchSize       int
	MinCallDelay    time.Duration
	MaxSessionCalls int

	// Reference chunking
	MaxChunkSize int
	MaxChunks    int

	// Answer formatting
	CodeWrapWidth       int
	ProgrammingSubjects []string

	// Upload limits
	MaxUploadBytes int64

	// Persistence
	OutputDir   string
	HistoryPath string

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("ANSWERFORGE_API_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),

		BatchSize:       envInt("BATCH_SIZE", 3),
		MinCallDelay:    envDuration("MIN_CALL_DELAY", 2*time.Second),
		MaxSessionCalls: envInt("MAX_SESSION_CALLS", 50),

		MaxChunkSize: envInt("MAX_CHUNK_SIZE", 2000),
		MaxChunks:    envInt("MAX_CHUNKS", 5),

		CodeWrapWidth:       envInt("CODE_WRAP_WIDTH", 76),
		ProgrammingSubjects: envList("PROGRAMMING_SUBJECTS"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		OutputDir:   envOr("OUTPUT_DIR", "data"),
		HistoryPath: envOr("HISTORY_PATH", "data/history.jsonl"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.BatchSize > 5 {
		cfg.BatchSize = 5
	}
	if cfg.MinCallDelay < 0 {
		cfg.MinCallDelay = 0
	}
	if cfg.MaxSessionCalls <= 0 {
		cfg.MaxSessionCalls = 50
	}
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = 2000
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = 5
	}
	if cfg.CodeWrapWidth <= 0 {
		cfg.CodeWrapWidth = 76
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
