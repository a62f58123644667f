package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/notegen/internal/chunker"
)

type Config struct {
	Port string

	// Notestore connection
	NotestoreURL    string
	NotestoreAPIKey string

	// Auth
	NotegenAPIKey string

	// Groq generation
	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	// Worker pool
	WorkerCount           int
	MaxQueueSize          int
	MaxConcurrentGenerate int

	// Upload limits
	MaxUploadBytes int64

	// Notes structure
	NotesMaxWords int

	// Chunk sizing by transcript length
	ChunkSize         int
	LongThreshold     int
	LongChunkSize     int
	VeryLongThreshold int
	VeryLongChunkSize int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		NotestoreURL:    envOr("NOTESTORE_URL", "http://localhost:8080"),
		NotestoreAPIKey: os.Getenv("NOTESTORE_API_KEY"),

		NotegenAPIKey: os.Getenv("NOTEGEN_API_KEY"),

		GroqAPIKey:  os.Getenv("GROQ_API_KEY"),
		GroqModel:   envOr("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqBaseURL: os.Getenv("GROQ_BASE_URL"),

		WorkerCount:           envInt("WORKER_COUNT", 4),
		MaxQueueSize:          envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentGenerate: envInt("MAX_CONCURRENT_GENERATE", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		NotesMaxWords: envInt("NOTES_MAX_WORDS", 50),

		ChunkSize:         envInt("CHUNK_SIZE", 15000),
		LongThreshold:     envInt("LONG_THRESHOLD", 20000),
		LongChunkSize:     envInt("LONG_CHUNK_SIZE", 12000),
		VeryLongThreshold: envInt("VERY_LONG_THRESHOLD", 50000),
		VeryLongChunkSize: envInt("VERY_LONG_CHUNK_SIZE", 8000),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentGenerate <= 0 {
		cfg.MaxConcurrentGenerate = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.NotesMaxWords <= 0 {
		cfg.NotesMaxWords = 50
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 15000
	}
	if cfg.LongChunkSize <= 0 {
		cfg.LongChunkSize = 12000
	}
	if cfg.VeryLongChunkSize <= 0 {
		cfg.VeryLongChunkSize = 8000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.NotestoreAPIKey == "" {
		return fmt.Errorf("NOTESTORE_API_KEY is required")
	}
	if c.NotegenAPIKey == "" {
		return fmt.Errorf("NOTEGEN_API_KEY is required")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return c.ChunkerConfig().Validate()
}

// ChunkerConfig builds the transcript chunking configuration from the
// length thresholds.
func (c Config) ChunkerConfig() chunker.Config {
	return chunker.Config{
		DefaultChunkSize: c.ChunkSize,
		Thresholds: []chunker.Threshold{
			{MinChars: c.LongThreshold, ChunkSize: c.LongChunkSize},
			{MinChars: c.VeryLongThreshold, ChunkSize: c.VeryLongChunkSize},
		},
	}
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
