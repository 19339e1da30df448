package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // development, production

	// Upload limits
	MaxUploadBytes int64
	MaxPixels      int64
	MaxDimension   int

	// Re-encode tuning
	JPEGQuality    int
	GIFPaletteSize int

	// Batch processing
	BatchParallelism int
}

func Load() (*Config, error) {
	// Load .env file if it exists (don't error if missing)
	_ = godotenv.Load()

	cfg := &Config{}

	// Define flags with env var fallbacks
	flag.StringVar(&cfg.Port, "port", getEnv("PORT", "8080"), "Server port")
	flag.StringVar(&cfg.Env, "env", getEnv("ENV", "development"), "Environment (development, production)")

	cfg.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", 512<<20)
	cfg.MaxPixels = getEnvInt64("MAX_PIXELS", 256<<20)
	cfg.MaxDimension = getEnvInt("MAX_DIMENSION", 65500)
	cfg.JPEGQuality = getEnvInt("JPEG_QUALITY", 95)
	cfg.GIFPaletteSize = getEnvInt("GIF_PALETTE_SIZE", 256)
	cfg.BatchParallelism = getEnvInt("BATCH_PARALLELISM", 4)

	flag.Parse()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEG_QUALITY must be between 1 and 100")
	}
	if c.GIFPaletteSize < 2 || c.GIFPaletteSize > 256 {
		return fmt.Errorf("GIF_PALETTE_SIZE must be between 2 and 256")
	}
	if c.BatchParallelism < 1 {
		return fmt.Errorf("BATCH_PARALLELISM must be at least 1")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
