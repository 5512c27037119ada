package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the analyzer
type Config struct {
	Corpus  CorpusConfig
	Lexicon LexiconConfig
	Search  SearchConfig
	Log     LogConfig
}

// CorpusConfig describes the verse table on disk
type CorpusConfig struct {
	Path      string
	Delimiter string
}

// LexiconConfig points at an optional YAML fruit lexicon. An empty path
// selects the built-in lexicon.
type LexiconConfig struct {
	Path string
}

// SearchConfig holds similarity search settings
type SearchConfig struct {
	TopN int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string
	Format     string
	Timestamps bool
}

// Load loads configuration from environment variables with defaults.
// Variables from a .env file in the working directory are applied first
// without overriding the real environment. A missing .env is fine; an
// unreadable or malformed one is reported and skipped.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("Ignoring unreadable .env file")
	}

	return &Config{
		Corpus: CorpusConfig{
			Path:      GetStringEnv("CORPUS_PATH", "quran_verses.csv"),
			Delimiter: GetStringEnv("CORPUS_DELIMITER", ","),
		},
		Lexicon: LexiconConfig{
			Path: GetStringEnv("LEXICON_PATH", ""),
		},
		Search: SearchConfig{
			TopN: GetIntEnv("SEARCH_TOP_N", 5),
		},
		Log: LogConfig{
			Level:      GetStringEnv("LOG_LEVEL", "info"),
			Format:     GetStringEnv("LOG_FORMAT", "text"),
			Timestamps: GetBoolEnv("LOG_TIMESTAMPS", true),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
