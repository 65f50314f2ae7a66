package common

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Dirs   DirConfig
	LLM    LLMConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Addr string
}

// DirConfig holds the directories the application writes to
type DirConfig struct {
	UploadDir  string
	ExportDir  string
	HistoryDir string
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("ADDR", ":8080"),
		},
		Dirs: DirConfig{
			UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
			ExportDir:  getEnv("EXPORT_DIR", "exports"),
			HistoryDir: getEnv("HISTORY_DIR", "extraction_history"),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.05),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 3000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("OPENAI_API_KEY is required")
	}
	if c.Server.Addr == "" {
		return errors.New("ADDR is required")
	}
	return nil
}
