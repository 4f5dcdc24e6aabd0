package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	PromptDurationSeconds    int
	VoteDurationSeconds      int
	MaxRounds                int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	ImageAPIKey              string
	ImageAPIURL              string
	ImageModel               string
	ImageSize                string
}

func Default() Config {
	return Config{
		PromptDurationSeconds:    60,
		VoteDurationSeconds:      30,
		MaxRounds:                3,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		ImageAPIURL:              "https://api.openai.com/v1/images/generations",
		ImageModel:               "dall-e-2",
		ImageSize:                "512x512",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PROMPT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.PromptDurationSeconds = value
		}
	}
	if raw := os.Getenv("VOTE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.VoteDurationSeconds = value
		}
	}
	if raw := os.Getenv("MAX_ROUNDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxRounds = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("IMAGE_API_KEY"); raw != "" {
		cfg.ImageAPIKey = raw
	}
	if raw := os.Getenv("IMAGE_API_URL"); raw != "" {
		cfg.ImageAPIURL = raw
	}
	if raw := os.Getenv("IMAGE_MODEL"); raw != "" {
		cfg.ImageModel = raw
	}
	if raw := os.Getenv("IMAGE_SIZE"); raw != "" {
		cfg.ImageSize = raw
	}
	return cfg
}
