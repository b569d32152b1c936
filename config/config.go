package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ammarakk/todo-backend/pkg/constant"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	JWTSecret        string
	AccessExpiryMin  int
	RefreshExpiryMin int
	BcryptCost       int
}

// Load reads configuration from the environment, with an optional .env file
// for local development. The signing secret is validated here so a weak
// secret is rejected at boot, not on first token issuance.
func Load() (*Config, error) {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBURL:            os.Getenv("DB_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AccessExpiryMin:  getEnvAsInt("ACCESS_TOKEN_EXPIRY", 15),
		RefreshExpiryMin: getEnvAsInt("REFRESH_TOKEN_EXPIRY", 10080),
		BcryptCost:       getEnvAsInt("BCRYPT_COST", 12),
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("missing required environment variable: DB_URL")
	}
	if len(cfg.JWTSecret) < constant.MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes, got %d",
			constant.MinSecretLength, len(cfg.JWTSecret))
	}

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
