package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	Data    DataConfig
	JWT     JWTConfig
	Admin   AdminConfig
	Backup  BackupConfig
}

// DataConfig holds the location of the durable record collections
type DataConfig struct {
	Dir string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// AdminConfig holds the bootstrap administrator account
type AdminConfig struct {
	Email    string
	Password string
}

// BackupConfig holds the snapshot scheduler configuration
type BackupConfig struct {
	Enabled  bool
	Schedule string
	Dir      string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	backupEnabled, _ := strconv.ParseBool(getEnv("BACKUP_ENABLED", "true"))

	dataDir := getEnv("DATA_DIR", "./data")

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "3000"),
		Data: DataConfig{
			Dir: dataDir,
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "default_secret"),
			AccessTokenMins: accessMins,
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@aquamarket.local"),
			Password: getEnv("ADMIN_PASSWORD", "admin123456"),
		},
		Backup: BackupConfig{
			Enabled:  backupEnabled,
			Schedule: getEnv("BACKUP_SCHEDULE", "30 2 * * *"),
			Dir:      getEnv("BACKUP_DIR", dataDir+"/backups"),
		},
	}

	log.Printf("configuration loaded [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
