package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server  ServerConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	JWT     JWTConfig
	App     AppConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// TTLs do cache de missoes, em segundos
	TTLMission int
	TTLList    int
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type AppConfig struct {
	Env string
}

type StorageConfig struct {
	Driver      string
	UploadsPath string
	// AWS S3
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string
	// Cloudflare R2
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2AccountID       string
	R2Bucket          string
	R2PublicURL       string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		DB: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "missoes"),
			Password: getEnv("POSTGRES_PASSWORD", "missoes"),
			DBName:   getEnv("POSTGRES_DB", "missoes_db"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			TTLMission: getEnvAsInt("REDIS_TTL_MISSION", 600),
			TTLList:    getEnvAsInt("REDIS_TTL_LIST", 120),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Storage: StorageConfig{
			Driver:             getEnv("STORAGE_DRIVER", "local"),
			UploadsPath:        getEnv("UPLOADS_PATH", "./uploads"),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSBucket:          getEnv("AWS_BUCKET", ""),
			R2AccessKeyID:      getEnv("R2_ACCESS_KEY_ID", ""),
			R2SecretAccessKey:  getEnv("R2_SECRET_ACCESS_KEY", ""),
			R2AccountID:        getEnv("R2_ACCOUNT_ID", ""),
			R2Bucket:           getEnv("R2_BUCKET", ""),
			R2PublicURL:        getEnv("R2_PUBLIC_URL", ""),
		},
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
