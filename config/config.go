package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppMode           string
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	StorageProvider   string // "pinata" or "s3"
	PinataJWT         string
	PinataUploadURL   string
	PinataGatewayHost string
	S3Region          string
	S3Bucket          string
	S3AccessKey       string
	S3SecretKey       string
	S3Endpoint        string
	S3PublicBase      string
	AuthSecret        string
	AuthDomain        string
	UploadLimitPerMin int
	WriteLimitPerMin  int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		AppMode:           getEnv("APP_MODE", "debug"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "memories_chain"),
		DBPort:            getEnv("DB_PORT", "5432"),
		RedisHost:         getEnv("REDIS_HOST", "localhost"),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		StorageProvider:   getEnv("STORAGE_PROVIDER", "pinata"),
		PinataJWT:         getEnv("PINATA_JWT", ""),
		PinataUploadURL:   getEnv("PINATA_UPLOAD_URL", "https://uploads.pinata.cloud/v3/files"),
		PinataGatewayHost: getEnv("PINATA_GATEWAY_HOST", ""),
		S3Region:          getEnv("S3_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:       getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PublicBase:      getEnv("S3_PUBLIC_BASE", ""),
		AuthSecret:        getEnv("AUTH_SECRET", "change-me"),
		AuthDomain:        getEnv("AUTH_DOMAIN", "localhost"),
		UploadLimitPerMin: getEnvAsInt("UPLOAD_LIMIT_PER_MIN", 20),
		WriteLimitPerMin:  getEnvAsInt("WRITE_LIMIT_PER_MIN", 60),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
