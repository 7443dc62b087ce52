package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppEnv      string `yaml:"APP_ENV"`
	AppURL      string `yaml:"APP_URL"`
	LogLevel    string `yaml:"LOG_LEVEL"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`

	// Recipe extraction
	AIProvider    string `yaml:"AI_PROVIDER"`
	OpenAIAPIKey  string `yaml:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"OPENAI_MODEL"`
	OpenAIBaseURL string `yaml:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `yaml:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"GEMINI_MODEL"`
	YouTubeAPIKey string `yaml:"YOUTUBE_API_KEY"`

	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	SentryDSN string `yaml:"SENTRY_DSN"`
}

var config Config

// LoadConfig reads .env and config.yaml. Environment variables take
// precedence over the yaml file in GetConfig.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file not read, using environment only")
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Error().Err(err).Str("path", path).Msg("error parsing config file")
	}
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}

	switch key {
	case "APP_PORT":
		return withDefault(config.AppPort, "8080")
	case "APP_ENV":
		return withDefault(config.AppEnv, "development")
	case "APP_URL":
		return config.AppURL
	case "LOG_LEVEL":
		return withDefault(config.LogLevel, "info")
	case "CORS_ORIGINS":
		return withDefault(config.CORSOrigins, "*")
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return withDefault(config.DBPort, "5432")
	case "DB_HOST":
		return withDefault(config.DBHost, "localhost")
	case "DB_SSLMODE":
		return withDefault(config.DBSSLMode, "disable")
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return withDefault(config.SMTPPort, "587")
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AI_PROVIDER":
		return withDefault(config.AIProvider, "openai")
	case "OPENAI_API_KEY":
		return config.OpenAIAPIKey
	case "OPENAI_MODEL":
		return withDefault(config.OpenAIModel, "gpt-4o-mini")
	case "OPENAI_BASE_URL":
		return withDefault(config.OpenAIBaseURL, "https://api.openai.com/v1")
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return withDefault(config.GeminiModel, "gemini-1.5-flash")
	case "YOUTUBE_API_KEY":
		return config.YouTubeAPIKey
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "SENTRY_DSN":
		return config.SentryDSN
	default:
		return ""
	}
}

func withDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
