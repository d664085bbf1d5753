package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Document storage
	FSPath string
	FSURL  string

	// Outbound email
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// SMS gateway
	SMSGatewayURL string
	SMSGatewayKey string

	// External reporting database (Postgres DSN); empty disables export
	ReportingDSN string

	// Per-action timeout for auto action handlers
	ActionTimeoutSeconds int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		JWTSecret:            getEnv("JWT_SECRET", "secret"),
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:               getEnv("DB_NAME", "casework"),
		SkipAuth:             getEnv("SKIP_AUTH", "false") == "true",
		Environment:          getEnv("ENVIRONMENT", "development"),
		AppId:                getEnv("APP_ID", "casework"),
		FSPath:               getEnv("FS_PATH", "./uploads"),
		FSURL:                getEnv("FS_URL", "/fs/uploads"),
		SMTPHost:             getEnv("SMTP_HOST", "localhost"),
		SMTPPort:             getEnvInt("SMTP_PORT", 587),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPass:             getEnv("SMTP_PASS", ""),
		SMTPFrom:             getEnv("SMTP_FROM", "no-reply@casework.local"),
		SMSGatewayURL:        getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey:        getEnv("SMS_GATEWAY_KEY", ""),
		ReportingDSN:         getEnv("REPORTING_DSN", ""),
		ActionTimeoutSeconds: getEnvInt("ACTION_TIMEOUT_SECONDS", 10),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
