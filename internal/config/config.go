package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	AppId       string

	// Operational store for the log sink and audit trail
	MongoURI string
	DBName   string

	FirebaseProjectID       string
	FirebaseClientEmail     string
	FirebasePrivateKey      string
	FirebaseCredentialsFile string

	// Subject ids that always hold every capability
	BootstrapAdminUIDs []string

	// DevAuth swaps Firebase ID tokens for locally signed HS256 tokens
	DevAuth   bool
	JWTSecret string

	AgoraAppID          string
	AgoraAppCertificate string
	AgoraTokenTTL       time.Duration

	DashboardRefreshCron string
	NotifyUserSenders    bool
	CORSAllowOrigins     string
	NotifyRateLimit      int
	NotifyRateWindow     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Environment:             getEnv("ENVIRONMENT", "development"),
		AppId:                   getEnv("APP_ID", "amigo-admin"),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                  getEnv("DB_NAME", "amigo-admin"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseClientEmail:     getEnv("FIREBASE_CLIENT_EMAIL", ""),
		FirebasePrivateKey:      strings.ReplaceAll(getEnv("FIREBASE_PRIVATE_KEY", ""), `\n`, "\n"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		BootstrapAdminUIDs:      splitList(getEnv("BOOTSTRAP_ADMIN_UIDS", "")),
		DevAuth:                 getEnv("DEV_AUTH", "false") == "true",
		JWTSecret:               getEnv("JWT_SECRET", "secret"),
		AgoraAppID:              getEnv("AGORA_APP_ID", ""),
		AgoraAppCertificate:     getEnv("AGORA_APP_CERTIFICATE", ""),
		AgoraTokenTTL:           time.Duration(getEnvInt("AGORA_TOKEN_TTL_SECONDS", 3600)) * time.Second,
		DashboardRefreshCron:    getEnv("DASHBOARD_REFRESH_CRON", "*/5 * * * *"),
		NotifyUserSenders:       getEnv("NOTIFY_USER_SENDERS", "true") == "true",
		CORSAllowOrigins:        getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		NotifyRateLimit:         getEnvInt("NOTIFY_RATE_LIMIT", 30),
		NotifyRateWindow:        time.Duration(getEnvInt("NOTIFY_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid integer for %s, using %d", key, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
