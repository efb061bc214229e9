package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the API.
type Config struct {
	Port string

	// Database
	DBDriver    string // postgres | mysql | sqlite
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string

	// Auth
	JWTSecret          string
	SessionTTL         time.Duration
	GuestTTL           time.Duration
	APIKey             string
	SuperAdminEmail    string
	SuperAdminPassword string

	FirebaseCredentialsJSON string
	FirebaseProjectID       string

	CORSOrigins []string

	// Storefront
	WhatsAppPhone     string
	LowStockThreshold int

	// Integrations (empty disables them)
	RabbitMQURL      string
	RabbitMQExchange string
	SendGridAPIKey   string
	OrderNotifyFrom  string
	OrderNotifyTo    string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		DBDriver:    strings.ToLower(getenvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenvDefault("DB_HOST", "localhost"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		SQLitePath:  getenvDefault("SQLITE_PATH", "storefront.db"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionTTL:         getenvDuration("SESSION_TTL", 12*time.Hour),
		GuestTTL:           getenvDuration("GUEST_TTL", 24*time.Hour),
		APIKey:             os.Getenv("COST_API_KEY"),
		SuperAdminEmail:    os.Getenv("SUPER_ADMIN_EMAIL"),
		SuperAdminPassword: os.Getenv("SUPER_ADMIN_PASSWORD"),

		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),

		CORSOrigins: splitList(getenvDefault("CORS_ORIGINS", "*")),

		WhatsAppPhone:     getenvDefault("WHATSAPP_PHONE", "17868830056"),
		LowStockThreshold: getenvInt("LOW_STOCK_THRESHOLD", 10),

		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange: getenvDefault("RABBITMQ_EXCHANGE", "order_exchange"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		OrderNotifyFrom:  os.Getenv("ORDER_NOTIFY_FROM"),
		OrderNotifyTo:    os.Getenv("ORDER_NOTIFY_TO"),
	}
}

// FirebaseEnabled reports whether Google sign-in for admins is configured.
func (c *Config) FirebaseEnabled() bool {
	return c.FirebaseCredentialsJSON != "" && c.FirebaseProjectID != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
