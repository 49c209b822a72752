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
	Port          string
	Env           string
	LogLevel      string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	FrontendURL   string // Storefront base URL used in recovery links
	CronSecret    string
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// Redis (sweep lock)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// Kafka (order lifecycle events)
	KafkaBrokers    []string
	KafkaOrderTopic string
	KafkaGroupID    string
	// Messaging (platform-level credentials)
	CredentialsEncryptionKey string
	MSG91AuthKey             string
	MSG91IntegratedNumber    string
	MSG91BaseURL             string
	WhatsAppTemplateLanguage string
	ResendAPIKey             string
	ResendBaseURL            string
	EmailFrom                string
	CredentialCacheTTL       time.Duration
	NotifyMaxAttempts        int
	HTTPClientTimeout        time.Duration
	// Couriers
	DelhiveryAPIToken       string
	DelhiveryBaseURL        string
	DelhiveryPickupLocation string
	ShiprocketEmail         string
	ShiprocketPassword      string
	ShiprocketBaseURL       string
	// R2 Storage (courier label archive)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2UploadTimeout   time.Duration
	// Cache
	CacheShippingConfigTTL time.Duration
	// Abandoned cart recovery
	RecoverySweepInterval time.Duration
	RecoveryIdleThreshold time.Duration
	RecoveryCartTTL       time.Duration
	RecoveryMinEmailGap   time.Duration
	RecoveryMaxEmails     int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBUrl:         getEnv("DB_DSN", ""),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		CronSecret:    getEnv("CRON_SECRET", ""),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:    getListEnv("KAFKA_BROKERS"),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order-events"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "storekit-notifications"),

		CredentialsEncryptionKey: getEnv("CREDENTIALS_ENCRYPTION_KEY", ""),
		MSG91AuthKey:             getEnv("MSG91_AUTH_KEY", ""),
		MSG91IntegratedNumber:    getEnv("MSG91_INTEGRATED_NUMBER", ""),
		MSG91BaseURL:             getEnv("MSG91_BASE_URL", "https://api.msg91.com"),
		WhatsAppTemplateLanguage: getEnv("WHATSAPP_TEMPLATE_LANGUAGE", "en"),
		ResendAPIKey:             getEnv("RESEND_API_KEY", ""),
		ResendBaseURL:            getEnv("RESEND_BASE_URL", "https://api.resend.com"),
		EmailFrom:                getEnv("EMAIL_FROM", "orders@storekit.local"),
		CredentialCacheTTL:       getDurationEnv("CREDENTIAL_CACHE_TTL", 5*time.Minute),
		NotifyMaxAttempts:        getIntEnv("NOTIFY_MAX_ATTEMPTS", 3),
		HTTPClientTimeout:        getDurationEnv("HTTP_CLIENT_TIMEOUT", 15*time.Second),

		DelhiveryAPIToken:       getEnv("DELHIVERY_API_TOKEN", ""),
		DelhiveryBaseURL:        getEnv("DELHIVERY_BASE_URL", "https://track.delhivery.com"),
		DelhiveryPickupLocation: getEnv("DELHIVERY_PICKUP_LOCATION", ""),
		ShiprocketEmail:         getEnv("SHIPROCKET_EMAIL", ""),
		ShiprocketPassword:      getEnv("SHIPROCKET_PASSWORD", ""),
		ShiprocketBaseURL:       getEnv("SHIPROCKET_BASE_URL", "https://apiv2.shiprocket.in/v1/external"),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2UploadTimeout:   getDurationEnv("R2_UPLOAD_TIMEOUT", 30*time.Second),

		CacheShippingConfigTTL: getDurationEnv("CACHE_SHIPPING_CONFIG_TTL", 10*time.Minute),

		// Recovery defaults: sweep every 15m, idle 1h, TTL 7d, 4h gap, 3 emails
		RecoverySweepInterval: getDurationEnv("RECOVERY_SWEEP_INTERVAL", 15*time.Minute),
		RecoveryIdleThreshold: getDurationEnv("RECOVERY_IDLE_THRESHOLD", time.Hour),
		RecoveryCartTTL:       getDurationEnv("RECOVERY_CART_TTL", 7*24*time.Hour),
		RecoveryMinEmailGap:   getDurationEnv("RECOVERY_MIN_EMAIL_GAP", 4*time.Hour),
		RecoveryMaxEmails:     getIntEnv("RECOVERY_MAX_EMAILS", 3),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.MSG91AuthKey == "" && c.ResendAPIKey == "" {
		log.Println("WARNING: No platform messaging credentials, notifications run in log-only mode")
	}
	if c.CronSecret == "" {
		log.Println("WARNING: CRON_SECRET not set, manual sweep endpoint is disabled")
	}
}

// R2Enabled reports whether label archival storage is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2BucketName != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getListEnv(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
