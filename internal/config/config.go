package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// devSessionSecret signs cookies in development only
const devSessionSecret = "your-secret-key-change-in-production"

// ErrSessionSecret is returned by Validate when cookies would be signed with a known key
var ErrSessionSecret = errors.New("SESSION_SECRET must be set outside development")

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Stripe     StripeConfig
	Checkout   CheckoutConfig
	DoorList   DoorListConfig
	Storefront StorefrontConfig
	R2         R2Config
	Storage    StorageConfig
}

type ServerConfig struct {
	Port     string
	Host     string
	Env      string
	LogLevel string
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret string
	MaxAge int // seconds
}

type StripeConfig struct {
	SecretKey string
}

// CheckoutConfig holds the hosted checkout parameters sent with every session request
type CheckoutConfig struct {
	SuccessURL         string
	CancelURL          string
	Currency           string
	PaymentMethodTypes []string
}

type DoorListConfig struct {
	// TokenHash is an Argon2id hash of the staff token. Empty leaves the door list open.
	TokenHash string
}

type StorefrontConfig struct {
	Origin       string
	APIBaseURL   string
	FetchTimeout time.Duration
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
	Endpoint        string
}

type StorageConfig struct {
	UploadDir string
	BaseURL   string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "5000")

	config := &Config{
		Server: ServerConfig{
			Port:     port,
			Host:     getEnv("HOST", ""),
			Env:      getEnv("ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("PRIVATE_STRIPE_KEY", getEnv("STRIPE_SECRET_KEY", "")),
		},
		Checkout: CheckoutConfig{
			SuccessURL:         getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/success"),
			CancelURL:          getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000"),
			Currency:           strings.ToLower(getEnv("CHECKOUT_CURRENCY", "usd")),
			PaymentMethodTypes: getEnvAsList("CHECKOUT_PAYMENT_METHODS", []string{"card"}),
		},
		DoorList: DoorListConfig{
			TokenHash: getEnv("DOORLIST_TOKEN_HASH", ""),
		},
		Storefront: StorefrontConfig{
			Origin:       getEnv("STOREFRONT_ORIGIN", "http://localhost:3000"),
			APIBaseURL:   getEnv("STOREFRONT_API_URL", "http://localhost:"+port),
			FetchTimeout: getEnvAsDuration("STOREFRONT_FETCH_TIMEOUT", 10*time.Second),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", "play-images"),
			PublicURL:       getEnv("R2_PUBLIC_URL", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL:   getEnv("UPLOAD_BASE_URL", "http://localhost:"+port+"/uploads"),
		},
	}

	if config.Session.Secret == "" && config.IsDevelopment() {
		config.Session.Secret = devSessionSecret
	}

	return config, nil
}

// Validate reports settings the server must not start with
func (c *Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.Session.Secret == "" || c.Session.Secret == devSessionSecret {
		return ErrSessionSecret
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func parseDatabaseConfig() DatabaseConfig {
	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		return parseDatabaseURL(databaseURL)
	}

	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "box_office"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
