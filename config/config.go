package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	BaseURL string

	LogLevel  string
	LogFormat string

	PDFEngine       string // chromedp | wkhtmltopdf | gofpdf
	PDFTimeout      time.Duration
	PDFRetries      int
	PDFSaveDir      string
	ChromePath      string
	ChromeNoSandbox bool
	WkhtmltopdfPath string

	UploadBackend       string // drive | r2 | gcs | none
	GoogleClientSecrets string
	OAuthRedirectURL    string
	DriveFolderID       string

	R2Bucket          string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2PublicURL       string

	GCSBucket    string
	GCSPublicURL string

	CacheSize  int
	CacheTTL   time.Duration
	SessionTTL time.Duration

	SellerStore    string // static | postgres | mongo
	PostgresURL    string
	MongoURL       string
	MongoDB        string
	MigrationsPath string

	LogoPath      string
	PasswordHash  string
	SessionSecure bool

	RateLimit            float64
	RateBurst            int
	MaxConcurrentRenders int
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	envErr := godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		return nil, fmt.Errorf("load .env: %w", envErr)
	}
	return cfg, nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*Config, error) {
	p := &parser{}
	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		BaseURL: getEnv("BASE_URL", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		PDFEngine:       getEnv("PDF_ENGINE", "chromedp"),
		PDFTimeout:      p.duration("PDF_TIMEOUT", 90*time.Second),
		PDFRetries:      p.int("PDF_RETRIES", 1),
		PDFSaveDir:      os.Getenv("PDF_SAVE_DIR"),
		ChromePath:      os.Getenv("CHROME_PATH"),
		ChromeNoSandbox: p.bool("CHROME_NO_SANDBOX", true),
		WkhtmltopdfPath: os.Getenv("WKHTMLTOPDF_PATH"),

		UploadBackend:       getEnv("UPLOAD_BACKEND", "drive"),
		GoogleClientSecrets: getEnv("GOOGLE_CLIENT_SECRETS", "client_secret.json"),
		OAuthRedirectURL:    os.Getenv("OAUTH_REDIRECT_URL"),
		DriveFolderID:       os.Getenv("GDRIVE_FOLDER_ID"),

		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),

		GCSBucket:    os.Getenv("GCS_BUCKET"),
		GCSPublicURL: getEnv("GCS_PUBLIC_URL", "https://storage.googleapis.com"),

		CacheSize:  p.int("CACHE_SIZE", 256),
		CacheTTL:   p.duration("CACHE_TTL", 12*time.Hour),
		SessionTTL: p.duration("SESSION_TTL", 12*time.Hour),

		SellerStore:    getEnv("SELLER_STORE", "static"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		MongoURL:       os.Getenv("MONGO_URL"),
		MongoDB:        getEnv("MONGO_DB", "gstinvoice"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://db/migrations"),

		LogoPath:      getEnv("LOGO_PATH", "static/img/logo.png"),
		PasswordHash:  os.Getenv("APP_PASSWORD_HASH"),
		SessionSecure: p.bool("SESSION_SECURE", false),

		RateLimit:            p.float("RATE_LIMIT", 2),
		RateBurst:            p.int("RATE_BURST", 5),
		MaxConcurrentRenders: p.int("MAX_CONCURRENT_RENDERS", 2),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.PDFEngine {
	case "chromedp", "wkhtmltopdf", "gofpdf":
	default:
		return fmt.Errorf("PDF_ENGINE %q not supported", c.PDFEngine)
	}

	switch c.UploadBackend {
	case "none", "drive":
	case "r2":
		if c.R2Bucket == "" || c.R2AccountID == "" || c.R2PublicURL == "" {
			return fmt.Errorf("UPLOAD_BACKEND=r2 requires R2_BUCKET, R2_ACCOUNT_ID and R2_PUBLIC_URL")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("UPLOAD_BACKEND=gcs requires GCS_BUCKET")
		}
	default:
		return fmt.Errorf("UPLOAD_BACKEND %q not supported", c.UploadBackend)
	}

	switch c.SellerStore {
	case "static":
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("SELLER_STORE=postgres requires POSTGRES_URL")
		}
	case "mongo":
		if c.MongoURL == "" {
			return fmt.Errorf("SELLER_STORE=mongo requires MONGO_URL")
		}
	default:
		return fmt.Errorf("SELLER_STORE %q not supported", c.SellerStore)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive")
	}
	if c.PDFRetries < 0 {
		return fmt.Errorf("PDF_RETRIES must not be negative")
	}
	if c.MaxConcurrentRenders <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_RENDERS must be positive")
	}
	return nil
}

// AuthEnabled reports whether the password prompt guards the app.
func (c *Config) AuthEnabled() bool {
	return c.PasswordHash != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parser keeps the first conversion error so FromEnv can report it once.
type parser struct {
	err error
}

func (p *parser) fail(key, val string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s=%q: %w", key, val, err)
	}
}

func (p *parser) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}
