package confs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	LogMode string

	DBDriver   string
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret string
	JWTExpire time.Duration

	MaxFileUpload  int64
	FileUploadPath string
	PhotoStore     string
	GCSBucket      string
	GCSCredentials string
	MongoURI       string
	MongoDB        string

	CORSOrigins   []string
	ActorCacheTTL time.Duration

	// RatingReconcileInterval of zero disables the background reconciler.
	RatingReconcileInterval time.Duration
}

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is normal outside of local development
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "5000"),
		LogMode:        getenv("LOG_MODE", "development"),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DBURL:          os.Getenv("DB_URL"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		SQLitePath:     getenv("SQLITE_PATH", "houses.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		FileUploadPath: getenv("FILE_UPLOAD_PATH", "./public/uploads"),
		PhotoStore:     strings.ToLower(getenv("PHOTO_STORE", "local")),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GCSCredentials: os.Getenv("GCS_CREDENTIALS_FILE"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getenv("MONGO_DB", "houses"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.JWTExpire, err = time.ParseDuration(getenv("JWT_EXPIRE", "720h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRE: %w", err)
	}
	if cfg.ActorCacheTTL, err = time.ParseDuration(getenv("ACTOR_CACHE_TTL", "1m")); err != nil {
		return nil, fmt.Errorf("invalid ACTOR_CACHE_TTL: %w", err)
	}
	if cfg.RatingReconcileInterval, err = time.ParseDuration(getenv("RATING_RECONCILE_INTERVAL", "1h")); err != nil || cfg.RatingReconcileInterval < 0 {
		return nil, fmt.Errorf("invalid RATING_RECONCILE_INTERVAL: %q", os.Getenv("RATING_RECONCILE_INTERVAL"))
	}
	if cfg.MaxFileUpload, err = strconv.ParseInt(getenv("MAX_FILE_UPLOAD", "1000000"), 10, 64); err != nil || cfg.MaxFileUpload <= 0 {
		return nil, fmt.Errorf("invalid MAX_FILE_UPLOAD: %q", os.Getenv("MAX_FILE_UPLOAD"))
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.PhotoStore {
	case "local":
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when PHOTO_STORE=gcs")
		}
	case "gridfs":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required when PHOTO_STORE=gridfs")
		}
	default:
		return nil, fmt.Errorf("unsupported PHOTO_STORE %q", cfg.PhotoStore)
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
