package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Collection names kept from the deployed database.
const (
	CollArticles  = "article"
	CollComments  = "article_comments"
	CollBookmarks = "bookmarks"
)

type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTTTL         time.Duration
	CookieSecure   bool
	CORSOrigins    string
	RequestTimeout time.Duration
	DiagAddr       string
	AppEnv         string
}

var ErrMissingSecret = errors.New("JWT_SECRET is required")

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return b
}

// mongoURIFromParts builds an Atlas style URI from DB_USER / DB_PASS / DB_HOST.
func mongoURIFromParts() string {
	user, pass, host := os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_HOST")
	if user == "" || pass == "" || host == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func LoadConfig() (Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "5000"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "articles"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         getDuration("JWT_TTL", time.Hour),
		CookieSecure:   getBool("COOKIE_SECURE", false),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:5173"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 5*time.Second),
		DiagAddr:       getEnv("DIAG_ADDR", ":9999"),
		AppEnv:         getEnv("APP_ENV", "development"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = mongoURIFromParts()
	}
	if cfg.JWTSecret == "" {
		return cfg, ErrMissingSecret
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
