package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret    string
	JWTExpiresIn time.Duration

	EmailHost     string
	EmailPort     string
	EmailSecure   bool
	EmailService  string
	EmailUser     string
	EmailPassword string

	FrontendURL string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadDir string

	RateLimitWindow time.Duration
	RateLimitMax    int

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:    getEnv("PORT", "5001"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskuser"),
		DBPassword: getEnv("DB_PASSWORD", "taskpassword"),
		DBName:     getEnv("DB_NAME", "task_platform"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),

		EmailHost:     getEnv("EMAIL_HOST", ""),
		EmailPort:     getEnv("EMAIL_PORT", "587"),
		EmailSecure:   getEnv("EMAIL_SECURE", "false") == "true",
		EmailService:  getEnv("EMAIL_SERVICE", "gmail"),
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPassword: getEnv("EMAIL_PASSWORD", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW_MINUTES", time.Hour),
		RateLimitMax:    getInt("RATE_LIMIT_MAX_REQUESTS", 10000),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// CloudinaryConfigured reports whether enough credentials are present to use
// the cloud storage backend. Mirrors the URL-or-triple check of the provider.
func (c *Config) CloudinaryConfigured() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) EmailConfigured() bool {
	return c.EmailUser != "" && c.EmailPassword != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getDuration accepts either a Go duration string ("45m") or, for the
// *_MINUTES keys, a bare number of minutes.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Minute
	}
	return defaultValue
}
