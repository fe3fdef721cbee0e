package config

import "os"

type Config struct {
	BackendURL   string
	FrontendURL  string
	ListenAddr   string
	DatabasePath string
	CacheDir     string
	PollSpec     string
	SecretKey    string
	CookieName   string
}

func LoadConfig() *Config {
	return &Config{
		BackendURL:   getEnv("BACKEND_URL", "http://localhost:5000"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		ListenAddr:   getEnv("LISTEN_ADDR", ":3000"),
		DatabasePath: getEnv("DATABASE_PATH", "instagen.db"),
		CacheDir:     getEnv("CACHE_DIR", "image-cache"),
		PollSpec:     getEnv("POLL_SPEC", "@every 0h0m15s"),
		SecretKey:    getEnv("SECRET_KEY", ""),
		CookieName:   getEnv("COOKIE_NAME", "instagen_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
