package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AdminIdentity is the single super-admin principal supplied by configuration.
// It never has a row in the users table; its numeric id is fixed at 0.
type AdminIdentity struct {
	Name     string
	Password string
	Email    string
}

type Config struct {
	APIPort   string
	StaticDir string

	JWTKey []byte
	JWTExp time.Duration

	Admin AdminIdentity

	// "plain" reproduces the upstream equality contract; "bcrypt" is the
	// hardened scheme new deployments should use.
	PasswordScheme string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginMaxAttempts int
	LoginWindow      time.Duration

	ChatAPIURL   string
	ChatAPIKey   string
	ChatModel    string
	ChatCacheTTL time.Duration
}

// Load reads .env (if present) and the process environment into a Config.
// The result is injected into constructors; nothing reads it as a global.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "8080"),
		StaticDir: getEnv("STATIC_DIR", "static"),
		JWTKey:    []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:    time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		Admin: AdminIdentity{
			Name:     getEnv("ADMIN_USERNAME", "admin_master"),
			Password: getEnv("ADMIN_PASSWORD", "changeme"),
			Email:    getEnv("ADMIN_EMAIL", "admin@fintrack.local"),
		},
		PasswordScheme:   getEnv("PASSWORD_SCHEME", "plain"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "user"),
		DBPassword:       getEnv("DB_PASSWORD", "password"),
		DBName:           getEnv("DB_NAME", "fintrack_db"),
		DBSslMode:        getEnv("DB_SSLMODE", "disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 10),
		LoginWindow:      time.Duration(getEnvAsInt("LOGIN_WINDOW_SECONDS", 300)) * time.Second,
		ChatAPIURL:       getEnv("CHAT_API_URL", ""),
		ChatAPIKey:       getEnv("CHAT_API_KEY", ""),
		ChatModel:        getEnv("CHAT_MODEL", "gpt-4o-mini"),
		ChatCacheTTL:     time.Duration(getEnvAsInt("CHAT_CACHE_TTL_SECONDS", 600)) * time.Second,
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
