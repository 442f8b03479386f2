package config

import (
	"os"
	"strconv"
	"time"

	"defi_quest/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Внешний релеер для проверки ZK-пруфов
	RelayerURL     string
	RelayerTimeout time.Duration

	// Домен, принимаемый в wallet-connect пруфах
	WalletDomain string

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LeaderboardCacheTTL time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	relayerTimeout := 10 * time.Second
	if v := os.Getenv("RELAYER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			relayerTimeout = time.Duration(n) * time.Second
		}
	}

	walletDomain := os.Getenv("WALLET_DOMAIN")
	if walletDomain == "" {
		walletDomain = "defiquest.app"
	}

	apiRateLimit := 60 // запросов за окно
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5 // попыток логина за окно
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}

	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	cacheTTL := 30 * time.Second
	if v := os.Getenv("LEADERBOARD_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cacheTTL = time.Duration(n) * time.Second
		}
	}

	return &Config{
		AppPort:             port,
		DatabaseURL:         dbURL,
		JWTSecret:           jwtSecret,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		RelayerURL:          os.Getenv("RELAYER_URL"),
		RelayerTimeout:      relayerTimeout,
		WalletDomain:        walletDomain,
		APIRateLimit:        apiRateLimit,
		APIRateWindow:       apiRateWindow,
		AuthRateLimit:       authRateLimit,
		AuthRateWindow:      authRateWindow,
		LeaderboardCacheTTL: cacheTTL,
	}
}
