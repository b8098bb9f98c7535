package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTP struct {
	Port string
}

type Redis struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Team struct {
	Capacity         int
	CountdownSeconds int
	StaleAfter       time.Duration
	CleanupPeriod    int
}

type Config struct {
	HTTP     HTTP
	Redis    Redis
	Postgres Postgres
	Team     Team
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	return &Config{
		HTTP: HTTP{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Redis: Redis{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Postgres: Postgres{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   getEnv("POSTGRES_DB", "keyduel"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Team: Team{
			Capacity:         getInt("TEAM_CAPACITY", 2),
			CountdownSeconds: getInt("TEAM_COUNTDOWN_SECONDS", 5),
			StaleAfter:       getDuration("TEAM_STALE_AFTER", 30*time.Minute),
			CleanupPeriod:    getInt("TEAM_CLEANUP_PERIOD", 20),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid integer for %s, using default %d", key, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s, using default %s", key, fallback)
		return fallback
	}
	return d
}
