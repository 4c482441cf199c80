package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
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

type TMDB struct {
	APIKey   string
	BaseURL  string
	Language string
}

// Storage picks the room/account backend: "file" (default, one JSON file per
// key), "memory" or "redis".
type Storage struct {
	Backend string
	DataDir string
}

// Sync picks the user-blob repository: "file" (default) or "postgres".
type Sync struct {
	Backend string
}

type Log struct {
	File       string // empty = stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	TMDB     TMDB
	Storage  Storage
	Sync     Sync
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		TMDB:     *newTMDB(),
		Storage:  *newStorage(),
		Sync:     *newSync(),
		Log:      *newLog(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "moviepair"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		APIKey:   getenv("TMDB_API_KEY", ""),
		BaseURL:  getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		Language: getenv("TMDB_LANGUAGE", "ru-RU"),
	}
}

func newStorage() *Storage {
	return &Storage{
		Backend: getenv("STORAGE_BACKEND", "file"),
		DataDir: getenv("STORAGE_DATA_DIR", "./data"),
	}
}

func newSync() *Sync {
	return &Sync{
		Backend: getenv("SYNC_BACKEND", "file"),
	}
}

func newLog() *Log {
	return &Log{
		File:       getenv("LOG_FILE", ""),
		MaxSizeMB:  getenvInt("LOG_MAX_SIZE_MB", 50),
		MaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getenvInt("LOG_MAX_AGE_DAYS", 14),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s %s is not a number, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}
