package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"

	UploadDisk  = "disk"
	UploadMinIO = "minio"

	// DefaultAccessToken is the shared secret checked by the /api/private gate.
	DefaultAccessToken = "your_secret_token"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	PublicDir   string
	UploadDir   string
	AccessToken string
	SeedData    bool

	StoreBackend string
	MySQLDSN     string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	UploadBackend  string
	MaxUploadBytes int64
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	// seeder
	APIBaseURL  string
	SeedFile    string
	SeedWorkers int
	SeedRPS     int

	// Ignored names numeric settings that were set but did not parse; their
	// defaults apply.
	Ignored []string
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	// a missing .env is the normal case outside development
	_ = godotenv.Load()

	var ignored []string
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			ignored = append(ignored, k)
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":3000"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		PublicDir:      env("PUBLIC_DIR", "public"),
		UploadDir:      env("UPLOAD_DIR", "public/images"),
		AccessToken:    env("ACCESS_TOKEN", DefaultAccessToken),
		SeedData:       envBool("SEED_DATA", true),
		StoreBackend:   strings.ToLower(env("STORE_BACKEND", StoreMemory)),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travelguide?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		UploadBackend:  strings.ToLower(env("UPLOAD_BACKEND", UploadDisk)),
		MaxUploadBytes: int64(atoi("MAX_UPLOAD_BYTES", 32<<20)),
		MinIOEndpoint:  env("MINIO_ENDPOINT", ""),
		MinIOAccessKey: env("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: env("MINIO_SECRET_KEY", ""),
		MinIOBucket:    env("MINIO_BUCKET", ""),
		APIBaseURL:     env("API_BASE_URL", "http://localhost:3000"),
		SeedFile:       env("SEED_FILE", "seed.json"),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		SeedRPS:        atoi("SEED_RPS", 20),
	}
	c.Ignored = ignored
	return c
}

// UsesDefaultToken reports whether the gate still checks the built-in secret.
func (c Config) UsesDefaultToken() bool { return c.AccessToken == DefaultAccessToken }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
