package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseDriver = "mysql"
	defaultDBHost         = "127.0.0.1"
	defaultDBName         = "ecom_store"
	defaultRedisAddr      = "localhost:6379"
	defaultSessionSecret  = "change-me-in-production"
	defaultSessionCookie  = "storefront_session"
	defaultAppPort        = "3000"
	defaultAppEnv         = "local"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, .env and the process environment over the
// built-in defaults. Later sources win.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":          defaultAppEnv,
		"APP_PORT":         defaultAppPort,
		"DB_DRIVER":        defaultDatabaseDriver,
		"DB_HOST":          defaultDBHost,
		"DB_USER":          "root",
		"DB_PASSWORD":      "",
		"DB_NAME":          defaultDBName,
		"DATABASE_DSN":     "",
		"SESSION_SECRET":   defaultSessionSecret,
		"SESSION_DRIVER":   "memory",
		"SESSION_COOKIE":   defaultSessionCookie,
		"SESSION_LIFETIME": "1440",
		"REDIS_ADDR":       defaultRedisAddr,
		"REDIS_PASSWORD":   "",
		"STORAGE_DISK":     "local",
	}
}

func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }
func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }

// ── Database ─────────────────────────────────────────────────────────────────

func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDatabaseDriver))
	switch driver {
	case "sqlite", "postgres", "mysql", "sqlserver":
		return driver
	default:
		return defaultDatabaseDriver
	}
}

// DatabaseDSN returns DATABASE_DSN verbatim when set, otherwise a DSN built
// from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME for the driver.
func DatabaseDSN() string {
	_ = Load()

	if override := get("DATABASE_DSN", ""); override != "" {
		return override
	}

	host := get("DB_HOST", defaultDBHost)
	user := get("DB_USER", "root")
	pass := get("DB_PASSWORD", "")
	name := get("DB_NAME", defaultDBName)

	switch DatabaseDriver() {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, pass, name, get("DB_PORT", "5432"))
	case "sqlserver":
		return fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			user, pass, host, get("DB_PORT", "1433"), name)
	case "sqlite":
		return name + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, get("DB_PORT", "3306"), name)
	}
}

// ── Sessions / Redis ─────────────────────────────────────────────────────────

func SessionSecret() string { _ = Load(); return get("SESSION_SECRET", defaultSessionSecret) }
func SessionDriver() string { _ = Load(); return strings.ToLower(get("SESSION_DRIVER", "memory")) }
func SessionCookie() string { _ = Load(); return get("SESSION_COOKIE", defaultSessionCookie) }
func SessionSecure() bool   { _ = Load(); return Bool("SESSION_SECURE", false) }

// SessionSecretIsDefault reports whether SESSION_SECRET was left unset.
func SessionSecretIsDefault() bool { return SessionSecret() == defaultSessionSecret }

// SessionLifetime is SESSION_LIFETIME minutes (default one day).
func SessionLifetime() time.Duration {
	_ = Load()
	return time.Duration(Int("SESSION_LIFETIME", 1440)) * time.Minute
}

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string    { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string  { _ = Load(); return get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string        { _ = Load(); return get("STORAGE_URL", "/storage") }
func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Logging / seeding ────────────────────────────────────────────────────────

func LogMongoURI() string        { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDB() string         { _ = Load(); return get("LOG_MONGO_DB", "storefront") }
func LogMongoCollection() string { _ = Load(); return get("LOG_MONGO_COLLECTION", "logs") }

func AdminEmail() string    { _ = Load(); return get("ADMIN_EMAIL", "") }
func AdminPassword() string { _ = Load(); return get("ADMIN_PASSWORD", "") }

// MaxUploadBytes caps multipart product forms (default 8 MB).
func MaxUploadBytes() int64 {
	_ = Load()
	return int64(Int("MAX_UPLOAD_BYTES", 8<<20))
}

// ── Loading ──────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	for key := range loaded {
		if v, ok := os.LookupEnv(key); ok {
			loaded[key] = strings.TrimSpace(v)
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Int reads key as an integer, returning fallback when unset or malformed.
func Int(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// Bool reads key as a boolean ("1", "true", "yes").
func Bool(key string, fallback bool) bool {
	switch strings.ToLower(Get(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// Set overrides a key in memory. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
