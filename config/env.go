package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAppPort         = "8080"
	defaultAppEnv          = "local"
	defaultProductAPIURL   = "https://fakestoreapi.com/products"
	defaultProductTimeout  = 10 * time.Second
	defaultCatalogSource   = "remote"
	defaultCacheDriver     = "none"
	defaultCacheTTL        = 5 * time.Minute
	defaultRedisAddr       = "localhost:6379"
	defaultRateLimit       = 200
	defaultRateWindow      = time.Minute
	defaultPrefetchWorkers = 4
	defaultShutdownTimeout = 15 * time.Second
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, .env and the process environment over the
// built-in defaults. Later sources win. Safe to call repeatedly.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":              defaultAppEnv,
		"APP_PORT":             defaultAppPort,
		"LOG_LEVEL":            "",
		"PRODUCT_API_URL":      defaultProductAPIURL,
		"PRODUCT_API_TIMEOUT":  defaultProductTimeout.String(),
		"PRODUCT_API_ATTEMPTS": "1",
		"CATALOG_SOURCE":       defaultCatalogSource,
		"CACHE_DRIVER":         defaultCacheDriver,
		"CACHE_TTL":            defaultCacheTTL.String(),
		"REDIS_ADDR":           defaultRedisAddr,
		"REDIS_PASSWORD":       "",
		"RATE_LIMIT":           strconv.Itoa(defaultRateLimit),
		"RATE_WINDOW":          defaultRateWindow.String(),
		"PREFETCH_WORKERS":     strconv.Itoa(defaultPrefetchWorkers),
		"DECOR_SEED":           "0",
		"SHUTDOWN_TIMEOUT":     defaultShutdownTimeout.String(),
	}
}

// ── Application ──────────────────────────────────────────────────────────────

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

// LogLevel returns the explicit level override, or "" to derive it from AppEnv.
func LogLevel() string {
	_ = Load()
	return strings.ToLower(get("LOG_LEVEL", ""))
}

func ShutdownTimeout() time.Duration {
	_ = Load()
	return duration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
}

// ── Product API ──────────────────────────────────────────────────────────────

// ProductAPIURL is the collection endpoint; a product lives at <url>/<id>.
func ProductAPIURL() string {
	_ = Load()
	return strings.TrimRight(get("PRODUCT_API_URL", defaultProductAPIURL), "/")
}

func ProductAPITimeout() time.Duration {
	_ = Load()
	return duration("PRODUCT_API_TIMEOUT", defaultProductTimeout)
}

// ProductAPIAttempts is the total number of attempts per fetch (1 = no retry).
func ProductAPIAttempts() int {
	_ = Load()
	n := integer("PRODUCT_API_ATTEMPTS", 1)
	if n < 1 {
		return 1
	}
	return n
}

// CatalogSource is "remote" or "static".
func CatalogSource() string {
	_ = Load()
	switch src := strings.ToLower(get("CATALOG_SOURCE", defaultCatalogSource)); src {
	case "remote", "static":
		return src
	default:
		return defaultCatalogSource
	}
}

// ── Cache ────────────────────────────────────────────────────────────────────

// CacheDriver is "none", "memory" or "redis".
func CacheDriver() string {
	_ = Load()
	switch driver := strings.ToLower(get("CACHE_DRIVER", defaultCacheDriver)); driver {
	case "none", "memory", "redis":
		return driver
	default:
		return defaultCacheDriver
	}
}

func CacheTTL() time.Duration {
	_ = Load()
	return duration("CACHE_TTL", defaultCacheTTL)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ── Throughput ───────────────────────────────────────────────────────────────

func RateLimit() int {
	_ = Load()
	return integer("RATE_LIMIT", defaultRateLimit)
}

func RateWindow() time.Duration {
	_ = Load()
	return duration("RATE_WINDOW", defaultRateWindow)
}

func PrefetchWorkers() int {
	_ = Load()
	return integer("PREFETCH_WORKERS", defaultPrefetchWorkers)
}

// DecorSeed seeds the decorative value source. 0 means a random seed.
func DecorSeed() uint64 {
	_ = Load()
	n, err := strconv.ParseUint(get("DECOR_SEED", "0"), 10, 64)
	if err != nil {
		return 0
	}
	return n
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

	mergeEnviron(loaded)

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
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron copies process environment values for every known key.
func mergeEnviron(out map[string]string) {
	for key := range defaultValues() {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(get(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func integer(key string, fallback int) int {
	n, err := strconv.Atoi(get(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
