package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"bluetec-catalog/internal/domain"
	infraconfig "bluetec-catalog/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Product-listing collaborator
	Provider        string
	CatalogAPIBase  string
	CatalogAPIPath  string
	CatalogAPIToken string
	FetchTimeout    time.Duration
	// Session mirror
	SessionBackend    string
	SessionNamespace  string
	SessionStaleAfter time.Duration
	DatabaseURL       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	// Image preloading
	PreloadEnabled     bool
	PreloadConcurrency int
	// Default device profile for the warmer
	DeviceScreenWidth int
	DeviceMemoryGB    float64
	// Warmer
	WarmList  []domain.BatchItem
	WarmEvery time.Duration
	WarmOnAPI bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atofDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func msDef(key string, def time.Duration) time.Duration {
	return time.Duration(atoiDef(getEnv(key, ""), int(def/time.Millisecond))) * time.Millisecond
}

const defaultWarmList = "informatica/notebooks:5,perifericos/mouses:5,perifericos/teclados:5,componentes/placas-de-video:5,monitores:5"

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", infraconfig.DefaultHTTPPort),
		Provider:           getEnv("PROVIDER", "fake"),
		CatalogAPIBase:     getEnv("CATALOG_API_BASE", "http://localhost:8000"),
		CatalogAPIPath:     getEnv("CATALOG_API_PATH", "/api/filter-products"),
		CatalogAPIToken:    getEnv("CATALOG_API_TOKEN", ""),
		FetchTimeout:       msDef("FETCH_TIMEOUT_MS", infraconfig.DefaultFetchTimeout),
		SessionBackend:     getEnv("SESSION_BACKEND", "memory"),
		SessionNamespace:   getEnv("SESSION_NAMESPACE", infraconfig.DefaultSessionNamespace),
		SessionStaleAfter:  msDef("SESSION_STALE_MS", infraconfig.DefaultSessionStaleAfter),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
		PreloadEnabled:     boolDef(getEnv("PRELOAD_ENABLED", "true"), true),
		PreloadConcurrency: atoiDef(getEnv("PRELOAD_CONCURRENCY", ""), infraconfig.DefaultPreloadConcurrent),
		DeviceScreenWidth:  atoiDef(getEnv("DEVICE_SCREEN_WIDTH", "0"), 0),
		DeviceMemoryGB:     atofDef(getEnv("DEVICE_MEMORY_GB", "0"), 0),
		WarmList:           ParseWarmList(getEnv("WARM_LIST", defaultWarmList)),
		WarmEvery:          msDef("WARM_EVERY_MS", 0),
		WarmOnAPI:          boolDef(getEnv("WARM_ON_API", "false"), false),
	}
}

// ParseWarmList parses "category[/subcategory][:limit],..." into batch items.
// Malformed limits are treated as "no limit"; empty entries are skipped.
func ParseWarmList(s string) []domain.BatchItem {
	var out []domain.BatchItem
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var it domain.BatchItem
		if path, lim, ok := strings.Cut(part, ":"); ok {
			part = path
			it.Limit = max(atoiDef(strings.TrimSpace(lim), 0), 0)
		}
		cat, sub, _ := strings.Cut(part, "/")
		it.Category = strings.TrimSpace(cat)
		it.Subcategory = strings.TrimSpace(sub)
		if it.Category == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}
