package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared cache backend selection
// --------------------------------------------------------------------------

type CacheBackend string

const (
	CacheBackendRedis  CacheBackend = "redis"
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendNone   CacheBackend = "none"
)

// ParseCacheBackend converts the configured backend name into a CacheBackend
func ParseCacheBackend(s string) (CacheBackend, error) {
	switch CacheBackend(strings.ToLower(strings.TrimSpace(s))) {
	case CacheBackendRedis:
		return CacheBackendRedis, nil
	case CacheBackendMemory:
		return CacheBackendMemory, nil
	case CacheBackendNone, "noop", "":
		return CacheBackendNone, nil
	default:
		return "", fmt.Errorf("invalid cache backend %s (expected one of: redis, memory, none)", s)
	}
}

// --------------------------------------------------------------------------
// Configuration struct
// --------------------------------------------------------------------------

// RedisConf holds the connection parameters of the redis backed shared cache
type RedisConf struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, allowing several deployments to share one redis
	Prefix string
}

// Config holds all configuration parameters of a dEnv process.
type Config struct {
	// EnvFile is the path of the durable store file
	EnvFile string

	// Shared cache settings
	Cache CacheBackend
	Redis RedisConf

	// Degraded replaces the shared cache with a no-op stand-in, no matter what Cache says
	Degraded bool

	// TimeoutSecond bounds every shared cache operation
	TimeoutSecond int

	// HTTP api settings (serve only)
	Endpoint string

	// Logging configuration
	LogLevel string
}

// EffectiveCache returns the cache backend that is used after applying the degraded mode switch
func (c *Config) EffectiveCache() CacheBackend {
	if c.Degraded {
		return CacheBackendNone
	}
	return c.Cache
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Durable Store")
	addField("Env File", c.EnvFile)

	addSection("Shared Cache")
	addField("Backend", string(c.EffectiveCache()))
	addField("Degraded", strconv.FormatBool(c.Degraded))
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	if c.EffectiveCache() == CacheBackendRedis {
		addField("Redis Address", c.Redis.Addr)
		addField("Redis DB", strconv.Itoa(c.Redis.DB))
		addField("Redis Prefix", c.Redis.Prefix)
	}

	if c.Endpoint != "" {
		addSection("HTTP API")
		addField("Endpoint", c.Endpoint)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
