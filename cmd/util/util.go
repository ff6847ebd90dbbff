package util

import (
	"fmt"
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/ValentinKolb/dEnv/lib/cache/lcache"
	"github.com/ValentinKolb/dEnv/lib/cache/ncache"
	"github.com/ValentinKolb/dEnv/lib/cache/rcache"
	"github.com/ValentinKolb/dEnv/lib/env"
	"github.com/ValentinKolb/dEnv/lib/filestore"
	"github.com/ValentinKolb/dEnv/rpc/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"strings"
	"time"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupConfigFlags adds the flags shared by all commands to cmd
func SetupConfigFlags(cmd *cobra.Command) {
	key := "env-file"
	cmd.PersistentFlags().String(key, "env.txt", WrapString("Path of the durable store file (key=json lines). Created if missing"))

	key = "cache"
	cmd.PersistentFlags().String(key, "redis", WrapString("Shared cache backend (redis, memory, none)"))

	key = "redis-addr"
	cmd.PersistentFlags().String(key, "localhost:6379", WrapString("Address of the redis server used as shared cache"))

	key = "redis-password"
	cmd.PersistentFlags().String(key, "", WrapString("Password of the redis server"))

	key = "redis-db"
	cmd.PersistentFlags().Int(key, 0, WrapString("Redis database number"))

	key = "redis-prefix"
	cmd.PersistentFlags().String(key, "", WrapString("Prefix prepended to every key stored in redis"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 5, WrapString("Timeout in seconds of a single shared cache operation"))

	key = "degraded"
	cmd.PersistentFlags().Bool(key, false, WrapString("Replace the shared cache with a no-op stand-in, all reads and writes go to the env file"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Level at which logs will be output (debug, info, warn, error)"))
}

// InitConfig loads .env files and sets up viper to read DENV_* environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("denv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetConfig reads the configuration from viper and initializes the loggers
func GetConfig() (*common.Config, error) {
	backend, err := common.ParseCacheBackend(viper.GetString("cache"))
	if err != nil {
		return nil, err
	}

	conf := &common.Config{
		EnvFile: viper.GetString("env-file"),
		Cache:   backend,
		Redis: common.RedisConf{
			Addr:     viper.GetString("redis-addr"),
			Password: viper.GetString("redis-password"),
			DB:       viper.GetInt("redis-db"),
			Prefix:   viper.GetString("redis-prefix"),
		},
		Degraded:      viper.GetBool("degraded"),
		TimeoutSecond: viper.GetInt("timeout"),
		Endpoint:      viper.GetString("endpoint"),
		LogLevel:      viper.GetString("log-level"),
	}

	if conf.EnvFile == "" {
		return nil, fmt.Errorf("env-file must not be empty")
	}
	if err := common.InitLoggers(conf.LogLevel, os.Stderr); err != nil {
		return nil, err
	}
	return conf, nil
}

// NewCache creates the shared cache selected by the configuration
func NewCache(conf *common.Config) (cache.ICache, error) {
	switch conf.EffectiveCache() {
	case common.CacheBackendRedis:
		return rcache.New(rcache.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
			Prefix:   conf.Redis.Prefix,
			Timeout:  time.Duration(conf.TimeoutSecond) * time.Second,
		}), nil
	case common.CacheBackendMemory:
		return lcache.New(), nil
	case common.CacheBackendNone:
		return ncache.New(), nil
	default:
		return nil, fmt.Errorf("invalid cache backend %s", conf.Cache)
	}
}

// OpenRegistry creates the durable store, the shared cache and the registry of named values
func OpenRegistry(conf *common.Config) (*env.Registry, cache.ICache, error) {
	c, err := NewCache(conf)
	if err != nil {
		return nil, nil, err
	}

	reg, err := env.NewRegistry(filestore.NewOsStore(conf.EnvFile), c, nil)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return reg, c, nil
}
