package storage

import (
	"errors"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config selects and locates the storage tiers.
type Config struct {
	Path        string        `mapstructure:"path"`
	Backend     string        `mapstructure:"backend"`
	Fallback    string        `mapstructure:"fallback"`
	Redis       RedisConfig   `mapstructure:"redis"`
	QuietPeriod time.Duration `mapstructure:"quiet_period"`
	ExportDir   string        `mapstructure:"export_dir"`
}

// RedisConfig locates the Redis fallback.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"

	FallbackBolt   = "bolt"
	FallbackRedis  = "redis"
	FallbackMemory = "memory"
)

// LoadConfig reads .stickies.yaml from $STICKIES_CONFIG_PATH or the working
// directory and overlays STICKIES_* environment variables. A missing config
// file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.stickies")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("fallback", FallbackBolt)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("quiet_period", "1s")
	v.SetDefault("export_dir", "~")
	v.SetConfigName(".stickies") // .yaml is implicit
	v.SetEnvPrefix("STICKIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("STICKIES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg.normalize()
}

func (c *Config) normalize() (*Config, error) {
	var err error
	if c.Path, err = homedir.Expand(c.Path); err != nil {
		return nil, err
	}
	if c.ExportDir, err = homedir.Expand(c.ExportDir); err != nil {
		return nil, err
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Fallback = strings.ToLower(strings.TrimSpace(c.Fallback))
	if c.QuietPeriod <= 0 {
		c.QuietPeriod = time.Second
	}
	return c, nil
}
