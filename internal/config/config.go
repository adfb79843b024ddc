package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	Env             string
	LogLevel        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	DefaultFilter   string
}

// Load читает конфигурацию из переменных окружения TODO_* и, если задан
// TODO_CONFIG, из файла.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 10*time.Second)
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("default_filter", "all")

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	filter := strings.ToLower(strings.TrimSpace(v.GetString("default_filter")))
	switch filter {
	case "all", "active", "completed":
	default:
		return Config{}, fmt.Errorf("invalid default_filter %q: want all, active or completed", v.GetString("default_filter"))
	}

	return Config{
		Port:            v.GetString("port"),
		Env:             v.GetString("env"),
		LogLevel:        v.GetString("log_level"),
		ReadTimeout:     v.GetDuration("read_timeout"),
		WriteTimeout:    v.GetDuration("write_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		DefaultFilter:   filter,
	}, nil
}

func (c Config) Development() bool {
	return c.Env == "development"
}
