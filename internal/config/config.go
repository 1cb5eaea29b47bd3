package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App holds every runtime setting, populated from the environment.
type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	// Redis (session store)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	// Sessions
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	// Network
	ServerAddr   string        `envconfig:"SERVER_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
