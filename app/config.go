package app

import (
	"github.com/joefazee/placement/app/betting"
	"github.com/joefazee/placement/app/database"
	"github.com/joefazee/placement/app/settlement"
	"github.com/joefazee/placement/app/user"
	"github.com/joefazee/placement/internal/cache"
	"github.com/joefazee/placement/internal/events"
	"github.com/joefazee/placement/internal/nexus"
)

type Config struct {
	DB         database.Config
	User       user.Config
	Betting    betting.Config
	Settlement settlement.Config
	Cache      cache.Config
	Events     events.Config

	AppHost  string `env:"APP_HOST" env-default:"0.0.0.0"`
	AppPort  string `env:"APP_PORT" env-default:"8080"`
	Env      string `env:"APP_ENV" env-default:"development" validate:"oneof=development test staging production"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

// Validate runs every module's own checks.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.DB,
		&c.User,
		&c.Betting,
		&c.Settlement,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

// LoadConfig loads the application configuration from environment variables
// or a config file.
func LoadConfig(opts ...nexus.Option) (*Config, error) {
	c := &Config{}
	if err := nexus.Load(c, opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
