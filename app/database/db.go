package database

import (
	"fmt"
	"time"

	"github.com/joefazee/placement/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gLogger "gorm.io/gorm/logger"

	// import necessary for gorm to recognize the postgres driver
	_ "github.com/lib/pq"
)

type Config struct {
	Host         string `env:"DB_HOST"`
	Port         string `env:"DB_PORT" env-default:"5432"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASSWORD"`
	Database     string `env:"DB_NAME"`
	UseSSL       bool   `env:"DB_SSL_MODE"`
	LogQuery     bool   `env:"DB_LOG_QUERY"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
}

func (c *Config) Validate() error {
	if c.Host == "" ||
		c.Password == "" || c.Database == "" || c.User == "" {
		return models.ErrDatabaseCredentialNotConfigured
	}
	return nil
}

// DSN returns the libpq connection string for c.
func (c *Config) DSN() string {
	sslMode := "disable"
	if c.UseSSL {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.Port, sslMode)
}

// URL returns the postgres:// form used by the migrator.
func (c *Config) URL() string {
	sslMode := "disable"
	if c.UseSSL {
		sslMode = "require"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode)
}

func New(c *Config) (*gorm.DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg := &gorm.Config{}
	if !c.LogQuery {
		cfg.Logger = gLogger.Discard
	}

	db, err := gorm.Open(postgres.Open(c.DSN()), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	maxOpen := c.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	maxIdle := c.MaxIdleConns
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
