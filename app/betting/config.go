package betting

import "github.com/joefazee/placement/models"

// Config represents the configuration for the betting module
type Config struct {
	MaxTxRetries int `env:"BETTING_MAX_TX_RETRIES" env-default:"3"`
	MaxBatchSize int `env:"BETTING_MAX_BATCH_SIZE" env-default:"50"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.MaxTxRetries >= 0 && c.MaxTxRetries <= 10, models.ErrInvalidRetryLimit},
		{c.MaxBatchSize > 0 && c.MaxBatchSize <= 500, models.ErrInvalidBatchLimit},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default betting configuration
func GetDefaultConfig() *Config {
	return &Config{
		MaxTxRetries: 3,
		MaxBatchSize: 50,
	}
}
