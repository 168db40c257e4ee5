package settlement

import "github.com/joefazee/placement/models"

type Config struct {
	Concurrency  int `env:"SETTLEMENT_CONCURRENCY" env-default:"8"`
	MaxTxRetries int `env:"SETTLEMENT_MAX_TX_RETRIES" env-default:"3"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.Concurrency > 0 && c.Concurrency <= 64, models.ErrInvalidConcurrency},
		{c.MaxTxRetries >= 0 && c.MaxTxRetries <= 10, models.ErrInvalidRetryLimit},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default settlement configuration
func GetDefaultConfig() *Config {
	return &Config{
		Concurrency:  8,
		MaxTxRetries: 3,
	}
}
