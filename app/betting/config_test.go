package betting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joefazee/placement/models"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"no retries", func(c *Config) { c.MaxTxRetries = 0 }, nil},
		{"negative retries", func(c *Config) { c.MaxTxRetries = -1 }, models.ErrInvalidRetryLimit},
		{"too many retries", func(c *Config) { c.MaxTxRetries = 11 }, models.ErrInvalidRetryLimit},
		{"empty batch", func(c *Config) { c.MaxBatchSize = 0 }, models.ErrInvalidBatchLimit},
		{"huge batch", func(c *Config) { c.MaxBatchSize = 501 }, models.ErrInvalidBatchLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
