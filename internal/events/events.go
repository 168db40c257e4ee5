// Package events publishes betting lifecycle events to Kafka.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config selects brokers and topics. Publishing is off unless Enabled.
type Config struct {
	Enabled         bool     `env:"KAFKA_ENABLED" env-default:"false"`
	Brokers         []string `env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	TopicBetPlaced  string   `env:"KAFKA_TOPIC_BETS_PLACED" env-default:"bets.placed"`
	TopicBetSettled string   `env:"KAFKA_TOPIC_BETS_SETTLED" env-default:"bets.settled"`
	TopicResolved   string   `env:"KAFKA_TOPIC_COMPANIES_RESOLVED" env-default:"companies.resolved"`

	// PublishTimeout bounds every write. It does not follow the caller's
	// cancellation, so an event for a committed change is not dropped
	// because the request finished.
	PublishTimeout time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" env-default:"2s"`
}

// BetPlaced is emitted once per bet after its batch commits.
type BetPlaced struct {
	BetID       uuid.UUID       `json:"betId"`
	UserID      uuid.UUID       `json:"userId"`
	CompanyID   int64           `json:"companyId"`
	CandidateID int             `json:"targetUserId"`
	BetType     string          `json:"betType"`
	Amount      int64           `json:"amount"`
	Stake       decimal.Decimal `json:"stake"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// BetSettled is emitted after a bet is archived. A fan-out publishes the
// events of all its bets in one batch once it has finished.
type BetSettled struct {
	BetID       uuid.UUID `json:"betId"`
	UserID      uuid.UUID `json:"userId"`
	CompanyID   int64     `json:"companyId"`
	CandidateID int       `json:"targetUserId"`
	Status      string    `json:"status"`
	Payout      int64     `json:"payout"`
	SettledAt   time.Time `json:"settledAt"`
}

// CompanyResolved is emitted after an administrator resolves a company or
// one of its candidates and the settlement fan-out has finished.
type CompanyResolved struct {
	CompanyID   int64           `json:"companyId"`
	CandidateID *int            `json:"targetUserId,omitempty"`
	Status      string          `json:"status,omitempty"`
	Result      string          `json:"result,omitempty"`
	HouseSkim   decimal.Decimal `json:"houseSkim"`
	Settled     int             `json:"settled"`
	Skipped     int             `json:"skipped"`
	Failed      int             `json:"failed"`
	ResolvedAt  time.Time       `json:"resolvedAt"`
}

// Publisher delivers events. Callers publish after commit and treat errors
// as non-fatal.
type Publisher interface {
	BetsPlaced(ctx context.Context, events []BetPlaced) error
	BetsSettled(ctx context.Context, events []BetSettled) error
	CompanyResolved(ctx context.Context, event CompanyResolved) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) BetsPlaced(context.Context, []BetPlaced) error          { return nil }
func (NopPublisher) BetsSettled(context.Context, []BetSettled) error        { return nil }
func (NopPublisher) CompanyResolved(context.Context, CompanyResolved) error { return nil }
func (NopPublisher) Close() error                                           { return nil }

// New returns a Kafka publisher when cfg.Enabled, otherwise a NopPublisher.
func New(cfg Config) Publisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}
