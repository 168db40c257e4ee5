package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

var testConfig = Config{
	Enabled:         true,
	Brokers:         []string{"localhost:9092"},
	TopicBetPlaced:  "bets.placed",
	TopicBetSettled: "bets.settled",
	TopicResolved:   "companies.resolved",
}

func TestNew(t *testing.T) {
	_, ok := New(Config{}).(NopPublisher)
	assert.True(t, ok)

	p, ok := New(testConfig).(*KafkaPublisher)
	require.True(t, ok)
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_BetsPlaced(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, testConfig)
	ctx := context.Background()

	assert.NoError(t, p.BetsPlaced(ctx, nil))
	assert.Empty(t, w.msgs)

	betID := uuid.New()
	err := p.BetsPlaced(ctx, []BetPlaced{
		{BetID: betID, CompanyID: 7, CandidateID: 1, BetType: "for", Amount: 300, Stake: decimal.RequireFromString("1.53")},
		{BetID: uuid.New(), CompanyID: 7, CandidateID: 2, BetType: "against", Amount: 50, Stake: decimal.RequireFromString("2.61")},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	msg := w.msgs[0]
	assert.Equal(t, "bets.placed", msg.Topic)
	assert.Equal(t, "company-7", string(msg.Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, betID.String(), decoded["betId"])
	assert.Equal(t, "1.53", decoded["stake"])
	assert.Equal(t, float64(300), decoded["amount"])
}

func TestKafkaPublisher_SettledAndResolved(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, testConfig)
	ctx := context.Background()

	assert.NoError(t, p.BetsSettled(ctx, nil))
	require.NoError(t, p.BetsSettled(ctx, []BetSettled{
		{BetID: uuid.New(), CompanyID: 3, Status: "won", Payout: 459, SettledAt: time.Now()},
		{BetID: uuid.New(), CompanyID: 3, Status: "lost", SettledAt: time.Now()},
	}))
	candidate := 4
	require.NoError(t, p.CompanyResolved(ctx, CompanyResolved{CompanyID: 3, CandidateID: &candidate, Result: "won", Settled: 2}))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "bets.settled", w.msgs[0].Topic)
	assert.Equal(t, "bets.settled", w.msgs[1].Topic)
	assert.Equal(t, "company-3", string(w.msgs[1].Key))
	assert.Equal(t, "companies.resolved", w.msgs[2].Topic)
	assert.Contains(t, string(w.msgs[2].Value), `"targetUserId":4`)

	w.err = errors.New("broker down")
	assert.Error(t, p.BetsSettled(ctx, []BetSettled{{}}))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

// stuckWriter blocks until its context ends, like a writer facing
// unreachable brokers.
type stuckWriter struct {
	deadline time.Time
}

func (s *stuckWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	s.deadline, _ = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (s *stuckWriter) Close() error { return nil }

func TestKafkaPublisher_WriteIsBounded(t *testing.T) {
	cfg := testConfig
	cfg.PublishTimeout = 20 * time.Millisecond
	w := &stuckWriter{}
	p := newKafkaPublisher(w, cfg)

	start := time.Now()
	err := p.BetsSettled(context.Background(), []BetSettled{{CompanyID: 1}})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, w.deadline.IsZero())
}

func TestKafkaPublisher_OutlivesCallerCancellation(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, testConfig)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.CompanyResolved(ctx, CompanyResolved{CompanyID: 2}))
	assert.Len(t, w.msgs, 1)
	assert.Equal(t, defaultPublishTimeout, p.cfg.PublishTimeout)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	ctx := context.Background()
	assert.NoError(t, p.BetsPlaced(ctx, []BetPlaced{{}}))
	assert.NoError(t, p.BetsSettled(ctx, []BetSettled{{}}))
	assert.NoError(t, p.CompanyResolved(ctx, CompanyResolved{}))
	assert.NoError(t, p.Close())
}
