package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const defaultPublishTimeout = 2 * time.Second

// KafkaPublisher writes JSON events through a single writer. The topic is
// set per message.
type KafkaPublisher struct {
	writer messageWriter
	cfg    Config
}

func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}
	return newKafkaPublisher(writer, cfg)
}

func newKafkaPublisher(w messageWriter, cfg Config) *KafkaPublisher {
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	return &KafkaPublisher{writer: w, cfg: cfg}
}

// BetsPlaced writes the batch in one call, keyed by company so a company's
// events stay ordered within its partition.
func (p *KafkaPublisher) BetsPlaced(ctx context.Context, events []BetPlaced) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for i := range events {
		msg, err := p.message(p.cfg.TopicBetPlaced, companyKey(events[i].CompanyID), events[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, msgs...)
}

// BetsSettled writes the settled bets of a fan-out in one call.
func (p *KafkaPublisher) BetsSettled(ctx context.Context, events []BetSettled) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for i := range events {
		msg, err := p.message(p.cfg.TopicBetSettled, companyKey(events[i].CompanyID), events[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.write(ctx, msgs...)
}

func (p *KafkaPublisher) CompanyResolved(ctx context.Context, event CompanyResolved) error {
	msg, err := p.message(p.cfg.TopicResolved, companyKey(event.CompanyID), event)
	if err != nil {
		return err
	}
	return p.write(ctx, msg)
}

func (p *KafkaPublisher) write(ctx context.Context, msgs ...kafka.Message) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.PublishTimeout)
	defer cancel()
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) message(topic, key string, payload any) (kafka.Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}, nil
}

func companyKey(companyID int64) string {
	return "company-" + strconv.FormatInt(companyID, 10)
}
