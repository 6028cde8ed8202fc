package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"atoll/config"
	"atoll/infras/metrics"
	"atoll/infras/otel"
	"atoll/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	otelAttrTopic    = "kafka.topic"
	otelAttrMessages = "kafka.messages"
	writeTimeout     = 10 * time.Second
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Publisher writes JSON encoded messages. When Kafka is disabled every Publish is a no-op.
type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type publisherImpl struct {
	writer  messageWriter
	otel    otel.Otel
	metrics metrics.Metrics
}

func New(cfg *config.Config, otl otel.Otel, m metrics.Metrics) Publisher {
	if !cfg.Kafka.Enable || len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("Kafka publisher disabled")

		return &publisherImpl{otel: otl, metrics: m}
	}

	transport := &kafkaGo.Transport{}
	if cfg.Kafka.SASL.Username != constant.Empty {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka publisher initialized")

	return NewWithWriter(writer, otl, m)
}

// NewWithWriter builds a publisher on top of an existing writer.
func NewWithWriter(writer messageWriter, otl otel.Otel, m metrics.Metrics) Publisher {
	return &publisherImpl{
		writer:  writer,
		otel:    otl,
		metrics: m,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrTopic:    topic,
		otelAttrMessages: len(messages),
	})

	if p.writer == nil || len(messages) == 0 {
		return nil
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err = p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.metrics.ObserveEvent(topic, metrics.EventStatusFailed)
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	p.metrics.ObserveEvent(topic, metrics.EventStatusSent)
	log.Info().Str("topic", topic).Int("messages", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (p *publisherImpl) Close() error {
	if p.writer == nil {
		return nil
	}

	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
