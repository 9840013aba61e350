package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/config"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// messageWriter subconjunto de *kafka.Writer usado por Producer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica eventos de invalidación en un topic. Implementa invalidate.Remote.
type Producer struct {
	w messageWriter
}

var _ invalidate.Remote = (*Producer)(nil)

// NewProducer crea el productor. La clave del mensaje es el recurso, así los eventos de un
// mismo recurso conservan el orden dentro de su partición.
func NewProducer(cfg config.KafkaConfig) *Producer {
	return &Producer{w: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// Send serializa y escribe el evento.
func (p *Producer) Send(ctx context.Context, e invalidate.Event) error {
	value, err := Marshal(e)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(e.Resource), Value: value, Time: e.At}); err != nil {
		return fmt.Errorf("kafka: publicar invalidación: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *Producer) Close() error { return p.w.Close() }

// messageReader subconjunto de *kafka.Reader usado por Consumer.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer lee eventos de otras réplicas y los entrega a un handler (invalidate.Relay).
type Consumer struct {
	r   messageReader
	log *logger.Logger
}

// NewConsumer crea el consumidor. Cada réplica necesita su propio GroupID para recibir todos
// los eventos; con Group vacío se usa "<app>-<origin>".
func NewConsumer(cfg config.KafkaConfig, group string, log *logger.Logger) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     cfg.Brokers,
			GroupID:     group,
			Topic:       cfg.Topic,
			MinBytes:    1,
			MaxBytes:    1e6,
			StartOffset: kafka.LastOffset,
		}),
		log: log.Component("kafka"),
	}
}

// Run consume hasta que ctx se cancele. Los mensajes ilegibles se descartan con un warning.
func (c *Consumer) Run(ctx context.Context, handle func(context.Context, invalidate.Event) error) error {
	defer c.r.Close()
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("kafka: leer: %w", err)
		}
		e, err := Unmarshal(m.Value)
		if err != nil {
			c.log.Warn().Err(err).Int64("offset", m.Offset).Msg("evento de invalidación ilegible")
			continue
		}
		if err := handle(ctx, e); err != nil {
			c.log.Warn().Err(err).Str("resource", e.Resource).Msg("no se pudo aplicar la invalidación")
		}
	}
}

// Marshal serializa un evento.
func Marshal(e invalidate.Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("kafka: serializar evento: %w", err)
	}
	return b, nil
}

// Unmarshal deserializa un evento; exige el campo resource.
func Unmarshal(b []byte) (invalidate.Event, error) {
	var e invalidate.Event
	if err := json.Unmarshal(b, &e); err != nil {
		return e, fmt.Errorf("kafka: decodificar evento: %w", err)
	}
	if e.Resource == "" {
		return e, errors.New("kafka: evento sin resource")
	}
	return e, nil
}
