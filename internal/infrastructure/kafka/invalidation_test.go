package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

type writerFake struct{ msgs []kafka.Message }

func (w *writerFake) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}
func (w *writerFake) Close() error { return nil }

type readerFake struct {
	msgs []kafka.Message
	stop context.CancelFunc
}

func (r *readerFake) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.stop()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}
func (r *readerFake) Close() error { return nil }

func TestProducer_SendUsaRecursoComoClave(t *testing.T) {
	w := &writerFake{}
	p := &Producer{w: w}
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, p.Send(context.Background(), invalidate.Event{Resource: invalidate.Borrow, Origin: "a", At: at}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte(invalidate.Borrow), w.msgs[0].Key)

	e, err := Unmarshal(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "a", e.Origin)
	assert.True(t, at.Equal(e.At))
}

func TestConsumer_RunEntregaYDescartaIlegibles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	good, err := Marshal(invalidate.Event{Resource: invalidate.User, Origin: "b"})
	require.NoError(t, err)
	r := &readerFake{stop: cancel, msgs: []kafka.Message{
		{Value: []byte(`{roto`)},
		{Value: []byte(`{"origin":"b"}`)},
		{Value: good},
	}}
	c := &Consumer{r: r, log: logger.Nop()}

	var got []invalidate.Event
	err = c.Run(ctx, func(_ context.Context, e invalidate.Event) error {
		got = append(got, e)
		return errors.New("se registra y continúa")
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, invalidate.User, got[0].Resource)
}
