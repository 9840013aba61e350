package invalidate

import (
	"context"
	"time"
)

// Remote publica eventos hacia otras réplicas (implementado por el adaptador Kafka).
type Remote interface {
	Send(ctx context.Context, e Event) error
}

// Fanout Bus que entrega localmente y además reenvía a otras réplicas.
type Fanout struct {
	Local  Bus
	Remote Remote
	Origin string
}

var _ Bus = (*Fanout)(nil)

func (f *Fanout) Publish(ctx context.Context, e Event) error {
	if e.Origin == "" {
		e.Origin = f.Origin
	}
	if err := f.Local.Publish(ctx, e); err != nil {
		return err
	}
	return f.Remote.Send(ctx, e)
}

func (f *Fanout) Subscribe(resource string, fn Handler) func() {
	return f.Local.Subscribe(resource, fn)
}

// Relay recibe eventos de otras réplicas: descarta los propios, invalida la caché compartida
// (Evict) y los reentrega en el bus local.
type Relay struct {
	Local  Bus
	Origin string
	Evict  func(ctx context.Context, e Event)
}

// Handle procesa un evento remoto.
func (r *Relay) Handle(ctx context.Context, e Event) error {
	if e.Origin != "" && e.Origin == r.Origin {
		return nil
	}
	if r.Evict != nil {
		r.Evict(ctx, e)
	}
	// Las claves ya se borraron: la marca local es la hora de este reloj, no la del emisor.
	e.At = time.Now()
	return r.Local.Publish(ctx, e)
}
