// Package invalidate transporta avisos de "este recurso cambió, vuelve a cargarlo" entre las
// tablas (acciones de fila), los recursos y otras réplicas del BFF.
package invalidate

import (
	"context"
	"sync"
	"time"
)

// Recursos invalidables.
const (
	Inventory = "inventory"
	Borrow    = "borrow"
	Return    = "return"
	User      = "user"
)

// Event aviso de invalidación. Scope acota el recurso (p. ej. userId); vacío = todo.
// Origin identifica la réplica que lo emitió.
type Event struct {
	Resource string    `json:"resource"`
	Scope    string    `json:"scope,omitempty"`
	Origin   string    `json:"origin,omitempty"`
	At       time.Time `json:"at"`
}

// Matches indica si el evento afecta a un suscriptor de resource/scope.
func (e Event) Matches(resource, scope string) bool {
	if e.Resource != resource {
		return false
	}
	return e.Scope == "" || scope == "" || e.Scope == scope
}

// Handler reacciona a un evento.
type Handler func(ctx context.Context, e Event)

// Bus publica y distribuye eventos.
type Bus interface {
	Publish(ctx context.Context, e Event) error
	// Subscribe registra fn para resource; devuelve la función para darse de baja.
	Subscribe(resource string, fn Handler) (unsubscribe func())
}

// LocalBus bus en proceso. Publish invoca los handlers de forma síncrona en el goroutine
// del publicador.
type LocalBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

var _ Bus = (*LocalBus)(nil)

// NewLocalBus crea un bus vacío.
func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[string]map[int]Handler)}
}

func (b *LocalBus) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[e.Resource]))
	for _, h := range b.subs[e.Resource] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
	return nil
}

func (b *LocalBus) Subscribe(resource string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	if b.subs[resource] == nil {
		b.subs[resource] = make(map[int]Handler)
	}
	b.subs[resource][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[resource], id)
			b.mu.Unlock()
		})
	}
}

// Subscribers número de suscriptores de resource (diagnóstico y tests).
func (b *LocalBus) Subscribers(resource string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[resource])
}
