// Package resource implementa el núcleo común de los recursos por entidad: lee la caché,
// llama a la API, valida, reemplaza el estado y escribe la caché. Cada entidad lo configura
// con su política, clave, TTL, endpoint y validador.
package resource

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/errmsg"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Policy decide cómo se combinan caché y red en Fetch(ctx, false).
type Policy int

const (
	// CacheFirst: una entrada vigente y válida responde sola, sin llamada de red.
	CacheFirst Policy = iota + 1
	// NetworkWithCacheSeed: la entrada vigente siembra el estado y la red se consulta igual.
	NetworkWithCacheSeed
	// NetworkOnly: sin caché.
	NetworkOnly
)

func (p Policy) String() string {
	switch p {
	case CacheFirst:
		return "cache-first"
	case NetworkWithCacheSeed:
		return "network-with-cache-seed"
	case NetworkOnly:
		return "network-only"
	default:
		return "unknown"
	}
}

// Source origen de los datos vigentes.
type Source string

const (
	SourceNone    Source = ""
	SourceCache   Source = "cache"
	SourceNetwork Source = "network"
)

// State estado observable de un recurso.
type State[T any] struct {
	Data      []T       `json:"data"`
	Loading   bool      `json:"loading"`
	Err       error     `json:"-"`
	Message   string    `json:"error,omitempty"`
	Source    Source    `json:"source,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Config describe un recurso concreto.
type Config[T any] struct {
	Name   string // para logs
	Policy Policy
	Key    string        // clave de caché (ignorada con NetworkOnly)
	TTL    time.Duration // vigencia de la entrada de caché
	// Guard valida token/rol antes de cualquier I/O y devuelve el token a usar.
	Guard func() (string, error)
	// Request construye la petición de listado.
	Request func(token string) ports.Request
	// Field clave dentro de data donde viene la colección ("borrows", "users", ...).
	Field string
	// Decode normaliza y valida la colección (schema.Borrows, ...).
	Decode func(raw []byte) ([]T, error)
	// Fallback texto cuando el error no tiene uno específico.
	Fallback string
	// Redact limpia cada registro antes de escribirlo en la caché (compartida entre réplicas).
	Redact func(T) T
}

// Deps dependencias compartidas.
type Deps struct {
	API   ports.APIClient
	Cache *cache.Store // nil solo con NetworkOnly
	Log   *logger.Logger
	Now   func() time.Time
}

// Resource estado + operaciones de una colección. Seguro para uso concurrente: cada Fetch
// lleva un número de secuencia y una finalización más antigua que la última aplicada se
// descarta (gana la emitida más recientemente).
type Resource[T any] struct {
	cfg  Config[T]
	deps Deps
	log  *logger.Logger

	seq atomic.Uint64

	mu       sync.Mutex
	state    State[T]
	inflight int
	applied  uint64 // secuencia de la última aplicación de datos
	errSeq   uint64 // secuencia del último error registrado
	// staleBefore las entradas de caché escritas antes de esta hora se ignoran (invalidación).
	staleBefore time.Time
}

// New crea un recurso con estado vacío (Data = []).
func New[T any](cfg Config[T], deps Deps) *Resource[T] {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Resource[T]{
		cfg:   cfg,
		deps:  deps,
		log:   deps.Log.Component("resource." + cfg.Name),
		state: State[T]{Data: []T{}},
	}
}

// Name nombre del recurso.
func (r *Resource[T]) Name() string { return r.cfg.Name }

// Snapshot copia del estado actual.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resource[T]) snapshotLocked() State[T] {
	s := r.state
	s.Data = append(make([]T, 0, len(r.state.Data)), r.state.Data...)
	return s
}

// Fetch carga la colección. Nunca devuelve error: los fallos quedan en State.Err/Message y los
// datos previos se conservan. force=true ignora la caché.
func (r *Resource[T]) Fetch(ctx context.Context, force bool) State[T] {
	seq := r.seq.Add(1)
	r.begin()
	r.load(ctx, seq, force)
	r.end()
	return r.Snapshot()
}

func (r *Resource[T]) load(ctx context.Context, seq uint64, force bool) {
	token, err := r.cfg.Guard()
	if err != nil {
		r.fail(seq, err)
		return
	}

	if !force && r.cfg.Policy != NetworkOnly {
		if items, ok := r.fromCache(ctx); ok {
			r.apply(seq, items, SourceCache)
			if r.cfg.Policy == CacheFirst {
				return
			}
		}
	}

	items, err := r.fromNetwork(ctx, token)
	if err != nil {
		r.fail(seq, err)
		return
	}
	if r.apply(seq, items, SourceNetwork) && r.cfg.Policy != NetworkOnly {
		r.writeCache(ctx, items)
	}
}

// Mutate ejecuta una mutación: guard → call (que valida la entrada y llama a la API) →
// Fetch(ctx, true). El estado local nunca se parchea con la respuesta: se reconcilia
// recargando. Un fallo se registra en el estado y se devuelve como *Failure.
func (r *Resource[T]) Mutate(ctx context.Context, fallback string, call func(ctx context.Context, token string) error) error {
	token, err := r.cfg.Guard()
	if err == nil {
		r.begin()
		err = call(ctx, token)
		r.end()
	}
	if err != nil {
		msg := errmsg.Message(err, fallback)
		r.mu.Lock()
		r.errSeq = r.seq.Load()
		r.state.Err, r.state.Message = err, msg
		r.mu.Unlock()
		r.log.Warn().Err(err).Msg("mutación fallida")
		return &Failure{Message: msg, Err: err}
	}
	r.Fetch(ctx, true)
	return nil
}

// Listen suscribe el recurso a invalidaciones de resource/scope. Un evento no recarga: marca
// como obsoletas las entradas de caché escritas antes de e.At (o de ahora si no trae hora), y
// la próxima Fetch(false) va a la red. La primera sesión que recarga reescribe la clave
// compartida y las demás vuelven a leerla de la caché. Devuelve la función de baja.
func (r *Resource[T]) Listen(bus invalidate.Bus, resource, scope string) func() {
	return bus.Subscribe(resource, func(_ context.Context, e invalidate.Event) {
		if !e.Matches(resource, scope) {
			return
		}
		r.Invalidate(e.At)
		r.log.Debug().Str("origin", e.Origin).Msg("invalidación recibida")
	})
}

// Invalidate descarta las entradas de caché escritas antes de at; at cero = ahora.
func (r *Resource[T]) Invalidate(at time.Time) {
	if at.IsZero() {
		at = r.deps.Now()
	}
	r.mu.Lock()
	if at.After(r.staleBefore) {
		r.staleBefore = at
	}
	r.mu.Unlock()
}

func (r *Resource[T]) fromCache(ctx context.Context) ([]T, bool) {
	if r.deps.Cache == nil {
		return nil, false
	}
	entry, ok := r.deps.Cache.Lookup(ctx, r.cfg.Key)
	if !ok {
		r.log.Debug().Str("key", r.cfg.Key).Msg("cache miss")
		return nil, false
	}
	if !cache.IsFresh(entry.Age, r.cfg.TTL) {
		r.log.Debug().Str("key", r.cfg.Key).Dur("age", entry.Age).Msg("cache vencida")
		return nil, false
	}
	r.mu.Lock()
	staleBefore := r.staleBefore
	r.mu.Unlock()
	if entry.StoredAt.Before(staleBefore) {
		r.log.Debug().Str("key", r.cfg.Key).Msg("cache invalidada")
		return nil, false
	}
	items, err := r.cfg.Decode(entry.Payload)
	if err != nil {
		r.log.Warn().Err(err).Str("key", r.cfg.Key).Msg("entrada de caché inválida, se consulta la red")
		return nil, false
	}
	r.log.Debug().Str("key", r.cfg.Key).Int("items", len(items)).Msg("cache hit")
	return items, true
}

func (r *Resource[T]) fromNetwork(ctx context.Context, token string) ([]T, error) {
	env, err := r.deps.API.Do(ctx, r.cfg.Request(token))
	if err != nil {
		return nil, err
	}
	raw, ok := env.Field(r.cfg.Field)
	if !ok {
		return nil, domain.NewValidation(domain.CodeInvalidData, "respuesta sin colección",
			[]domain.FieldError{{Path: "data." + r.cfg.Field, Reason: "requerido"}})
	}
	items, err := r.cfg.Decode(raw)
	if err != nil {
		if e, ok := domain.AsError(err); ok {
			r.log.Warn().Interface("fields", e.Fields).Msg("respuesta del servidor inválida")
		}
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) writeCache(ctx context.Context, items []T) {
	if r.cfg.Redact != nil {
		redacted := make([]T, len(items))
		for i, it := range items {
			redacted[i] = r.cfg.Redact(it)
		}
		items = redacted
	}
	payload, err := json.Marshal(items)
	if err != nil {
		r.log.Warn().Err(err).Msg("no se pudo serializar para caché")
		return
	}
	if err := r.deps.Cache.Write(ctx, r.cfg.Key, payload); err != nil {
		r.log.Warn().Err(err).Str("key", r.cfg.Key).Msg("escritura de caché fallida")
	}
}

func (r *Resource[T]) begin() {
	r.mu.Lock()
	r.inflight++
	r.state.Loading = true
	r.mu.Unlock()
}

func (r *Resource[T]) end() {
	r.mu.Lock()
	r.inflight--
	r.state.Loading = r.inflight > 0
	r.mu.Unlock()
}

// apply reemplaza los datos si seq no es más antigua que la última aplicada.
func (r *Resource[T]) apply(seq uint64, items []T, src Source) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.applied {
		r.log.Debug().Uint64("seq", seq).Uint64("applied", r.applied).Msg("finalización obsoleta descartada")
		return false
	}
	r.applied = seq
	r.state.Data = items
	r.state.Source = src
	r.state.UpdatedAt = r.deps.Now()
	if seq >= r.errSeq {
		r.state.Err, r.state.Message = nil, ""
	}
	return true
}

// fail registra el error sin tocar los datos.
func (r *Resource[T]) fail(seq uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq < r.applied {
		r.log.Debug().Err(err).Uint64("seq", seq).Msg("error de una carga obsoleta descartado")
		return
	}
	r.errSeq = seq
	r.state.Err = err
	r.state.Message = errmsg.Message(err, r.cfg.Fallback)
	r.log.Warn().Err(err).Msg("carga fallida")
}

// Failure error devuelto por Mutate: Message es el texto para el usuario y Err el error
// clasificado original.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }
