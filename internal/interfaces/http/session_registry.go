package http

import (
	"context"
	"sync"
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// SessionRegistry un Workspace por token, creado a demanda y cerrado tras idle sin uso.
type SessionRegistry struct {
	deps usecase.Deps
	idle time.Duration
	now  func() time.Time
	log  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	ws       *usecase.Workspace
	lastSeen time.Time
}

// NewSessionRegistry crea el registro. idle <= 0 desactiva la expiración.
func NewSessionRegistry(deps usecase.Deps, idle time.Duration, log *logger.Logger) *SessionRegistry {
	return &SessionRegistry{
		deps:     deps,
		idle:     idle,
		now:      time.Now,
		log:      log.Component("sessions"),
		sessions: map[string]*sessionEntry{},
	}
}

// Get devuelve el Workspace del token, creándolo si no existe.
func (r *SessionRegistry) Get(token string) *usecase.Workspace {
	return r.open(token, nil)
}

// Adopt registra la sesión recién autenticada con su usuario.
func (r *SessionRegistry) Adopt(token string, user entity.User) *usecase.Workspace {
	return r.open(token, &user)
}

func (r *SessionRegistry) open(token string, user *entity.User) *usecase.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[token]; ok {
		e.lastSeen = r.now()
		if user != nil {
			e.ws.Session.Set(token, user)
		}
		return e.ws
	}
	holder := session.NewHolder(token)
	if user != nil {
		holder.Set(token, user)
	}
	ws := usecase.NewWorkspace(r.deps, holder)
	r.sessions[token] = &sessionEntry{ws: ws, lastSeen: r.now()}
	r.log.Debug().Int("sessions", len(r.sessions)).Msg("sesión abierta")
	return ws
}

// Lookup devuelve el Workspace abierto del token sin crearlo.
func (r *SessionRegistry) Lookup(token string) (*usecase.Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[token]
	if !ok {
		return nil, false
	}
	return e.ws, true
}

// Drop cierra la sesión del token (logout).
func (r *SessionRegistry) Drop(token string) {
	r.mu.Lock()
	e, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		e.ws.Close()
	}
}

// Sweep cierra las sesiones sin uso por más de idle y devuelve cuántas cerró.
func (r *SessionRegistry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)
	var expired []*usecase.Workspace
	r.mu.Lock()
	for tok, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.ws)
			delete(r.sessions, tok)
		}
	}
	r.mu.Unlock()
	for _, ws := range expired {
		ws.Close()
	}
	if len(expired) > 0 {
		r.log.Debug().Int("closed", len(expired)).Msg("sesiones inactivas cerradas")
	}
	return len(expired)
}

// Run barre periódicamente hasta que ctx se cancele.
func (r *SessionRegistry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

// Len cantidad de sesiones abiertas.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close cierra todas las sesiones.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = map[string]*sessionEntry{}
	r.mu.Unlock()
	for _, e := range all {
		e.ws.Close()
	}
}

// Anonymous devuelve un AuthUseCase sobre una sesión vacía, para login y flujos públicos.
func (r *SessionRegistry) Anonymous() *usecase.AuthUseCase {
	return usecase.NewAuthUseCase(r.deps, session.NewHolder(""))
}
