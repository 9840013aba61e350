package usecase

import (
	"sync"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
)

// scoped mantiene un recurso por usuario, creado a demanda y suscrito a invalidaciones.
type scoped[T any] struct {
	mu     sync.Mutex
	build  func(userID string) (*resource.Resource[T], func())
	items  map[string]*resource.Resource[T]
	unsubs []func()
}

func newScoped[T any](build func(userID string) (*resource.Resource[T], func())) *scoped[T] {
	return &scoped[T]{build: build, items: map[string]*resource.Resource[T]{}}
}

func (s *scoped[T]) get(userID string) *resource.Resource[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.items[userID]; ok {
		return r
	}
	r, unsub := s.build(userID)
	s.items[userID] = r
	s.unsubs = append(s.unsubs, unsub)
	return r
}

func (s *scoped[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}
