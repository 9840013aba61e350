// Package session guarda el token y el usuario autenticado de un llamador y aplica los guards
// de rol antes de cualquier I/O.
package session

import (
	"sync"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	pkgjwt "github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
)

var _ ports.TokenSource = (*Holder)(nil)

// Holder token + usuario de una sesión. Seguro para uso concurrente.
type Holder struct {
	mu    sync.RWMutex
	token string
	user  *entity.User
}

// NewHolder crea un Holder, opcionalmente con un token ya conocido (CLI, cabecera Bearer).
func NewHolder(token string) *Holder {
	return &Holder{token: token}
}

// Token implementa ports.TokenSource.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// User devuelve el usuario del login, si lo hay.
func (h *Holder) User() (entity.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return entity.User{}, false
	}
	return *h.user, true
}

// Set reemplaza token y usuario (login).
func (h *Holder) Set(token string, user *entity.User) {
	h.mu.Lock()
	h.token, h.user = token, user
	h.mu.Unlock()
}

// Clear borra la sesión (logout).
func (h *Holder) Clear() {
	h.Set("", nil)
}

// Require devuelve el token vigente o un error de precondición MISSING_TOKEN.
func Require(tokens ports.TokenSource) (string, error) {
	tok := tokens.Token()
	if tok == "" {
		return "", domain.NewPrecondition(domain.CodeMissingToken, "token no disponible", domain.ErrUnauthorized)
	}
	return tok, nil
}

// RequireAdmin exige token con rol ADMIN. El rol se lee del token sin verificar la firma:
// solo evita llamadas condenadas al fracaso, la API remota sigue autorizando.
func RequireAdmin(tokens ports.TokenSource) (string, error) {
	tok, err := Require(tokens)
	if err != nil {
		return "", err
	}
	claims, err := pkgjwt.Decode(tok)
	if err != nil {
		return "", domain.NewPrecondition(domain.CodeInvalidToken, "token ilegible", err)
	}
	if claims.Role != entity.RoleAdmin {
		return "", domain.NewPrecondition(domain.CodeForbidden, "se requiere rol ADMIN", domain.ErrForbidden)
	}
	return tok, nil
}

// Subject devuelve el userId del token (sin verificar), "" si no se puede leer.
func Subject(tokens ports.TokenSource) string {
	claims, err := pkgjwt.Decode(tokens.Token())
	if err != nil {
		return ""
	}
	if claims.UserID != "" {
		return claims.UserID
	}
	return claims.Subject
}
