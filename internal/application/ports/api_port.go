package ports

import (
	"bytes"
	"context"
	"encoding/json"
)

// Request petición a la API REST remota. Path es relativo a la URL base ("/admin/borrows").
// Body se serializa como JSON cuando no es nil.
type Request struct {
	Method string
	Path   string
	Token  string
	Body   any
	// Anonymous permite llamar sin token (login, registro, recuperación de contraseña).
	Anonymous bool
}

// Envelope envoltura común {status, message, data} de todas las respuestas de la API.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Field devuelve data[key] en crudo. ok=false si data no es un objeto, si falta la clave o
// si su valor es null.
func (e *Envelope) Field(key string) (json.RawMessage, bool) {
	if e == nil || len(e.Data) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &obj); err != nil {
		return nil, false
	}
	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// APIClient puerto de salida hacia la API REST de préstamos.
// Implementaciones: apiclient.Client (HTTP) y fakes en tests.
type APIClient interface {
	// Do ejecuta la petición. Devuelve *domain.Error de tipo Precondition (sin token),
	// Transport (red o no-2xx) o Application (status:false). Sin reintentos ni caché.
	Do(ctx context.Context, req Request) (*Envelope, error)
}

// TokenSource entrega el token vigente del llamador; "" significa sin sesión.
type TokenSource interface {
	Token() string
}
