// Package errmsg traduce los errores del cliente a texto para el usuario. Es el único lugar
// donde se decide ese texto.
package errmsg

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
)

// Textos visibles.
const (
	LoginRequired    = "Inicia sesión primero."
	InvalidSession   = "La sesión no es válida. Inicia sesión de nuevo."
	NoPermission     = "No tienes permiso para realizar esta acción."
	InvalidData      = "Los datos recibidos no son válidos o tienen un formato incorrecto."
	InvalidInput     = "Los datos ingresados no son válidos."
	NoChanges        = "No hay cambios para actualizar."
	Unreachable      = "No se pudo conectar con el servidor. Revisa tu conexión."
	NotFound         = "El recurso solicitado no existe (404)."
	Unauthorized     = "No tienes permiso (401/403)."
	BadResponse      = "El servidor devolvió una respuesta no válida."
	PasswordMismatch = "La contraseña y su confirmación no coinciden."
)

// Message devuelve el texto para err o fallback cuando no hay uno más específico.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	e, ok := domain.AsError(err)
	if !ok {
		return fallback
	}
	switch e.Kind {
	case domain.KindPrecondition:
		switch e.Code {
		case domain.CodeMissingToken:
			return LoginRequired
		case domain.CodeInvalidToken:
			return InvalidSession
		default:
			return NoPermission
		}
	case domain.KindValidation:
		switch e.Code {
		case domain.CodeNoChanges:
			return NoChanges
		case domain.CodeInvalidInput:
			if e.Message == domain.ErrPasswordMismatch.Error() {
				return PasswordMismatch
			}
			if len(e.Fields) > 0 {
				return fmt.Sprintf("%s (%s)", InvalidInput, e.Fields[0])
			}
			return InvalidInput
		default:
			return InvalidData
		}
	case domain.KindTransport:
		return transport(e, fallback)
	case domain.KindApplication:
		if safe(e.Message) {
			return e.Message
		}
		return fallback
	default:
		return fallback
	}
}

func transport(e *domain.Error, fallback string) string {
	switch e.Code {
	case domain.CodeUnreachable:
		return Unreachable
	case domain.CodeBadEnvelope:
		return BadResponse
	}
	switch e.Status {
	case http.StatusNotFound:
		return NotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return Unauthorized
	case 0:
		return fallback
	}
	if safe(e.Message) {
		return e.Message
	}
	return fmt.Sprintf("Error del servidor (código %d).", e.Status)
}

// safe descarta mensajes vacíos o que filtran URLs internas.
func safe(msg string) bool {
	m := strings.ToLower(strings.TrimSpace(msg))
	return m != "" && !strings.Contains(m, "http://") && !strings.Contains(m, "https://")
}
