package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUnauthorized     = errors.New("no autenticado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrPasswordMismatch = errors.New("la contraseña y su confirmación no coinciden")
)

// Kind clasifica un fallo en el punto donde ocurre. Es un conjunto cerrado:
// la traducción a texto para el usuario se hace en un solo lugar (errmsg).
type Kind int

const (
	// KindPrecondition: token ausente/inválido o rol insuficiente; ocurre antes de cualquier I/O.
	KindPrecondition Kind = iota + 1
	// KindTransport: red inaccesible o respuesta HTTP no-2xx.
	KindTransport
	// KindApplication: HTTP 2xx pero el envelope trae status:false.
	KindApplication
	// KindValidation: el payload no cumple el esquema tras coerción/normalización.
	KindValidation
	// KindCache: entrada de caché corrupta o backend caído; nunca es fatal.
	KindCache
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindValidation:
		return "validation"
	case KindCache:
		return "cache"
	default:
		return "unknown"
	}
}

// Códigos estables por tipo de error.
const (
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeForbidden    = "FORBIDDEN"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNoChanges    = "NO_CHANGES"
	CodeUnreachable  = "UNREACHABLE"
	CodeHTTPStatus   = "HTTP_STATUS"
	CodeBadEnvelope  = "BAD_ENVELOPE"
	CodeRejected     = "REJECTED"
	CodeInvalidData  = "INVALID_DATA"
	CodeCacheCorrupt = "CACHE_CORRUPT"
	CodeCacheBackend = "CACHE_BACKEND"
)

// FieldError ruta y motivo de un campo que no pasó la validación.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string { return f.Path + ": " + f.Reason }

// Error es el error estructurado que producen cliente, caché, esquema y casos de uso.
type Error struct {
	Kind    Kind
	Code    string
	Message string       // detalle crudo (mensaje del servidor, texto técnico)
	Status  int          // código HTTP cuando aplica
	Fields  []FieldError // solo KindValidation
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + "/" + e.Code
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewPrecondition construye un error de precondición (token/rol).
func NewPrecondition(code, message string, err error) *Error {
	return &Error{Kind: KindPrecondition, Code: code, Message: message, Err: err}
}

// NewTransport construye un error de transporte.
func NewTransport(code string, status int, message string, err error) *Error {
	return &Error{Kind: KindTransport, Code: code, Status: status, Message: message, Err: err}
}

// NewApplication construye un error de aplicación (status:false en el envelope).
func NewApplication(status int, message string) *Error {
	return &Error{Kind: KindApplication, Code: CodeRejected, Status: status, Message: message}
}

// NewValidation construye un error de validación con las rutas de los campos.
func NewValidation(code, message string, fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

// NewCache construye un error de caché.
func NewCache(code string, err error) *Error {
	return &Error{Kind: KindCache, Code: code, Err: err}
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf devuelve el Kind del error o 0 si no es un *Error.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return 0
}
