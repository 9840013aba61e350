package dto

// ErrorResponse cuerpo de error HTTP del BFF.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError detalle de un campo inválido.
type FieldError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// MessageResponse respuesta simple de éxito.
type MessageResponse struct {
	Message string `json:"message"`
}
