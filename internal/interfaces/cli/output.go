package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/errmsg"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // La API o la caché fallaron, o la API rechazó la operación
	ExitCommandError = 2 // Uso incorrecto: flags, entrada inválida, sin sesión o sin permiso
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
	// reported: el mensaje ya se escribió en la salida del comando.
	reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// exitCodeFor: errores del llamador (precondición, entrada inválida) → 2, el resto → 1.
func exitCodeFor(err error) int {
	e, ok := domain.AsError(err)
	if !ok {
		return ExitFailure
	}
	switch {
	case e.Kind == domain.KindPrecondition:
		return ExitCommandError
	case e.Kind == domain.KindValidation && e.Code != domain.CodeInvalidData:
		return ExitCommandError
	default:
		return ExitFailure
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func (f *OutputFormatter) json() bool { return f.Format == "json" }

func (f *OutputFormatter) writeJSON(v CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table imprime la tabla; si el recurso quedó con error, las filas vigentes se imprimen igual
// y el comando termina con ExitFailure.
func (f *OutputFormatter) Table(t table.RenderedTable, st resource.Source, message string, cause error) error {
	if f.Verbose && st != resource.SourceNone {
		fmt.Fprintf(f.ErrWriter, "origen: %s\n", st)
	}
	if f.json() {
		resp := CLIResponse{Status: "ok", Data: t}
		if message != "" {
			resp.Status = "error"
			resp.Error = cliError(cause, message)
		}
		if err := f.writeJSON(resp); err != nil {
			return err
		}
	} else {
		if err := table.WriteText(f.Writer, t); err != nil {
			return err
		}
		if message != "" {
			fmt.Fprintln(f.ErrWriter, "error:", message)
		}
	}
	if message == "" {
		return nil
	}
	return &ExitError{Code: exitCodeFor(cause), Message: message, Err: cause, reported: true}
}

// Success imprime el resultado de una operación.
func (f *OutputFormatter) Success(message string, data any) error {
	if f.json() {
		if data == nil {
			data = map[string]string{"message": message}
		}
		return f.writeJSON(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, message)
	return err
}

// Fail informa err (texto vía errmsg) y devuelve el ExitError correspondiente.
func (f *OutputFormatter) Fail(err error, fallback string) error {
	msg := errmsg.Message(err, fallback)
	var fail *resource.Failure
	if errors.As(err, &fail) {
		msg = fail.Message
	}
	if f.json() {
		_ = f.writeJSON(CLIResponse{Status: "error", Error: cliError(err, msg)})
	} else {
		fmt.Fprintln(f.ErrWriter, "error:", msg)
		if e, ok := domain.AsError(err); ok {
			for _, fe := range e.Fields {
				fmt.Fprintf(f.ErrWriter, "  %s\n", fe)
			}
		}
		if f.Verbose {
			fmt.Fprintln(f.ErrWriter, "detalle:", err)
		}
	}
	return &ExitError{Code: exitCodeFor(err), Message: msg, Err: err, reported: true}
}

func cliError(err error, msg string) *CLIError {
	out := &CLIError{Code: "ERROR", Message: msg}
	if e, ok := domain.AsError(err); ok {
		out.Code = e.Code
		out.Fields = e.Fields
	}
	return out
}
