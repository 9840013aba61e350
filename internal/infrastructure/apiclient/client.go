package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa APIClient.
var _ ports.APIClient = (*Client)(nil)

// maxBody límite de lectura de respuestas (colecciones completas del inventario).
const maxBody = 8 << 20

// Client adaptador HTTP de ports.APIClient sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New construye el cliente. timeout 0 = sin timeout: el llamador controla la cancelación
// mediante el context.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("apiclient"),
	}
}

// envelopeWire detecta la ausencia de status (no basta con el zero value de bool).
type envelopeWire struct {
	Status  *bool           `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Do ejecuta la petición y clasifica el resultado.
func (c *Client) Do(ctx context.Context, r ports.Request) (*ports.Envelope, error) {
	if r.Token == "" && !r.Anonymous {
		return nil, domain.NewPrecondition(domain.CodeMissingToken, "token no disponible", domain.ErrUnauthorized)
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: crear request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewTransport(domain.CodeUnreachable, 0, "petición cancelada", ctxErr)
		}
		return nil, domain.NewTransport(domain.CodeUnreachable, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, domain.NewTransport(domain.CodeUnreachable, resp.StatusCode, "lectura de respuesta interrumpida", err)
	}
	c.log.Debug().
		Str("method", r.Method).
		Str("path", r.Path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api")

	var wire envelopeWire
	decodeErr := json.Unmarshal(raw, &wire)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decodeErr == nil {
			msg = firstNonEmpty(wire.Message, wire.Error)
		}
		var cause error
		if resp.StatusCode == http.StatusNotFound {
			cause = domain.ErrNotFound
		}
		return nil, domain.NewTransport(domain.CodeHTTPStatus, resp.StatusCode, msg, cause)
	}

	if decodeErr != nil || wire.Status == nil {
		if decodeErr == nil {
			decodeErr = errors.New("falta el campo status")
		}
		return nil, domain.NewTransport(domain.CodeBadEnvelope, resp.StatusCode, "respuesta sin envoltura válida", decodeErr)
	}
	if !*wire.Status {
		return nil, domain.NewApplication(resp.StatusCode, firstNonEmpty(wire.Message, wire.Error))
	}
	return &ports.Envelope{Status: true, Message: wire.Message, Data: wire.Data}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
