package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/memory"
	apphttp "github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/http"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
	pkgjwt "github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

const stamp = "2024-05-01T08:00:00Z"

type apiCall struct {
	method, path string
	body         map[string]any
}

// remoteAPI API remota falsa: responde por "MÉTODO ruta" con el data indicado.
type remoteAPI struct {
	mu     sync.Mutex
	routes map[string]func() (*ports.Envelope, error)
	calls  []apiCall
}

func newRemoteAPI() *remoteAPI {
	return &remoteAPI{routes: map[string]func() (*ports.Envelope, error){}}
}

func (r *remoteAPI) reply(method, path string, data map[string]any) {
	raw, _ := json.Marshal(data)
	r.routes[method+" "+path] = func() (*ports.Envelope, error) {
		return &ports.Envelope{Status: true, Message: "ok", Data: raw}, nil
	}
}

func (r *remoteAPI) fail(method, path string, err error) {
	r.routes[method+" "+path] = func() (*ports.Envelope, error) { return nil, err }
}

func (r *remoteAPI) Do(_ context.Context, req ports.Request) (*ports.Envelope, error) {
	var body map[string]any
	if req.Body != nil {
		raw, _ := json.Marshal(req.Body)
		_ = json.Unmarshal(raw, &body)
	}
	r.mu.Lock()
	r.calls = append(r.calls, apiCall{method: req.Method, path: req.Path, body: body})
	fn, ok := r.routes[req.Method+" "+req.Path]
	r.mu.Unlock()
	if !ok {
		return nil, domain.NewTransport(domain.CodeHTTPStatus, 404, "not found", nil)
	}
	return fn()
}

func (r *remoteAPI) last(method, path string) (apiCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if c := r.calls[i]; c.method == method && c.path == path {
			return c, true
		}
	}
	return apiCall{}, false
}

func (r *remoteAPI) count(method, path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.method == method && c.path == path {
			n++
		}
	}
	return n
}

func inventoryRow(name, condition string) map[string]any {
	return map[string]any{
		"inventoryId": "inv-" + name, "name": name, "quantity": 3, "condition": condition,
		"code": "C-" + name, "createdAt": stamp, "updatedAt": stamp, "deletedAt": nil,
	}
}

type bff struct {
	app      *fiber.App
	api      *remoteAPI
	sessions *apphttp.SessionRegistry
}

func newBFF(t *testing.T) *bff {
	t.Helper()
	return newBFFWithClock(t, time.Now)
}

// testClock reloj manual compartido por caché, recursos y router.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func signedAs(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func newBFFWithClock(t *testing.T, now func() time.Time) *bff {
	t.Helper()
	api := newRemoteAPI()
	api.reply(http.MethodGet, "/inventory/inventories", map[string]any{
		"inventories": []any{inventoryRow("Proyector", "Available"), inventoryRow("Kamera", "Damaged")},
	})
	bus := invalidate.NewLocalBus()
	log := logger.Nop()
	deps := usecase.Deps{
		API:   api,
		Cache: cache.NewStore(memory.NewCacheRepository(), log, cache.WithClock(now)),
		Bus:   bus,
		Log:   log,
		TTLs:  usecase.DefaultTTLs(),
		Now:   now,
	}
	sessions := apphttp.NewSessionRegistry(deps, 0, log)
	t.Cleanup(sessions.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions:  sessions,
		Bus:       bus,
		Formatter: table.DefaultFormatter(),
		JWTSecret: testJWTSecret,
		Origin:    "test",
		Now:       now,
		Log:       log,
	})
	return &bff{app: app, api: api, sessions: sessions}
}

func (b *bff) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestTables_InventariosAdmin(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodGet, "/api/tables/inventories?sort=name", signed(t, "ADMIN", testExpMin), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view apphttp.TableView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "inventories", view.Table.Name)
	require.Len(t, view.Table.Rows, 2)
	assert.Equal(t, "Kamera", view.Table.Rows[0][0].Text)
	assert.Equal(t, "network", string(view.Source))
	assert.False(t, view.Loading)
	assert.NotEmpty(t, view.Table.Actions)
	assert.Equal(t, 1, b.sessions.Len())
}

func TestTables_BorrowerNoVeTablasAdmin(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodGet, "/api/tables/users", signed(t, "BORROWER", testExpMin), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, called := b.api.last(http.MethodGet, "/admin/users")
	assert.False(t, called, "la API no debe consultarse sin rol")
}

func TestTables_CatalogoParaBorrower(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodGet, "/api/tables/catalog?filter=condition:Available", signed(t, "BORROWER", testExpMin), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view apphttp.TableView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Len(t, view.Table.Rows, 1)
	assert.Equal(t, "Proyector", view.Table.Rows[0][0].Text)
	assert.Empty(t, view.Table.Actions)
}

func TestTables_Errores(t *testing.T) {
	b := newBFF(t)
	tok := signed(t, "ADMIN", testExpMin)

	assert.Equal(t, http.StatusNotFound, b.do(t, http.MethodGet, "/api/tables/facturas", tok, "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, b.do(t, http.MethodGet, "/api/tables/catalog?sort=precio", tok, "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, b.do(t, http.MethodGet, "/api/tables/catalog?filter=sinvalor", tok, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, b.do(t, http.MethodGet, "/api/tables/catalog", "", "").StatusCode)
}

// Un fallo de red deja el mensaje en la vista y conserva las filas anteriores.
func TestTables_FalloConservaFilas(t *testing.T) {
	b := newBFF(t)
	tok := signed(t, "ADMIN", testExpMin)
	require.Equal(t, http.StatusOK, b.do(t, http.MethodGet, "/api/tables/catalog", tok, "").StatusCode)

	b.api.fail(http.MethodGet, "/inventory/inventories", domain.NewTransport(domain.CodeUnreachable, 0, "", nil))
	resp := b.do(t, http.MethodGet, "/api/tables/catalog?force=true", tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view apphttp.TableView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Table.Rows, 2)
	assert.NotEmpty(t, view.Error)
}

func TestTables_PDF(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodGet, "/api/tables/catalog.pdf", signed(t, "BORROWER", testExpMin), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestInventories_CreateValidaAntesDeLlamar(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodPost, "/api/inventories", signed(t, "ADMIN", testExpMin),
		`{"name":"Proyector","quantity":2,"condition":"Broken","code":"P-1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, domain.CodeInvalidInput, body["code"])
	_, called := b.api.last(http.MethodPost, "/admin/inventory")
	assert.False(t, called)
}

func TestInventories_Create(t *testing.T) {
	b := newBFF(t)
	b.api.reply(http.MethodPost, "/admin/inventory", map[string]any{})
	resp := b.do(t, http.MethodPost, "/api/inventories", signed(t, "ADMIN", testExpMin),
		`{"name":"Proyector","quantity":2,"condition":"Available","code":"P-1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	c, ok := b.api.last(http.MethodPost, "/admin/inventory")
	require.True(t, ok)
	assert.Equal(t, "Proyector", c.body["name"])
}

func TestInventories_SoloAdmin(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodPost, "/api/inventories", signed(t, "BORROWER", testExpMin),
		`{"name":"Proyector","quantity":2,"condition":"Available","code":"P-1"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBorrows_UpdateLimpiaFecha(t *testing.T) {
	b := newBFF(t)
	b.api.reply(http.MethodPut, "/admin/borrow/b-1", map[string]any{})
	b.api.reply(http.MethodGet, "/admin/borrows", map[string]any{"borrows": []any{}})

	resp := b.do(t, http.MethodPut, "/api/borrows/b-1", signed(t, "ADMIN", testExpMin), `{"dateReturn":null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c, ok := b.api.last(http.MethodPut, "/admin/borrow/b-1")
	require.True(t, ok)
	v, present := c.body["dateReturn"]
	assert.True(t, present, "dateReturn debe viajar como null explícito")
	assert.Nil(t, v)
}

func TestBorrows_UpdateSinCambios(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodPut, "/api/borrows/b-1", signed(t, "ADMIN", testExpMin), `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.CodeNoChanges, decode(t, resp)["code"])
}

func TestBorrows_CreateParaOtroUsuario(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodPost, "/api/borrows", signed(t, "BORROWER", testExpMin),
		`{"userId":"otro","inventoryId":"5b8f0e5c-1e39-4f4e-9a53-0f3f3c6b1a03","quantity":1,"dateBorrow":"2024-05-01T08:00:00Z","dateReturn":"2024-05-03T08:00:00Z"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_UpdateRoleErrorRemoto(t *testing.T) {
	b := newBFF(t)
	b.api.fail(http.MethodPut, "/admin/user/update-role", domain.NewTransport(domain.CodeHTTPStatus, 500, "boom", nil))
	resp := b.do(t, http.MethodPut, "/api/users/role", signed(t, "ADMIN", testExpMin), `{"userId":"u-1","newRole":"ADMIN"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestAuth_LoginCookieYLogout(t *testing.T) {
	b := newBFF(t)
	tok := signed(t, "BORROWER", testExpMin)
	b.api.reply(http.MethodPost, "/user/login", map[string]any{
		"token": tok,
		"user": map[string]any{
			"userId": testUserID, "username": testUsername, "email": "budi@himpa.id", "number": "0812",
			"password": "hash", "role": "BORROWER", "createdAt": stamp, "updatedAt": stamp,
		},
	})

	resp := b.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"budi","password":"rahasia"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, tok, body["token"])
	user := body["user"].(map[string]any)
	assert.Empty(t, user["password"])
	assert.Equal(t, 1, b.sessions.Len())

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == apphttp.CookieToken {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/catalog", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.CookieToken, Value: cookie.Value})
	tableResp, err := b.app.Test(req, -1)
	require.NoError(t, err)
	defer tableResp.Body.Close()
	assert.Equal(t, http.StatusOK, tableResp.StatusCode)

	out := b.do(t, http.MethodPost, "/api/auth/logout", tok, "")
	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.Equal(t, 0, b.sessions.Len())
}

func TestAuth_RegisterPasswordsDistintas(t *testing.T) {
	b := newBFF(t)
	resp := b.do(t, http.MethodPost, "/api/auth/register", "",
		`{"username":"budi","email":"budi@himpa.id","number":"0812","password":"a","confirmPassword":"b"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_, called := b.api.last(http.MethodPost, "/user/register")
	assert.False(t, called)
}

// ── Sesiones e invalidación ───────────────────────────────────────────────────

// fasthttp reutiliza el buffer de la cabecera entre peticiones: dos tokens del mismo largo
// deben seguir siendo dos sesiones con su propio token.
func TestSesiones_TokensDeIgualLargoNoSeMezclan(t *testing.T) {
	b := newBFF(t)
	tokA := signedAs(t, "user-a", "BORROWER")
	tokB := signedAs(t, "user-b", "BORROWER")
	require.NotEqual(t, tokA, tokB)
	require.Len(t, tokB, len(tokA))

	for _, tok := range []string{tokA, tokB, tokA, tokB} {
		require.Equal(t, http.StatusOK, b.do(t, http.MethodGet, "/api/tables/catalog", tok, "").StatusCode)
	}

	assert.Equal(t, 2, b.sessions.Len())
	wsA, ok := b.sessions.Lookup(tokA)
	require.True(t, ok)
	wsB, ok := b.sessions.Lookup(tokB)
	require.True(t, ok)
	assert.NotSame(t, wsA, wsB)
	assert.Equal(t, tokA, wsA.Session.Token())
	assert.Equal(t, tokB, wsB.Session.Token())
}

func TestInvalidacion_MutacionNoRecargaCadaSesion(t *testing.T) {
	clk := &testClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	b := newBFFWithClock(t, clk.Now)
	b.api.reply(http.MethodPatch, "/admin/borrow/confirmation-borrow", map[string]any{})
	b.api.reply(http.MethodGet, "/admin/borrows", map[string]any{"borrows": []any{}})
	b.api.reply(http.MethodPost, "/admin/inventory", map[string]any{})

	admins := make([]string, 5)
	for i := range admins {
		admins[i] = signedAs(t, "admin-"+string(rune('a'+i)), "ADMIN")
	}
	readAll := func() {
		for _, tok := range admins {
			require.Equal(t, http.StatusOK, b.do(t, http.MethodGet, "/api/tables/inventories", tok, "").StatusCode)
		}
	}
	readAll()
	require.Equal(t, 1, b.api.count(http.MethodGet, "/inventory/inventories"), "la primera sesión llena la caché compartida")

	// Confirmar un préstamo invalida inventario sin recargarlo en ninguna sesión.
	clk.Advance(time.Second)
	resp := b.do(t, http.MethodPatch, "/api/borrows/confirm", admins[0], `{"borrowId":"b-1","status":"ACTIVE"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, b.api.count(http.MethodGet, "/inventory/inventories"))

	clk.Advance(time.Second)
	readAll()
	assert.Equal(t, 2, b.api.count(http.MethodGet, "/inventory/inventories"), "solo la primera lectura va a la red")

	// La recarga de la propia mutación es posterior a la marca y sirve a todas las sesiones.
	clk.Advance(time.Second)
	resp = b.do(t, http.MethodPost, "/api/inventories", admins[1],
		`{"name":"Proyector","quantity":2,"condition":"Available","code":"P-1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3, b.api.count(http.MethodGet, "/inventory/inventories"))

	readAll()
	assert.Equal(t, 3, b.api.count(http.MethodGet, "/inventory/inventories"))
}
