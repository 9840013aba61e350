package usecase

import (
	"context"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/cache"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/errmsg"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// Claves de caché por recurso.
const (
	KeyCatalog          = "inventories"
	KeyAdminInventories = "admin_inventories"
	KeyAdminBorrows     = "admin_borrows"
	KeyUsers            = "users"
	keyReturns          = "returns"
)

// ReturnsKey clave de caché de las devoluciones de un usuario ("returns_user_<id>").
func ReturnsKey(userID string) string { return cache.Key(keyReturns, "user", userID) }

// TTLs vigencia de la caché por recurso.
type TTLs struct {
	Catalog          time.Duration
	AdminInventories time.Duration
	AdminBorrows     time.Duration
	UserReturns      time.Duration
	Users            time.Duration
}

// DefaultTTLs valores observados en producción.
func DefaultTTLs() TTLs {
	return TTLs{
		Catalog:          6 * time.Second,
		AdminInventories: 30 * time.Second,
		AdminBorrows:     30 * time.Second,
		UserReturns:      5 * time.Minute,
		Users:            5 * time.Minute,
	}
}

// Deps dependencias compartidas por todos los casos de uso de un Workspace.
type Deps struct {
	API   ports.APIClient
	Cache *cache.Store
	Bus   invalidate.Bus
	Log   *logger.Logger
	TTLs  TTLs
	Now   func() time.Time
	// Intn elige el administrador de un préstamo nuevo; nil = math/rand.
	Intn func(n int) int
}

func (d Deps) resourceDeps() resource.Deps {
	return resource.Deps{API: d.API, Cache: d.Cache, Log: d.Log, Now: d.Now}
}

func (d Deps) intn(n int) int {
	if d.Intn != nil {
		return d.Intn(n)
	}
	return rand.IntN(n)
}

func list(path string) func(token string) ports.Request {
	return func(token string) ports.Request {
		return ports.Request{Method: "GET", Path: path, Token: token}
	}
}

// send valida body (si no es nil) y ejecuta la petición; la respuesta se descarta porque el
// estado se reconcilia recargando.
func send(ctx context.Context, api ports.APIClient, method, path, token string, body any) error {
	if body != nil {
		if err := schema.ValidateStruct(body); err != nil {
			return err
		}
	}
	_, err := api.Do(ctx, ports.Request{Method: method, Path: path, Token: token, Body: body})
	return err
}

func segment(id string) string { return url.PathEscape(id) }

func noChanges() error {
	return domain.NewValidation(domain.CodeNoChanges, "sin cambios", nil)
}

// failure normaliza un error de una operación que no pasa por un Resource.
func failure(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &resource.Failure{Message: errmsg.Message(err, fallback), Err: err}
}
