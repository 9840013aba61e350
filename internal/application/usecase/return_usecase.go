package usecase

import (
	"context"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
)

// ReturnUseCase devoluciones: por usuario con caché primero (returns_user_<id>) y listado
// completo del administrador sin caché.
type ReturnUseCase struct {
	admin  *resource.Resource[entity.Return]
	byUser *scoped[entity.Return]
	unsub  func()
}

func NewReturnUseCase(d Deps, tokens ports.TokenSource) *ReturnUseCase {
	admin := resource.New(resource.Config[entity.Return]{
		Name:     "admin_returns",
		Policy:   resource.NetworkOnly,
		Guard:    func() (string, error) { return session.RequireAdmin(tokens) },
		Request:  list("/admin/returns"),
		Field:    "returns",
		Decode:   schema.Returns,
		Fallback: "No se pudieron cargar las devoluciones.",
	}, d.resourceDeps())
	uc := &ReturnUseCase{admin: admin, unsub: admin.Listen(d.Bus, invalidate.Return, "")}
	uc.byUser = newScoped(func(userID string) (*resource.Resource[entity.Return], func()) {
		res := resource.New(resource.Config[entity.Return]{
			Name:     "user_returns",
			Policy:   resource.CacheFirst,
			Key:      ReturnsKey(userID),
			TTL:      d.TTLs.UserReturns,
			Guard:    func() (string, error) { return session.Require(tokens) },
			Request:  list("/return/returns/" + segment(userID)),
			Field:    "returns",
			Decode:   schema.Returns,
			Fallback: "No se pudieron cargar tus devoluciones.",
		}, d.resourceDeps())
		return res, res.Listen(d.Bus, invalidate.Return, userID)
	})
	return uc
}

// FetchByUser carga las devoluciones de userID.
func (uc *ReturnUseCase) FetchByUser(ctx context.Context, userID string, force bool) resource.State[entity.Return] {
	return uc.byUser.get(userID).Fetch(ctx, force)
}

func (uc *ReturnUseCase) UserState(userID string) resource.State[entity.Return] {
	return uc.byUser.get(userID).Snapshot()
}

// FetchAllAdmin carga todas las devoluciones (solo ADMIN). Sin caché: force no cambia nada.
func (uc *ReturnUseCase) FetchAllAdmin(ctx context.Context, force bool) resource.State[entity.Return] {
	return uc.admin.Fetch(ctx, force)
}

func (uc *ReturnUseCase) AdminState() resource.State[entity.Return] { return uc.admin.Snapshot() }

func (uc *ReturnUseCase) Close() {
	uc.unsub()
	uc.byUser.close()
}
