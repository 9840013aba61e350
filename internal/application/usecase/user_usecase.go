package usecase

import (
	"context"
	"net/http"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/ports"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/schema"
)

// UserUseCase listado de usuarios para el administrador y cambio de rol.
type UserUseCase struct {
	res   *resource.Resource[entity.User]
	api   ports.APIClient
	unsub func()
}

// NewUserUseCase construye el caso de uso; la caché solo siembra el estado, la red se
// consulta siempre.
func NewUserUseCase(d Deps, tokens ports.TokenSource) *UserUseCase {
	res := resource.New(resource.Config[entity.User]{
		Name:     "users",
		Policy:   resource.NetworkWithCacheSeed,
		Key:      KeyUsers,
		TTL:      d.TTLs.Users,
		Guard:    func() (string, error) { return session.RequireAdmin(tokens) },
		Request:  list("/admin/users"),
		Field:    "users",
		Decode:   schema.Users,
		Fallback: "No se pudieron cargar los usuarios.",
		Redact:   withoutPassword,
	}, d.resourceDeps())
	return &UserUseCase{res: res, api: d.API, unsub: res.Listen(d.Bus, invalidate.User, "")}
}

// withoutPassword la contraseña no se guarda en caché.
func withoutPassword(u entity.User) entity.User {
	u.Password = ""
	return u
}

func (uc *UserUseCase) FetchAll(ctx context.Context, force bool) resource.State[entity.User] {
	return uc.res.Fetch(ctx, force)
}

func (uc *UserUseCase) State() resource.State[entity.User] { return uc.res.Snapshot() }

// UpdateRole cambia el rol de un usuario (ADMIN | BORROWER).
func (uc *UserUseCase) UpdateRole(ctx context.Context, userID, role string) error {
	return uc.res.Mutate(ctx, "No se pudo actualizar el rol.", func(ctx context.Context, token string) error {
		return send(ctx, uc.api, http.MethodPut, "/admin/user/update-role", token,
			dto.UpdateRoleRequest{UserID: userID, Role: role})
	})
}

func (uc *UserUseCase) Close() { uc.unsub() }
