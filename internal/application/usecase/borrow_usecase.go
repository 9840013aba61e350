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

// BorrowUseCase préstamos vistos por el administrador: listado con caché primero,
// confirmación (ACTIVE/REJECTED) y actualización.
type BorrowUseCase struct {
	res   *resource.Resource[entity.Borrow]
	api   ports.APIClient
	unsub func()
}

func NewBorrowUseCase(d Deps, tokens ports.TokenSource) *BorrowUseCase {
	res := resource.New(resource.Config[entity.Borrow]{
		Name:     "admin_borrows",
		Policy:   resource.CacheFirst,
		Key:      KeyAdminBorrows,
		TTL:      d.TTLs.AdminBorrows,
		Guard:    func() (string, error) { return session.RequireAdmin(tokens) },
		Request:  list("/admin/borrows"),
		Field:    "borrows",
		Decode:   schema.Borrows,
		Fallback: "No se pudieron cargar los préstamos.",
	}, d.resourceDeps())
	return &BorrowUseCase{res: res, api: d.API, unsub: res.Listen(d.Bus, invalidate.Borrow, "")}
}

func (uc *BorrowUseCase) FetchAll(ctx context.Context, force bool) resource.State[entity.Borrow] {
	return uc.res.Fetch(ctx, force)
}

func (uc *BorrowUseCase) State() resource.State[entity.Borrow] { return uc.res.Snapshot() }

// Confirm aprueba o rechaza un préstamo.
func (uc *BorrowUseCase) Confirm(ctx context.Context, in dto.ConfirmBorrowRequest) error {
	return uc.res.Mutate(ctx, "No se pudo confirmar el préstamo.", func(ctx context.Context, token string) error {
		return send(ctx, uc.api, http.MethodPatch, "/admin/borrow/confirmation-borrow", token, in)
	})
}

// Update cambia fecha de devolución y/o estado de un préstamo.
func (uc *BorrowUseCase) Update(ctx context.Context, borrowID string, in dto.UpdateBorrowRequest) error {
	return uc.res.Mutate(ctx, "No se pudo actualizar el préstamo.", func(ctx context.Context, token string) error {
		if in.Empty() {
			return noChanges()
		}
		if err := schema.ValidateStruct(in); err != nil {
			return err
		}
		_, err := uc.api.Do(ctx, ports.Request{
			Method: http.MethodPut, Path: "/admin/borrow/" + segment(borrowID), Token: token, Body: in.Body(),
		})
		return err
	})
}

func (uc *BorrowUseCase) Close() { uc.unsub() }
