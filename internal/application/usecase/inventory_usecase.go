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

// InventoryUseCase inventario del administrador: caché primero (admin_inventories) y
// mutaciones de alta, edición y condición.
type InventoryUseCase struct {
	res   *resource.Resource[entity.Inventory]
	api   ports.APIClient
	unsub func()
}

// NewInventoryUseCase construye el caso de uso para la sesión tokens.
func NewInventoryUseCase(d Deps, tokens ports.TokenSource) *InventoryUseCase {
	res := resource.New(resource.Config[entity.Inventory]{
		Name:     "admin_inventories",
		Policy:   resource.CacheFirst,
		Key:      KeyAdminInventories,
		TTL:      d.TTLs.AdminInventories,
		Guard:    func() (string, error) { return session.RequireAdmin(tokens) },
		Request:  list("/inventory/inventories"),
		Field:    "inventories",
		Decode:   schema.Inventories,
		Fallback: "No se pudo cargar el inventario.",
	}, d.resourceDeps())
	return &InventoryUseCase{res: res, api: d.API, unsub: res.Listen(d.Bus, invalidate.Inventory, "")}
}

// FetchAll carga el inventario; nunca devuelve error (ver State.Message).
func (uc *InventoryUseCase) FetchAll(ctx context.Context, force bool) resource.State[entity.Inventory] {
	return uc.res.Fetch(ctx, force)
}

// State estado actual sin I/O.
func (uc *InventoryUseCase) State() resource.State[entity.Inventory] { return uc.res.Snapshot() }

// Create da de alta un artículo.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) error {
	return uc.res.Mutate(ctx, "No se pudo crear el artículo.", func(ctx context.Context, token string) error {
		return send(ctx, uc.api, http.MethodPost, "/admin/inventory", token, in)
	})
}

// Update actualiza parcialmente un artículo; sin campos devuelve NO_CHANGES.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryRequest) error {
	return uc.res.Mutate(ctx, "No se pudo actualizar el artículo.", func(ctx context.Context, token string) error {
		if in.Empty() {
			return noChanges()
		}
		return send(ctx, uc.api, http.MethodPut, "/admin/inventory/"+segment(id), token, in)
	})
}

// UpdateCondition cambia solo la condición de un artículo.
func (uc *InventoryUseCase) UpdateCondition(ctx context.Context, id, condition string) error {
	return uc.res.Mutate(ctx, "No se pudo actualizar la condición.", func(ctx context.Context, token string) error {
		return send(ctx, uc.api, http.MethodPatch, "/admin/inventory/condition/"+segment(id), token,
			dto.UpdateConditionRequest{Condition: condition})
	})
}

// Close da de baja la suscripción a invalidaciones.
func (uc *InventoryUseCase) Close() { uc.unsub() }
