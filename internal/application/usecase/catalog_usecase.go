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

// CatalogUseCase catálogo visible para cualquier usuario: siempre consulta la red, pero
// siembra el estado desde la caché vigente para que la tabla no aparezca vacía.
type CatalogUseCase struct {
	res   *resource.Resource[entity.Inventory]
	unsub func()
}

func NewCatalogUseCase(d Deps, tokens ports.TokenSource) *CatalogUseCase {
	res := resource.New(resource.Config[entity.Inventory]{
		Name:     "catalog",
		Policy:   resource.NetworkWithCacheSeed,
		Key:      KeyCatalog,
		TTL:      d.TTLs.Catalog,
		Guard:    func() (string, error) { return session.Require(tokens) },
		Request:  list("/inventory/inventories"),
		Field:    "inventories",
		Decode:   schema.Inventories,
		Fallback: "No se pudo cargar el catálogo.",
	}, d.resourceDeps())
	return &CatalogUseCase{res: res, unsub: res.Listen(d.Bus, invalidate.Inventory, "")}
}

func (uc *CatalogUseCase) FetchAll(ctx context.Context, force bool) resource.State[entity.Inventory] {
	return uc.res.Fetch(ctx, force)
}

func (uc *CatalogUseCase) State() resource.State[entity.Inventory] { return uc.res.Snapshot() }

func (uc *CatalogUseCase) Close() { uc.unsub() }
