package usecase

import (
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
)

// Workspace agrupa los casos de uso de una sesión. En la CLI hay uno por proceso; en el
// servidor HTTP uno por token.
type Workspace struct {
	Session     *session.Holder
	Auth        *AuthUseCase
	Inventories *InventoryUseCase
	Catalog     *CatalogUseCase
	Borrows     *BorrowUseCase
	MyBorrows   *MyBorrowUseCase
	Returns     *ReturnUseCase
	Users       *UserUseCase
}

// NewWorkspace construye todos los casos de uso sobre la misma sesión y suscribe cada recurso
// al bus de invalidaciones.
func NewWorkspace(d Deps, holder *session.Holder) *Workspace {
	return &Workspace{
		Session:     holder,
		Auth:        NewAuthUseCase(d, holder),
		Inventories: NewInventoryUseCase(d, holder),
		Catalog:     NewCatalogUseCase(d, holder),
		Borrows:     NewBorrowUseCase(d, holder),
		MyBorrows:   NewMyBorrowUseCase(d, holder),
		Returns:     NewReturnUseCase(d, holder),
		Users:       NewUserUseCase(d, holder),
	}
}

// Close da de baja todas las suscripciones.
func (w *Workspace) Close() {
	w.Inventories.Close()
	w.Catalog.Close()
	w.Borrows.Close()
	w.MyBorrows.Close()
	w.Returns.Close()
	w.Users.Close()
}
