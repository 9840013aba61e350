package table

import (
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// Borrows tabla de préstamos. Con bus != nil incluye las acciones del administrador.
func Borrows(f Formatter, bus invalidate.Bus) *Table[entity.Borrow] {
	t := &Table[entity.Borrow]{
		Name: "borrows",
		Columns: []Column[entity.Borrow]{
			{
				ID: "inventoryName", Header: "Artículo", Sortable: true,
				Cell:    func(b entity.Borrow) Cell { return Text(borrowInventoryName(b)) },
				SortKey: func(b entity.Borrow) any { return borrowInventoryName(b) },
			},
			{
				ID: "username", Header: "Usuario", Sortable: true, Hideable: true,
				Cell:    func(b entity.Borrow) Cell { return Text(borrowUsername(b)) },
				SortKey: func(b entity.Borrow) any { return borrowUsername(b) },
			},
			{
				ID: "quantity", Header: "Cantidad", Sortable: true, Hideable: true,
				Cell:    func(b entity.Borrow) Cell { return Text(f.Number(b.Quantity)) },
				SortKey: func(b entity.Borrow) any { return b.Quantity },
			},
			{
				ID: "dateBorrow", Header: "Fecha de préstamo", Sortable: true, Hideable: true,
				Cell:    func(b entity.Borrow) Cell { return Text(f.Date(b.DateBorrow)) },
				SortKey: func(b entity.Borrow) any { return b.DateBorrow },
			},
			{
				ID: "dateReturn", Header: "Fecha de devolución", Sortable: true, Hideable: true,
				Cell:    func(b entity.Borrow) Cell { return returnDate(f, b.DateReturn) },
				SortKey: func(b entity.Borrow) any { return orZero(b.DateReturn) },
			},
			{
				ID: "status", Header: "Estado", Sortable: true,
				Cell: func(b entity.Borrow) Cell {
					if len(b.Details) == 0 {
						return Muted(NoStatus)
					}
					items := make([]Cell, 0, len(b.Details))
					for _, s := range b.Statuses() {
						items = append(items, StatusBadge(s))
					}
					return List(items...)
				},
				SortKey: func(b entity.Borrow) any {
					if d, ok := b.FirstDetail(); ok {
						return string(d.Status)
					}
					return ""
				},
				// Pasa si cualquiera de los detalles tiene alguno de los estados elegidos.
				Filter: func(b entity.Borrow, v []string) bool {
					for _, s := range b.Statuses() {
						if contains(v, string(s)) {
							return true
						}
					}
					return false
				},
			},
			{
				ID: "createdAt", Header: "Creado", Sortable: true, Hideable: true,
				Cell:    func(b entity.Borrow) Cell { return Text(f.DateTime(b.CreatedAt)) },
				SortKey: func(b entity.Borrow) any { return b.CreatedAt },
			},
		},
	}
	if bus != nil {
		t.Actions = Actions[entity.Borrow]{
			Resource: invalidate.Borrow,
			Items: []RowAction{
				{ID: "confirm", Label: "Confirmar"},
				{ID: "edit", Label: "Editar"},
			},
			Scope: func(b entity.Borrow) string { return b.UserID },
			Bus:   bus,
		}
	}
	return t
}

func borrowInventoryName(b entity.Borrow) string {
	if d, ok := b.FirstDetail(); ok && d.Inventory != nil && d.Inventory.Name != "" {
		return d.Inventory.Name
	}
	return NoName
}

func borrowUsername(b entity.Borrow) string {
	if b.User != nil && b.User.Username != "" {
		return b.User.Username
	}
	return NoUser
}

func returnDate(f Formatter, t *time.Time) Cell {
	if t == nil {
		return Badge(NotReturned, ToneSecondary)
	}
	return Text(f.Date(*t))
}

func orZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
