package table

import (
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// Users tabla de usuarios del administrador. La contraseña nunca se muestra.
func Users(f Formatter, bus invalidate.Bus) *Table[entity.User] {
	return &Table[entity.User]{
		Name: "users",
		Columns: []Column[entity.User]{
			{
				ID: "username", Header: "Usuario", Sortable: true,
				Cell:    func(u entity.User) Cell { return Text(u.Username) },
				SortKey: func(u entity.User) any { return u.Username },
			},
			{
				ID: "email", Header: "Email", Sortable: true, Hideable: true,
				Cell:    func(u entity.User) Cell { return Text(u.Email) },
				SortKey: func(u entity.User) any { return u.Email },
			},
			{
				ID: "role", Header: "Rol", Sortable: true, Hideable: true,
				Cell: func(u entity.User) Cell {
					if l, ok := roleLabels[u.Role]; ok {
						return Text(l)
					}
					return Empty()
				},
				SortKey: func(u entity.User) any { return u.Role },
				Filter:  func(u entity.User, v []string) bool { return contains(v, u.Role) },
			},
			{
				ID: "createdAt", Header: "Creado", Sortable: true, Hideable: true,
				Cell:    func(u entity.User) Cell { return Text(f.DateTime(u.CreatedAt)) },
				SortKey: func(u entity.User) any { return u.CreatedAt },
			},
			{
				ID: "updatedAt", Header: "Actualizado", Sortable: true, Hideable: true,
				Cell:    func(u entity.User) Cell { return Text(f.DateTime(u.UpdatedAt)) },
				SortKey: func(u entity.User) any { return u.UpdatedAt },
			},
		},
		Actions: Actions[entity.User]{
			Resource: invalidate.User,
			Items:    []RowAction{{ID: "role", Label: "Cambiar rol"}},
			Bus:      bus,
		},
	}
}
