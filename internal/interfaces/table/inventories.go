package table

import (
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// Inventories tabla del inventario del administrador.
func Inventories(f Formatter, bus invalidate.Bus) *Table[entity.Inventory] {
	t := Catalog(f)
	t.Name = "inventories"
	t.Actions = Actions[entity.Inventory]{
		Resource: invalidate.Inventory,
		Items: []RowAction{
			{ID: "edit", Label: "Editar"},
			{ID: "condition", Label: "Cambiar condición"},
		},
		Bus: bus,
	}
	return t
}

// Catalog misma tabla sin acciones, para cualquier usuario.
func Catalog(f Formatter) *Table[entity.Inventory] {
	return &Table[entity.Inventory]{
		Name: "catalog",
		Columns: []Column[entity.Inventory]{
			{
				ID: "name", Header: "Nombre", Sortable: true,
				Cell:    func(i entity.Inventory) Cell { return Text(i.Name) },
				SortKey: func(i entity.Inventory) any { return i.Name },
			},
			{
				ID: "quantity", Header: "Cantidad", Sortable: true, Hideable: true,
				Cell:    func(i entity.Inventory) Cell { return Text(f.Number(i.Quantity)) },
				SortKey: func(i entity.Inventory) any { return i.Quantity },
			},
			{
				ID: "condition", Header: "Condición", Sortable: true, Hideable: true,
				Cell: func(i entity.Inventory) Cell {
					if l, ok := conditionLabels[i.Condition]; ok {
						return Text(l)
					}
					return Empty()
				},
				SortKey: func(i entity.Inventory) any { return i.Condition },
				Filter:  func(i entity.Inventory, v []string) bool { return contains(v, i.Condition) },
			},
			{
				ID: "code", Header: "Código", Sortable: true, Hideable: true,
				Cell:    func(i entity.Inventory) Cell { return Text(i.Code) },
				SortKey: func(i entity.Inventory) any { return i.Code },
			},
			{
				ID: "createdAt", Header: "Creado", Sortable: true, Hideable: true,
				Cell:    func(i entity.Inventory) Cell { return Text(f.DateTime(i.CreatedAt)) },
				SortKey: func(i entity.Inventory) any { return i.CreatedAt },
			},
			{
				ID: "updatedAt", Header: "Actualizado", Sortable: true, Hideable: true,
				Cell:    func(i entity.Inventory) Cell { return Text(f.DateTime(i.UpdatedAt)) },
				SortKey: func(i entity.Inventory) any { return i.UpdatedAt },
			},
		},
	}
}
