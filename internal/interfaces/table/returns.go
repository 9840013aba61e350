package table

import (
	"fmt"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// Returns tabla de devoluciones (solo lectura, sin acciones).
func Returns(f Formatter) *Table[entity.Return] {
	return &Table[entity.Return]{
		Name: "returns",
		Columns: []Column[entity.Return]{
			{
				ID: "inventoryName", Header: "Artículo", Sortable: true,
				Cell:    func(r entity.Return) Cell { return Text(returnInventoryName(r)) },
				SortKey: func(r entity.Return) any { return returnInventoryName(r) },
			},
			{
				ID: "dateBorrow", Header: "Fecha de préstamo", Sortable: true, Hideable: true,
				Cell:    func(r entity.Return) Cell { return Text(f.Date(r.DateBorrow)) },
				SortKey: func(r entity.Return) any { return r.DateBorrow },
			},
			{
				ID: "dateReturn", Header: "Fecha de devolución", Sortable: true, Hideable: true,
				Cell:    func(r entity.Return) Cell { return returnDate(f, r.DateReturn) },
				SortKey: func(r entity.Return) any { return orZero(r.DateReturn) },
			},
			{
				ID: "lateDays", Header: "Atraso", Sortable: true, Hideable: true,
				Cell: func(r entity.Return) Cell {
					tone := ToneSuccess
					if r.LateDays > 0 {
						tone = ToneDanger
					}
					return Toned(fmt.Sprintf("%s días", f.Number(r.LateDays)), tone)
				},
				SortKey: func(r entity.Return) any { return r.LateDays },
			},
			{
				ID: "status", Header: "Estado", Hideable: true,
				Cell: func(r entity.Return) Cell {
					d, ok := r.FirstDetail()
					if !ok || d.Status == "" {
						return Muted(NoStatus)
					}
					return StatusBadge(d.Status)
				},
				Filter: func(r entity.Return, v []string) bool {
					d, ok := r.FirstDetail()
					return ok && contains(v, string(d.Status))
				},
			},
		},
	}
}

func returnInventoryName(r entity.Return) string {
	if d, ok := r.FirstDetail(); ok && d.Inventory != nil && d.Inventory.Name != "" {
		return d.Inventory.Name
	}
	return NoName
}
