package entity

import (
	"math"
	"time"
)

// ReturnDetail vista de solo lectura de un detalle de préstamo dentro de una devolución.
type ReturnDetail struct {
	Status    BorrowStatus  `json:"status,omitempty"`
	Inventory *InventoryRef `json:"inventory,omitempty"`
}

// ReturnBorrow vista del préstamo embebida en una devolución (para joins de presentación).
type ReturnBorrow struct {
	Status  BorrowStatus   `json:"status,omitempty"`
	Details []ReturnDetail `json:"borrowDetails"`
	User    *BorrowUser    `json:"user,omitempty"`
}

// Return registro de devolución de un préstamo.
type Return struct {
	ID         string        `json:"returnId" validate:"required"`
	BorrowID   string        `json:"borrowId" validate:"required"`
	Quantity   int64         `json:"quantity" validate:"gte=0"`
	DateBorrow time.Time     `json:"dateBorrow"`
	DateReturn *time.Time    `json:"dateReturn"`
	LateDays   int64         `json:"lateDays" validate:"gte=0"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
	DeletedAt  *time.Time    `json:"deletedAt"`
	Borrow     *ReturnBorrow `json:"borrow,omitempty"`
}

// FirstDetail devuelve el primer detalle del préstamo embebido, si existe.
func (r Return) FirstDetail() (ReturnDetail, bool) {
	if r.Borrow == nil || len(r.Borrow.Details) == 0 {
		return ReturnDetail{}, false
	}
	return r.Borrow.Details[0], true
}

// LateDays calcula los días de atraso entre la fecha esperada y la devolución real:
// días completos redondeados hacia arriba, nunca negativos.
func LateDays(returned, due time.Time) int64 {
	diff := returned.Sub(due)
	if diff <= 0 {
		return 0
	}
	return int64(math.Ceil(diff.Hours() / 24))
}
