package dto

import (
	"time"

	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// ConfirmBorrowRequest body de PATCH /admin/borrow/confirmation-borrow.
type ConfirmBorrowRequest struct {
	BorrowID string              `json:"borrowId" validate:"required"`
	Status   entity.BorrowStatus `json:"status" validate:"borrow_decision"`
}

// UpdateBorrowRequest actualización parcial de PUT /admin/borrow/{id}.
// ClearDateReturn envía dateReturn:null explícito (préstamo marcado como no devuelto).
type UpdateBorrowRequest struct {
	DateReturn      *time.Time           `json:"dateReturn,omitempty"`
	ClearDateReturn bool                 `json:"-"`
	Status          *entity.BorrowStatus `json:"status,omitempty" validate:"omitnil,borrow_status"`
}

// Empty indica que no hay nada que actualizar.
func (r UpdateBorrowRequest) Empty() bool {
	return r.DateReturn == nil && !r.ClearDateReturn && r.Status == nil
}

// Body arma el cuerpo a enviar distinguiendo "no tocar" de "poner en null".
func (r UpdateBorrowRequest) Body() map[string]any {
	body := map[string]any{}
	switch {
	case r.ClearDateReturn:
		body["dateReturn"] = nil
	case r.DateReturn != nil:
		body["dateReturn"] = r.DateReturn.UTC().Format(time.RFC3339)
	}
	if r.Status != nil {
		body["status"] = *r.Status
	}
	return body
}

// CreateBorrowRequest body de POST /borrow.
type CreateBorrowRequest struct {
	UserID      string    `json:"userId" validate:"required"`
	AdminID     string    `json:"adminId" validate:"required"`
	InventoryID string    `json:"inventoryId" validate:"required,uuid"`
	Quantity    int64     `json:"quantity" validate:"gt=0"`
	DateBorrow  time.Time `json:"dateBorrow" validate:"required"`
	DateReturn  time.Time `json:"dateReturn" validate:"required,gtfield=DateBorrow"`
}
