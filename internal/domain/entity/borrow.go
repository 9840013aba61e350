package entity

import "time"

// BorrowStatus estado de un detalle de préstamo. Se conserva tal como lo envía el servidor;
// los valores fuera del conjunto conocido se presentan como desconocidos, nunca se rechazan.
type BorrowStatus string

// Estados conocidos de BorrowDetail.
const (
	StatusPending  BorrowStatus = "PENDING"
	StatusActive   BorrowStatus = "ACTIVE"
	StatusRejected BorrowStatus = "REJECTED"
	StatusReturned BorrowStatus = "RETURNED"
)

// BorrowStatuses orden de presentación de los estados conocidos.
var BorrowStatuses = []BorrowStatus{StatusPending, StatusActive, StatusRejected, StatusReturned}

// Known indica si el estado pertenece al conjunto conocido.
func (s BorrowStatus) Known() bool {
	for _, v := range BorrowStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsDecision indica si el estado es una decisión válida de confirmación (ACTIVE o REJECTED).
func (s BorrowStatus) IsDecision() bool {
	return s == StatusActive || s == StatusRejected
}

// BorrowUser vista mínima del usuario embebida en un préstamo.
type BorrowUser struct {
	Username string `json:"username"`
}

// BorrowDetail línea de un préstamo: un artículo y su estado.
type BorrowDetail struct {
	ID          string        `json:"borrowDetailId" validate:"required,uuid"`
	BorrowID    string        `json:"borrowId" validate:"required,uuid"`
	InventoryID string        `json:"inventoryId" validate:"required,uuid"`
	Status      BorrowStatus  `json:"status" validate:"required"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"deletedAt"`
	Inventory   *InventoryRef `json:"inventory,omitempty"`
}

// Borrow solicitud de préstamo con sus detalles. DateReturn nil significa no devuelto.
// Details siempre es una secuencia (la normalización convierte objeto/ausente en slice).
type Borrow struct {
	ID         string         `json:"borrowId" validate:"required"`
	Quantity   int64          `json:"quantity" validate:"gte=0"`
	DateBorrow time.Time      `json:"dateBorrow"`
	DateReturn *time.Time     `json:"dateReturn"`
	UserID     string         `json:"userId" validate:"required"`
	AdminID    string         `json:"adminId"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  *time.Time     `json:"deletedAt"`
	Details    []BorrowDetail `json:"borrowDetails" validate:"dive"`
	User       *BorrowUser    `json:"user,omitempty"`
}

// Statuses devuelve los estados de todos los detalles, en orden.
func (b Borrow) Statuses() []BorrowStatus {
	out := make([]BorrowStatus, 0, len(b.Details))
	for _, d := range b.Details {
		out = append(out, d.Status)
	}
	return out
}

// FirstDetail devuelve el primer detalle, si existe.
func (b Borrow) FirstDetail() (BorrowDetail, bool) {
	if len(b.Details) == 0 {
		return BorrowDetail{}, false
	}
	return b.Details[0], true
}
