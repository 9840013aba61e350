package entity

import "time"

// Condiciones válidas de un Inventory.
const (
	ConditionAvailable    = "Available"
	ConditionOutOfStock   = "Out of Stock"
	ConditionReserved     = "Reserved"
	ConditionDamaged      = "Damaged"
	ConditionDiscontinued = "Discontinued"
)

// Conditions lista ordenada de condiciones (orden de presentación en filtros).
var Conditions = []string{
	ConditionAvailable,
	ConditionOutOfStock,
	ConditionReserved,
	ConditionDamaged,
	ConditionDiscontinued,
}

// IsCondition indica si c pertenece al conjunto de condiciones conocidas.
func IsCondition(c string) bool {
	for _, v := range Conditions {
		if v == c {
			return true
		}
	}
	return false
}

// Inventory representa un artículo prestable del inventario.
// DeletedAt solo refleja el borrado lógico del servidor.
type Inventory struct {
	ID        string     `json:"inventoryId" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Quantity  int64      `json:"quantity" validate:"gte=0"`
	Condition string     `json:"condition" validate:"inventory_condition"`
	Code      string     `json:"code" validate:"required"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// InventoryRef vista de solo lectura de un Inventory embebido en un detalle de préstamo.
type InventoryRef struct {
	ID   string `json:"inventoryId,omitempty" validate:"omitempty,uuid"`
	Name string `json:"name"`
}
