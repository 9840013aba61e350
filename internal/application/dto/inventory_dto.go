package dto

// CreateInventoryRequest body de POST /admin/inventory.
type CreateInventoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=0"`
	Condition string `json:"condition" validate:"inventory_condition"`
	Code      string `json:"code" validate:"required"`
}

// UpdateInventoryRequest body parcial de PUT /admin/inventory/{id}; solo viajan los campos
// no nil.
type UpdateInventoryRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Quantity  *int64  `json:"quantity,omitempty" validate:"omitnil,gte=0"`
	Condition *string `json:"condition,omitempty" validate:"omitnil,inventory_condition"`
}

// Empty indica que no hay nada que actualizar.
func (r UpdateInventoryRequest) Empty() bool {
	return r.Name == nil && r.Quantity == nil && r.Condition == nil
}

// UpdateConditionRequest body de PATCH /admin/inventory/condition/{id}.
type UpdateConditionRequest struct {
	Condition string `json:"condition" validate:"inventory_condition"`
}
