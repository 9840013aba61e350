package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
)

// InventoryHandler mutaciones de inventario (solo ADMIN).
type InventoryHandler struct {
	notifier *notifier
}

func NewInventoryHandler(n *notifier) *InventoryHandler {
	return &InventoryHandler{notifier: n}
}

// Create POST /api/inventories
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Inventories.Create(c.Context(), in); err != nil {
		return writeError(c, err, "No se pudo crear el inventario.")
	}
	h.notifier.publish(c, invalidate.Inventory, "")
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Inventario creado"})
}

// Update PUT /api/inventories/:id
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Inventories.Update(c.Context(), c.Params("id"), in); err != nil {
		return writeError(c, err, "No se pudo actualizar el inventario.")
	}
	h.notifier.publish(c, invalidate.Inventory, "")
	return c.JSON(dto.MessageResponse{Message: "Inventario actualizado"})
}

// UpdateCondition PATCH /api/inventories/:id/condition
func (h *InventoryHandler) UpdateCondition(c *fiber.Ctx) error {
	var in dto.UpdateConditionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Inventories.UpdateCondition(c.Context(), c.Params("id"), in.Condition); err != nil {
		return writeError(c, err, "No se pudo actualizar la condición.")
	}
	h.notifier.publish(c, invalidate.Inventory, "")
	return c.JSON(dto.MessageResponse{Message: "Condición actualizada"})
}
