package http

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
)

// BorrowHandler confirmación y edición de préstamos (ADMIN) y solicitud de préstamo (usuario).
type BorrowHandler struct {
	notifier *notifier
}

func NewBorrowHandler(n *notifier) *BorrowHandler {
	return &BorrowHandler{notifier: n}
}

// Confirm PATCH /api/borrows/confirm
func (h *BorrowHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmBorrowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Borrows.Confirm(c.Context(), in); err != nil {
		return writeError(c, err, "No se pudo confirmar el préstamo.")
	}
	h.notifier.publish(c, invalidate.Borrow, "")
	h.notifier.publish(c, invalidate.Inventory, "")
	return c.JSON(dto.MessageResponse{Message: "Préstamo actualizado"})
}

// Update PUT /api/borrows/:id. "dateReturn": null limpia la fecha; ausente no la toca.
func (h *BorrowHandler) Update(c *fiber.Ctx) error {
	in, err := parseBorrowUpdate(c.Body())
	if err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Borrows.Update(c.Context(), c.Params("id"), in); err != nil {
		return writeError(c, err, "No se pudo actualizar el préstamo.")
	}
	h.notifier.publish(c, invalidate.Borrow, "")
	h.notifier.publish(c, invalidate.Return, "")
	return c.JSON(dto.MessageResponse{Message: "Préstamo actualizado"})
}

func parseBorrowUpdate(body []byte) (dto.UpdateBorrowRequest, error) {
	var in dto.UpdateBorrowRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return in, err
	}
	if v, ok := raw["dateReturn"]; ok {
		if string(v) == "null" {
			in.ClearDateReturn = true
		} else {
			var t time.Time
			if err := json.Unmarshal(v, &t); err != nil {
				return in, err
			}
			in.DateReturn = &t
		}
	}
	if v, ok := raw["status"]; ok && string(v) != "null" {
		var s entity.BorrowStatus
		if err := json.Unmarshal(v, &s); err != nil {
			return in, err
		}
		in.Status = &s
	}
	return in, nil
}

// Create POST /api/borrows. userId vacío toma el del token; un BORROWER solo pide para sí mismo.
func (h *BorrowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBorrowRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	caller := GetUserID(c)
	if in.UserID == "" {
		in.UserID = caller
	}
	if in.UserID != caller && GetRole(c) != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "solo puedes solicitar préstamos a tu nombre"})
	}
	if err := GetWorkspace(c).MyBorrows.Create(c.Context(), in); err != nil {
		return writeError(c, err, "No se pudo crear el préstamo.")
	}
	h.notifier.publish(c, invalidate.Borrow, in.UserID)
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Préstamo solicitado"})
}
