package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
)

// UserHandler cambio de rol (solo ADMIN).
type UserHandler struct {
	notifier *notifier
}

func NewUserHandler(n *notifier) *UserHandler {
	return &UserHandler{notifier: n}
}

// UpdateRole PUT /api/users/role
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := GetWorkspace(c).Users.UpdateRole(c.Context(), in.UserID, in.Role); err != nil {
		return writeError(c, err, "No se pudo actualizar el rol.")
	}
	h.notifier.publish(c, invalidate.User, "")
	return c.JSON(dto.MessageResponse{Message: "Rol actualizado"})
}
