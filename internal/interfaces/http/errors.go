package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/errmsg"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/resource"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
)

// writeError traduce un error de caso de uso a status HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error, fallback string) error {
	msg := errmsg.Message(err, fallback)
	var fail *resource.Failure
	if errors.As(err, &fail) {
		msg = fail.Message
	}
	resp := dto.ErrorResponse{Code: "INTERNAL", Message: msg}
	status := fiber.StatusInternalServerError
	if e, ok := domain.AsError(err); ok {
		resp.Code = e.Code
		status = statusOf(e)
		for _, f := range e.Fields {
			resp.Fields = append(resp.Fields, dto.FieldError{Path: f.Path, Reason: f.Reason})
		}
	}
	return c.Status(status).JSON(resp)
}

func statusOf(e *domain.Error) int {
	switch e.Kind {
	case domain.KindPrecondition:
		if e.Code == domain.CodeForbidden {
			return fiber.StatusForbidden
		}
		return fiber.StatusUnauthorized
	case domain.KindValidation:
		if e.Code == domain.CodeInvalidData {
			return fiber.StatusBadGateway
		}
		return fiber.StatusBadRequest
	case domain.KindApplication:
		return fiber.StatusUnprocessableEntity
	case domain.KindTransport:
		switch e.Status {
		case fiber.StatusUnauthorized, fiber.StatusForbidden, fiber.StatusNotFound:
			return e.Status
		}
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
