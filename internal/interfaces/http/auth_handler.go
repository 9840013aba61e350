package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
)

// AuthHandler login, registro y recuperación de contraseña contra la API remota.
type AuthHandler struct {
	sessions *SessionRegistry
	secure   bool
}

// NewAuthHandler construye el handler de auth. secure marca la cookie como Secure.
func NewAuthHandler(sessions *SessionRegistry, secure bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, secure: secure}
}

type registerBody struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Number          string `json:"number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type resetBody struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.sessions.Anonymous().Login(c.Context(), in)
	if err != nil {
		return writeError(c, err, "No se pudo iniciar sesión.")
	}
	h.sessions.Adopt(out.Token, out.User)
	c.Cookie(&fiber.Cookie{
		Name:     CookieToken,
		Value:    out.Token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	out.User.Password = ""
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in registerBody
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.sessions.Anonymous().Register(c.Context(), dto.RegisterRequest{
		Username:        in.Username,
		Email:           in.Email,
		Number:          in.Number,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err, "No se pudo registrar el usuario.")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Usuario registrado"})
}

// ForgotPassword POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.sessions.Anonymous().ForgotPassword(c.Context(), in); err != nil {
		return writeError(c, err, "No se pudo enviar el código.")
	}
	return c.JSON(dto.MessageResponse{Message: "Código enviado"})
}

// ResetPassword POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in resetBody
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.sessions.Anonymous().ResetPassword(c.Context(), dto.ResetPasswordRequest{
		Email:           in.Email,
		Code:            in.Code,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err, "No se pudo restablecer la contraseña.")
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada"})
}

// Logout POST /api/auth/logout (protegido): cierra la sesión del token y borra la cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Drop(GetToken(c))
	c.Cookie(&fiber.Cookie{
		Name:     CookieToken,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.secure,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada"})
}
