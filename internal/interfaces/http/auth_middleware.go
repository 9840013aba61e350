package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/dto"
	"github.com/Leavend/SMI-HIMPA-Client/internal/application/usecase"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
)

// CookieToken cookie donde el BFF guarda el token tras el login.
const CookieToken = "smi_token"

// Locals keys que deja AuthMiddleware en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalRole      = "role"
	LocalToken     = "token"
	LocalWorkspace = "workspace"
)

// AuthMiddleware toma el token (Bearer o cookie smi_token), lee sus claims y resuelve el
// Workspace del llamador. Con jwtSecret vacío solo decodifica: la API remota verifica la firma.
// El token se copia fuera del buffer de fasthttp porque queda como clave de la sesión.
func AuthMiddleware(jwtSecret string, sessions *SessionRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := bearer(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		claims, err := readClaims(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: domain.CodeInvalidToken, Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalToken, tokenString)
		if sessions != nil {
			c.Locals(LocalWorkspace, sessions.Get(tokenString))
		}
		return c.Next()
	}
}

func bearer(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if tok := strings.TrimSpace(c.Cookies(CookieToken)); tok != "" {
			return utils.CopyString(tok), nil
		}
		return "", &dto.ErrorResponse{Code: domain.CodeMissingToken, Message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: domain.CodeInvalidToken, Message: "formato: Bearer <token>"}
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", &dto.ErrorResponse{Code: domain.CodeMissingToken, Message: "token vacío"}
	}
	return utils.CopyString(tok), nil
}

func readClaims(secret, tok string) (*jwt.Claims, error) {
	if secret != "" {
		return jwt.Parse(secret, tok)
	}
	claims, err := jwt.Decode(tok)
	if err != nil {
		return nil, err
	}
	if claims.Expired(time.Now()) {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// RequireRole exige que el rol del token esté entre roles. Debe usarse después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no trae rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: domain.CodeForbidden, Message: "rol sin permiso para esta ruta"})
	}
}

// GetUserID devuelve el userId del token (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return local(c, LocalUserID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return local(c, LocalRole) }

// GetToken devuelve el token crudo.
func GetToken(c *fiber.Ctx) string { return local(c, LocalToken) }

// GetWorkspace devuelve el Workspace de la sesión, nil si el middleware no tiene registro.
func GetWorkspace(c *fiber.Ctx) *usecase.Workspace {
	ws, _ := c.Locals(LocalWorkspace).(*usecase.Workspace)
	return ws
}

func local(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
