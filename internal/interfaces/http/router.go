package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/invalidate"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	"github.com/Leavend/SMI-HIMPA-Client/internal/infrastructure/pdf"
	"github.com/Leavend/SMI-HIMPA-Client/internal/interfaces/table"
	"github.com/Leavend/SMI-HIMPA-Client/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions     *SessionRegistry
	Bus          invalidate.Bus
	Formatter    table.Formatter
	PDF          *pdf.TablePDFGenerator
	JWTSecret    string
	SecureCookie bool
	// Origin identifica esta réplica en los eventos de invalidación.
	Origin string
	// Now reloj de las marcas de invalidación; nil = time.Now.
	Now func() time.Time
	Log *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	gen := deps.PDF
	if gen == nil {
		gen = pdf.NewTablePDFGenerator("SMI HIMPA")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	notify := newNotifier(deps.Bus, deps.Origin, now, log)

	api := app.Group("/api", stampRequest(now))

	// Auth (público)
	authHandler := NewAuthHandler(deps.Sessions, deps.SecureCookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (Bearer o cookie)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	protected.Post("/auth/logout", authHandler.Logout)

	// Tablas: el rol de cada tabla se revisa en el handler
	tables := NewTableHandler(deps.Bus, deps.Formatter, gen, log)
	protected.Get("/tables/:name", tables.Get)

	admin := RequireRole(entity.RoleAdmin)
	anyone := RequireRole(entity.RoleAdmin, entity.RoleBorrower)

	// Inventario (ADMIN)
	inventoryHandler := NewInventoryHandler(notify)
	protected.Post("/inventories", admin, inventoryHandler.Create)
	protected.Put("/inventories/:id", admin, inventoryHandler.Update)
	protected.Patch("/inventories/:id/condition", admin, inventoryHandler.UpdateCondition)

	// Préstamos
	borrowHandler := NewBorrowHandler(notify)
	protected.Patch("/borrows/confirm", admin, borrowHandler.Confirm)
	protected.Put("/borrows/:id", admin, borrowHandler.Update)
	protected.Post("/borrows", anyone, borrowHandler.Create)

	// Usuarios (ADMIN)
	userHandler := NewUserHandler(notify)
	protected.Put("/users/role", admin, userHandler.UpdateRole)
}
