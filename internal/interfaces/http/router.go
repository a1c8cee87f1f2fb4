package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/auth"
	"github.com/vendorhub/portal-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AccountUC      *usecase.AccountUseCase
	ApprovalUC     *usecase.ApprovalUseCase
	FlagsUC        *usecase.FlagsUseCase
	JWTSecret      string
	SessionMinutes int
}

// Router registra las rutas de la API. El guard de rutas de página se aplica
// globalmente en main; acá cada endpoint de API se autoprotege vía los
// middlewares y la Role Policy de los use cases.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionMinutes)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/reset-password/request", authHandler.RequestPasswordReset)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	accountHandler := NewAccountHandler(deps.AccountUC)
	protected.Get("/me", accountHandler.Me)

	// Gestión de cuentas (la política interna exige SUPER_ADMIN)
	users := protected.Group("/users")
	users.Get("/", accountHandler.List)
	users.Post("/", accountHandler.Create)
	users.Get("/:id", accountHandler.GetByID)
	users.Put("/:id", accountHandler.Update)
	users.Delete("/:id", accountHandler.Delete)

	// Aprobación de vendors (SUPER_ADMIN o ADMIN con manageVendors)
	vendorHandler := NewVendorHandler(deps.ApprovalUC)
	users.Patch("/:id/approve", vendorHandler.Approve)
	users.Delete("/:id/approve", vendorHandler.Revoke)

	vendors := protected.Group("/vendors")
	vendors.Get("/", vendorHandler.List)

	// Feature flags de admins (SUPER_ADMIN)
	flagsHandler := NewFlagsHandler(deps.FlagsUC)
	users.Get("/:id/feature-flags", flagsHandler.Get)
	users.Patch("/:id/feature-flags", flagsHandler.Update)
}
