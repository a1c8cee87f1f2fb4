package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/auth"
	"github.com/vendorhub/portal-api/internal/application/dto"
)

// AuthHandler maneja login, logout, registro de vendors y reseteo de password.
type AuthHandler struct {
	uc             *auth.AuthUseCase
	sessionMinutes int
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessionMinutes int) *AuthHandler {
	return &AuthHandler{uc: uc, sessionMinutes: sessionMinutes}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	// Cookie de sesión para el guard de rutas de página; el token del body es
	// para clientes API.
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Expires:  time.Now().Add(time.Duration(h.sessionMinutes) * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (limpia la cookie; el JWT expira solo)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Register godoc
// @Summary      Registro público de vendor (queda pendiente de aprobación)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterVendorRequest  true  "datos del vendor"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "name, email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return badRequest(c, "VALIDATION", "password debe tener al menos 8 caracteres")
	}
	if in.CompanyName == "" {
		return badRequest(c, "VALIDATION", "company_name es requerido para vendors")
	}
	acc, err := h.uc.RegisterVendor(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(acc)
}

// RequestPasswordReset godoc
// @Summary      Pedir link de reseteo de password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequestInput  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/reset-password/request [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequestInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Email == "" {
		return badRequest(c, "VALIDATION", "email es requerido")
	}
	if err := h.uc.RequestPasswordReset(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	// Misma respuesta exista o no la cuenta.
	return c.JSON(dto.MessageResponse{Message: "si el email existe, va a recibir un link de reseteo"})
}

// ResetPassword godoc
// @Summary      Completar reseteo de password con el token del link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordInput  true  "token, new_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Token == "" || in.NewPassword == "" {
		return badRequest(c, "VALIDATION", "token y new_password son requeridos")
	}
	if len(in.NewPassword) < 8 {
		return badRequest(c, "VALIDATION", "new_password debe tener al menos 8 caracteres")
	}
	if err := h.uc.ResetPassword(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "password restablecido, ya podés iniciar sesión"})
}
