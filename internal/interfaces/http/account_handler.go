package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/application/usecase"
)

// AccountHandler CRUD de cuentas. La autorización vive en la Role Policy
// invocada por el use case; acá solo se parsea y se traduce el resultado.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas con filtros (solo SUPER_ADMIN)
// @Tags         users
// @Produce      json
// @Param        role    query  string  false  "all | VENDOR | ADMIN | SUPER_ADMIN"
// @Param        status  query  string  false  "all | pending | approved"
// @Success      200  {array}   dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var q dto.ListAccountsQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "VALIDATION", "filtros inválidos")
	}
	list, err := h.uc.List(c.Context(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear cuenta de cualquier rol (solo SUPER_ADMIN)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "datos de la cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return badRequest(c, "VALIDATION", "name, email, password y role son requeridos")
	}
	if len(in.Password) < 8 {
		return badRequest(c, "VALIDATION", "password debe tener al menos 8 caracteres")
	}
	acc, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(acc)
}

// Me godoc
// @Summary      Proyección de la propia cuenta
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	acc, err := h.uc.Me(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acc)
}

// GetByID godoc
// @Summary      Detalle de una cuenta (solo SUPER_ADMIN)
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	acc, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acc)
}

// Update godoc
// @Summary      Actualizar una cuenta (dueño: campos de autoservicio; SUPER_ADMIN: todos)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.UpdateAccountRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.AccountResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	acc, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(acc)
}

// Delete godoc
// @Summary      Eliminar una cuenta (solo SUPER_ADMIN, nunca la propia)
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}
