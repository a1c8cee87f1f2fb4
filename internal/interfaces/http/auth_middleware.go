package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/application/dto"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/policy"
	"github.com/vendorhub/portal-api/pkg/jwt"
)

// Locals key de la identidad decodificada en Fiber.
const LocalIdentity = "identity"

// SessionCookie nombre de la cookie de sesión que lee el guard de rutas.
// El login la setea además de devolver el token en el body.
const SessionCookie = "portal_session"

// AuthMiddleware valida el JWT de sesión (header Bearer o cookie) y deja la
// identidad decodificada en c.Locals. Falla cerrado: cualquier token ausente,
// malformado, expirado o adulterado responde 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(SessionCookie)
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "se requiere Authorization: Bearer <token> o cookie de sesión"})
		}
		ident, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, ident)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) *jwt.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	ident, _ := v.(*jwt.Identity)
	return ident
}

// GetUserID devuelve el UserID del contexto, o "" si no hay sesión.
func GetUserID(c *fiber.Ctx) string {
	if ident := GetIdentity(c); ident != nil {
		return ident.UserID
	}
	return ""
}

// GetRole devuelve el rol del contexto, o "" si no hay sesión.
func GetRole(c *fiber.Ctx) string {
	if ident := GetIdentity(c); ident != nil {
		return ident.Role
	}
	return ""
}

// GetActor arma el Actor de política desde la identidad del contexto.
func GetActor(c *fiber.Ctx) policy.Actor {
	ident := GetIdentity(c)
	if ident == nil {
		return policy.Actor{}
	}
	return policy.Actor{
		ID:    ident.UserID,
		Role:  ident.Role,
		Flags: entity.FlagsFromMap(ident.FeatureFlags),
	}
}

// RequireRole autoriza el acceso solo a los roles indicados. Debe usarse
// DESPUÉS de AuthMiddleware. Token sin claim de rol responde 401; rol
// presente pero no permitido responde 403.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente para esta operación"})
	}
}

// RequireCapability autoriza según el conjunto cerrado de capacidades:
// SUPER_ADMIN pasa siempre, ADMIN solo con la capacidad activa en su snapshot
// de flags, y cualquier otro rol recibe 403. Debe usarse DESPUÉS de
// AuthMiddleware.
//
// El snapshot viaja en el token: flags revocados a mitad de sesión siguen
// vigentes hasta el próximo login (limitación aceptada).
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := GetIdentity(c)
		if ident == nil || ident.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !policy.HasCapability(GetActor(c), capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CAPABILITY_DISABLED",
				Message: "la capacidad '" + capability + "' no está habilitada para esta cuenta",
			})
		}
		return c.Next()
	}
}
