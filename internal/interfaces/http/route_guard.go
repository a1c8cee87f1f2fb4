package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vendorhub/portal-api/internal/domain/entity"
	"github.com/vendorhub/portal-api/internal/domain/policy"
	"github.com/vendorhub/portal-api/pkg/jwt"
)

// RouteGuard middleware global para rutas de página (no /api): decodifica la
// sesión de la cookie y aplica la decisión pura de policy.DecideRoute.
// La decodificación falla cerrado: cookie ausente o token inválido se trata
// como visitante anónimo.
func RouteGuard(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var actor *policy.Actor
		if token := c.Cookies(SessionCookie); token != "" {
			if ident, err := jwt.Parse(jwtSecret, token); err == nil {
				actor = &policy.Actor{
					ID:    ident.UserID,
					Role:  ident.Role,
					Flags: entity.FlagsFromMap(ident.FeatureFlags),
				}
			}
		}

		decision := policy.DecideRoute(actor, c.Path())
		if decision.Verdict == policy.GuardRedirect {
			return c.Redirect(decision.Location, fiber.StatusFound)
		}
		return c.Next()
	}
}
