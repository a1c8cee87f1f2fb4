package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorhub/portal-api/internal/domain/entity"
	apphttp "github.com/vendorhub/portal-api/internal/interfaces/http"
	pkgjwt "github.com/vendorhub/portal-api/pkg/jwt"
)

// buildGuardApp monta el guard global y handlers dummy para páginas.
func buildGuardApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RouteGuard(testJWTSecret))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/", ok)
	app.Get("/signin", ok)
	app.Get("/health", ok)
	app.Get("/vendor/dashboard", ok)
	app.Get("/admin/dashboard", ok)
	app.Get("/admin/users", ok)
	app.Get("/api/ping", ok)
	return app
}

func guardRequest(t *testing.T, app *fiber.App, path, sessionToken string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: sessionToken})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: testUserID, Role: role,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func TestRouteGuard_AnonimoRedirigeConCallback(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/admin/users", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?callbackUrl=%2Fadmin%2Fusers", resp.Header.Get("Location"))
}

func TestRouteGuard_AnonimoPasaEnSigninYPublicas(t *testing.T) {
	app := buildGuardApp()
	for _, path := range []string{"/signin", "/health", "/api/ping"} {
		resp := guardRequest(t, app, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestRouteGuard_LogueadoEnSigninVaASuDashboard(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/signin", sessionToken(t, entity.RoleVendor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/vendor/dashboard", resp.Header.Get("Location"))
}

func TestRouteGuard_SeccionAjenaRedirigeAlDashboardPropio(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/admin/users", sessionToken(t, entity.RoleVendor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/vendor/dashboard", resp.Header.Get("Location"))
}

func TestRouteGuard_SeccionPropiaPasa(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/admin/dashboard", sessionToken(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuard_RaizConSesionVaAlDashboard(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/", sessionToken(t, entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/superadmin/dashboard", resp.Header.Get("Location"))
}

// Cookie adulterada se trata como visitante anónimo, nunca como error.
func TestRouteGuard_CookieInvalidaEsAnonimo(t *testing.T) {
	app := buildGuardApp()
	resp := guardRequest(t, app, "/vendor/dashboard", "token.falso.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/signin?callbackUrl=%2Fvendor%2Fdashboard", resp.Header.Get("Location"))
}
