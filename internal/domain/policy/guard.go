package policy

import (
	"net/url"
	"strings"
)

// GuardVerdict resultado del guard de rutas: dejar pasar o redirigir.
type GuardVerdict int

const (
	GuardAllow GuardVerdict = iota
	GuardRedirect
)

// GuardDecision decisión para una petición entrante. Location solo está
// presente cuando Verdict es GuardRedirect.
type GuardDecision struct {
	Verdict  GuardVerdict
	Location string
}

func allow() GuardDecision {
	return GuardDecision{Verdict: GuardAllow}
}

func redirect(to string) GuardDecision {
	return GuardDecision{Verdict: GuardRedirect, Location: to}
}

// Rutas públicas y páginas de autenticación del portal.
var (
	publicPaths = []string{"/error-404", "/health", "/docs"}
	authPaths   = []string{"/signin", "/signup", "/reset-password"}
)

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// DecideRoute aplica el guard a una petición. actor es nil cuando no hay
// sesión válida. Los pasos se evalúan en orden fijo con corte en el primero
// que aplica:
//
//  1. Rutas /api y rutas públicas pasan sin política (los handlers de API se
//     autoprotegen con la Role Policy).
//  2. Usuario con sesión en una página de auth → redirigir a su dashboard.
//  3. Sin sesión fuera de páginas de auth → redirigir a /signin preservando
//     la ruta de origen como callbackUrl.
//  4. Con sesión en ruta con prefijo de rol ajeno → redirigir a su dashboard.
//  5. Con sesión en la raíz → redirigir a su dashboard.
//  6. En cualquier otro caso, pasar.
func DecideRoute(actor *Actor, path string) GuardDecision {
	if strings.HasPrefix(path, "/api") || hasAnyPrefix(path, publicPaths) {
		return allow()
	}

	loggedIn := actor != nil

	if loggedIn && hasAnyPrefix(path, authPaths) {
		return redirect(DashboardPath(actor.Role))
	}

	if !loggedIn && !hasAnyPrefix(path, authPaths) {
		if path != "/" {
			return redirect("/signin?callbackUrl=" + url.QueryEscape(path))
		}
		return redirect("/signin")
	}

	if loggedIn {
		if !CanAccessRoute(actor.Role, path) {
			return redirect(DashboardPath(actor.Role))
		}
		if path == "/" {
			return redirect(DashboardPath(actor.Role))
		}
	}

	return allow()
}
