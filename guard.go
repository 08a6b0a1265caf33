package session

import (
	"net/http"

	"github.com/schoolerp/session/sessioninfo"
)

// AnyAuthenticated is the reserved permission meaning "any logged-in
// principal". It is honored by the guard layer only; the predicate
// itself is a plain membership test.
const AnyAuthenticated = "*"

// Decision is the tri-valued outcome of a guard check. Denial is a
// normal outcome, not an error: it redirects, it is never thrown.
type Decision int

const (
	// Allow renders the guarded content.
	Allow Decision = iota
	// RedirectToLogin sends an unauthenticated principal to the login
	// entry point. The attempted destination is discarded.
	RedirectToLogin
	// RedirectToDefault sends an authenticated principal that lacks the
	// required capability to the default landing page.
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect to login"
	case RedirectToDefault:
		return "redirect to default"
	default:
		return "unknown"
	}
}

const (
	defaultLoginPath   = "/login"
	defaultLandingPath = "/dashboard"
)

// Guard gates routes and elements on the current session. The
// authentication guard must wrap the permission guard, never the
// reverse: the permission guard assumes a session already exists.
type Guard struct {
	store       *Store
	loginPath   string
	defaultPath string
	handle      LogHandler
}

// NewGuard creates a Guard over store.
func NewGuard(store *Store, options ...GuardOption) *Guard {
	g := &Guard{
		store:       store,
		loginPath:   defaultLoginPath,
		defaultPath: defaultLandingPath,
		handle:      logHandler,
	}
	for _, opt := range options {
		opt(g)
	}

	return g
}

// Authorize composes the authentication and permission checks for a
// single required permission: logged out is RedirectToLogin, a missing
// capability is RedirectToDefault, and AnyAuthenticated admits every
// logged-in session regardless of its permission list.
func (g *Guard) Authorize(permission string) Decision {
	cur := g.store.Current()
	if !cur.IsLoggedIn {
		return RedirectToLogin
	}
	if permission == AnyAuthenticated || cur.Can(permission) {
		return Allow
	}

	return RedirectToDefault
}

// RequireAuth serves next only while logged in, redirecting everyone
// else to the login entry point. The session snapshot that admitted the
// request is stored in the request context.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return g.handle(func(w http.ResponseWriter, r *http.Request) error {
		cur := g.store.Current()
		if !cur.IsLoggedIn {
			http.Redirect(w, r, g.loginPath, http.StatusFound)

			return nil
		}

		next.ServeHTTP(w, r.WithContext(sessioninfo.NewCtx(r.Context(), &cur)))

		return nil
	})
}

// RequirePermission serves next only while the session holds permission
// (or permission is AnyAuthenticated). It nests inside RequireAuth; if
// it is reached without a session it falls back to the login redirect.
func (g *Guard) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.handle(func(w http.ResponseWriter, r *http.Request) error {
			switch g.Authorize(permission) {
			case RedirectToLogin:
				http.Redirect(w, r, g.loginPath, http.StatusFound)
			case RedirectToDefault:
				http.Redirect(w, r, g.defaultPath, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}

			return nil
		})
	}
}
