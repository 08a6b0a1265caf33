package session

import (
	"time"

	"github.com/gorilla/securecookie"
)

// StoreOption defines a function signature for setting Store options.
type StoreOption func(*Store)

// WithSessionTimeout sets the idle-timeout window. (default: 30m)
func WithSessionTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.timeout = d
	}
}

// WithClock overrides the Store's time source. Test hook.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithSealedState seals the durable auth blob with the given codec, so a
// tampered or foreign blob reads as corrupt (logged out) on restore.
// The default is the plain JSON layout.
func WithSealedState(seal *securecookie.SecureCookie) StoreOption {
	return func(s *Store) {
		s.seal = seal
	}
}

// MonitorOption defines a function signature for setting Monitor options.
type MonitorOption func(*Monitor)

// WithCheckInterval sets the expiry polling interval. (default: 10s)
func WithCheckInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		m.interval = d
	}
}

// WithMonitorClock overrides the Monitor's time source. Test hook.
func WithMonitorClock(now func() time.Time) MonitorOption {
	return func(m *Monitor) {
		m.now = now
	}
}

// OnExpired registers a callback fired each time the monitor forces a
// logout, for surfacing the "session expired" notice.
func OnExpired(fn func()) MonitorOption {
	return func(m *Monitor) {
		m.onExpired = fn
	}
}

// GuardOption defines a function signature for setting Guard options.
type GuardOption func(*Guard)

// WithLoginPath sets the login entry point guards redirect to. (default: /login)
func WithLoginPath(path string) GuardOption {
	return func(g *Guard) {
		g.loginPath = path
	}
}

// WithDefaultPath sets the authenticated landing page the permission
// guard redirects to. (default: /dashboard)
func WithDefaultPath(path string) GuardOption {
	return func(g *Guard) {
		g.defaultPath = path
	}
}

// WithGuardLogHandler sets the LogHandler used by guard middleware.
func WithGuardLogHandler(l LogHandler) GuardOption {
	return func(g *Guard) {
		g.handle = l
	}
}

// HandlerOption defines a function signature for setting Handlers options.
type HandlerOption func(*Handlers)

// WithFrontendURL sets the public base URL used to build verification
// links. When unset, links use the origin of the in-flight request.
func WithFrontendURL(url string) HandlerOption {
	return func(h *Handlers) {
		h.frontendURL = url
	}
}

// WithLogHandler sets the LogHandler wrapping the auth handlers.
func WithLogHandler(l LogHandler) HandlerOption {
	return func(h *Handlers) {
		h.handle = l
	}
}
