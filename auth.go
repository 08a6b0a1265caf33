package session

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cccteam/httpio"
	"github.com/go-chi/chi/v5"
	"github.com/schoolerp/session/credentials"
	"github.com/schoolerp/session/verification"
	"go.opentelemetry.io/otel"
)

// notRegisteredMessage is the one account-existence disclosure the
// product requires; every other failure uses generic retry language.
const notRegisteredMessage = "This email is not registered. Only existing staff, students, or guardians can access the system. Please contact school administration."

const minPasswordLength = 6

// Handlers exposes the authentication entry points: the two-step login
// flow, the verification-link landing flow, logout, and session
// introspection for the debug permissions viewer.
type Handlers struct {
	store       *Store
	verifier    *credentials.Verifier
	tokens      *verification.Service
	access      AccessReader
	mailer      Mailer
	frontendURL string
	handle      LogHandler
}

// NewHandlers wires the authentication entry points.
func NewHandlers(
	store *Store, verifier *credentials.Verifier, tokens *verification.Service,
	access AccessReader, mailer Mailer, options ...HandlerOption,
) *Handlers {
	h := &Handlers{
		store:    store,
		verifier: verifier,
		tokens:   tokens,
		access:   access,
		mailer:   mailer,
		handle:   logHandler,
	}
	for _, opt := range options {
		opt(h)
	}

	return h
}

// Routes mounts the authentication endpoints.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Post("/auth/email", h.CheckEmail())
	r.Post("/auth/login", h.Login())
	r.Post("/auth/verify", h.Verify())
	r.Post("/auth/logout", h.Logout())
	r.Get("/auth/session", h.Authenticated())

	return r
}

// CheckEmail is the first login step: it reports whether the email is
// registered and, for a registered but unverified principal, issues a
// verification token and dispatches the link.
func (h *Handlers) CheckEmail() http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}
	type response struct {
		Registered       bool   `json:"registered"`
		FirstTime        bool   `json:"firstTime"`
		VerificationSent bool   `json:"verificationSent"`
		Message          string `json:"message,omitempty"`
	}

	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Handlers.CheckEmail()")
		defer span.End()

		req := &request{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "please enter your email address")
		}

		access, err := h.access.UserAccess(ctx, req.Email)
		if err != nil {
			if httpio.HasNotFound(err) {
				return httpio.NewEncoder(w).Ok(response{Message: notRegisteredMessage})
			}

			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		if !access.EmailVerified {
			token, err := h.tokens.Issue(ctx, req.Email)
			if err != nil {
				return httpio.NewEncoder(w).ClientMessage(ctx, err)
			}
			if err := h.mailer.SendVerification(ctx, req.Email, h.baseURL(r), token); err != nil {
				return httpio.NewEncoder(w).ClientMessage(ctx, err)
			}

			return httpio.NewEncoder(w).Ok(response{
				Registered:       true,
				FirstTime:        true,
				VerificationSent: true,
				Message:          "We've sent a verification link to your email. Please open it to set your password.",
			})
		}

		return httpio.NewEncoder(w).Ok(response{Registered: true})
	})
}

// Login is the password step. Permission and role resolution completes
// before the session store is touched, so a session is never marked
// logged-in with a stale or empty permission set.
func (h *Handlers) Login() http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	type response struct {
		Authenticated bool     `json:"authenticated"`
		Email         string   `json:"email"`
		Permissions   []string `json:"permissions"`
		Roles         []string `json:"roles"`
	}

	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Handlers.Login()")
		defer span.End()

		req := &request{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Password == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "email and password are required")
		}

		ok, err := h.verifier.Verify(ctx, req.Email, req.Password)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}
		if !ok {
			return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewUnauthorizedMessage("incorrect password, please try again"))
		}

		access, err := h.access.UserAccess(ctx, req.Email)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		if err := h.store.Login(req.Email, access.Permissions, access.Roles); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(response{
			Authenticated: true,
			Email:         req.Email,
			Permissions:   access.Permissions,
			Roles:         access.Roles,
		})
	})
}

// Verify is the verification-link landing flow: token check, password
// set, token redemption, then auto-login. The token is redeemed only
// after the password write succeeded, so a failed write never burns a
// still-valid link.
func (h *Handlers) Verify() http.HandlerFunc {
	type request struct {
		Email           string `json:"email"`
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	type response struct {
		Authenticated bool     `json:"authenticated"`
		Email         string   `json:"email"`
		Permissions   []string `json:"permissions"`
		Roles         []string `json:"roles"`
	}

	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Handlers.Verify()")
		defer span.End()

		req := &request{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid request body")
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || req.Token == "" {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "invalid verification link, please check your email and try again")
		}
		if len(req.Password) < minPasswordLength {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "password must be at least 6 characters long")
		}
		if req.Password != req.ConfirmPassword {
			return httpio.NewEncoder(w).BadRequestMessage(ctx, "passwords do not match")
		}

		valid, err := h.tokens.Validate(ctx, req.Email, req.Token)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}
		if !valid {
			// Never existed, expired, and already redeemed all collapse
			// into one message.
			return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewUnauthorizedMessage("this verification link is invalid or has expired"))
		}

		if err := h.verifier.SetPassword(ctx, req.Email, req.Password); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		if err := h.tokens.Redeem(ctx, req.Email, req.Token); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		access, err := h.access.UserAccess(ctx, req.Email)
		if err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		if err := h.store.Login(req.Email, access.Permissions, access.Roles); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(response{
			Authenticated: true,
			Email:         req.Email,
			Permissions:   access.Permissions,
			Roles:         access.Roles,
		})
	})
}

// Logout destroys the current session. Idempotent.
func (h *Handlers) Logout() http.HandlerFunc {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		ctx, span := otel.Tracer(name).Start(r.Context(), "Handlers.Logout()")
		defer span.End()

		if err := h.store.Logout(); err != nil {
			return httpio.NewEncoder(w).ClientMessage(ctx, err)
		}

		return httpio.NewEncoder(w).Ok(nil)
	})
}

// Authenticated reports the current session state: authentication flag,
// email, and the resolved permission and role sets. This backs the
// debug permissions viewer; keep it off production routes.
func (h *Handlers) Authenticated() http.HandlerFunc {
	type response struct {
		Authenticated bool     `json:"authenticated"`
		Email         string   `json:"email,omitempty"`
		Permissions   []string `json:"permissions,omitempty"`
		Roles         []string `json:"roles,omitempty"`
		ExpiresAt     int64    `json:"expiresAt,omitempty"`
	}

	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		_, span := otel.Tracer(name).Start(r.Context(), "Handlers.Authenticated()")
		defer span.End()

		cur := h.store.Current()
		if !cur.IsLoggedIn {
			return httpio.NewEncoder(w).Ok(response{})
		}

		return httpio.NewEncoder(w).Ok(response{
			Authenticated: true,
			Email:         cur.Email,
			Permissions:   cur.Permissions,
			Roles:         cur.Roles,
			ExpiresAt:     cur.ExpiresAt.UnixMilli(),
		})
	})
}

// baseURL returns the public origin for verification links: the
// configured frontend URL, or the origin of the request when unset.
func (h *Handlers) baseURL(r *http.Request) string {
	if h.frontendURL != "" {
		return h.frontendURL
	}

	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}

	return scheme + "://" + r.Host
}
