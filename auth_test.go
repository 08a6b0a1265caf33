package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cccteam/httpio"
	"github.com/go-playground/errors/v5"
	"github.com/schoolerp/session/credentials"
	"github.com/schoolerp/session/internal/dbtype"
	"github.com/schoolerp/session/mock/mock_credentials"
	"github.com/schoolerp/session/mock/mock_session"
	"github.com/schoolerp/session/mock/mock_verification"
	"github.com/schoolerp/session/sessionstorage"
	"github.com/schoolerp/session/verification"
	gomock "go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type handlerMocks struct {
	users  *mock_credentials.MockUserStore
	tokens *mock_verification.MockTokenStore
	access *mock_session.MockAccessReader
	mailer *mock_session.MockMailer
}

func newTestHandlers(t *testing.T, ctrl *gomock.Controller) (*Handlers, *Store, handlerMocks) {
	t.Helper()

	m := handlerMocks{
		users:  mock_credentials.NewMockUserStore(ctrl),
		tokens: mock_verification.NewMockTokenStore(ctrl),
		access: mock_session.NewMockAccessReader(ctrl),
		mailer: mock_session.NewMockMailer(ctrl),
	}

	store := NewStore(sessionstorage.NewMemoryStore())
	h := NewHandlers(
		store,
		credentials.NewVerifier(m.users, credentials.WithHashCost(bcrypt.MinCost)),
		verification.NewService(m.tokens),
		m.access, m.mailer,
	)

	return h, store, m
}

func postJSON(t *testing.T, target string, body any) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(http.MethodPost, target, http.NoBody)
	}
	if s, ok := body.(string); ok {
		return httptest.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(s)))
	}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	return httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
}

func TestHandlers_CheckEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		reqBody        any
		prepare        func(m handlerMocks)
		wantStatusCode int
		wantBody       map[string]any
	}{
		{
			name:           "fails on decode",
			reqBody:        "invalid json",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fails on empty email",
			reqBody:        map[string]string{"email": "   "},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "unregistered email gets the contact-administration message",
			reqBody: map[string]string{"email": "stranger@school.test"},
			prepare: func(m handlerMocks) {
				m.access.EXPECT().UserAccess(gomock.Any(), "stranger@school.test").
					Return(nil, httpio.NewNotFoundMessage("user not found"))
			},
			wantStatusCode: http.StatusOK,
			wantBody: map[string]any{
				"registered": false,
				"message":    notRegisteredMessage,
			},
		},
		{
			name:    "verified account proceeds to the password step",
			reqBody: map[string]string{"email": "admin@school.test"},
			prepare: func(m handlerMocks) {
				m.access.EXPECT().UserAccess(gomock.Any(), "admin@school.test").
					Return(&dbtype.UserAccess{Email: "admin@school.test", EmailVerified: true}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody: map[string]any{
				"registered": true,
				"firstTime":  false,
			},
		},
		{
			name:    "unverified account gets a verification link",
			reqBody: map[string]string{"email": "new@school.test"},
			prepare: func(m handlerMocks) {
				m.access.EXPECT().UserAccess(gomock.Any(), "new@school.test").
					Return(&dbtype.UserAccess{Email: "new@school.test"}, nil)
				m.tokens.EXPECT().InsertToken(gomock.Any(), gomock.Any()).Return(nil)
				m.mailer.EXPECT().SendVerification(gomock.Any(), "new@school.test", gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody: map[string]any{
				"registered":       true,
				"firstTime":        true,
				"verificationSent": true,
			},
		},
		{
			name:    "fails on mail dispatch",
			reqBody: map[string]string{"email": "new@school.test"},
			prepare: func(m handlerMocks) {
				m.access.EXPECT().UserAccess(gomock.Any(), "new@school.test").
					Return(&dbtype.UserAccess{Email: "new@school.test"}, nil)
				m.tokens.EXPECT().InsertToken(gomock.Any(), gomock.Any()).Return(nil)
				m.mailer.EXPECT().SendVerification(gomock.Any(), "new@school.test", gomock.Any(), gomock.Any()).
					Return(errors.New("provider down"))
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			h, _, m := newTestHandlers(t, ctrl)
			if tt.prepare != nil {
				tt.prepare(m)
			}

			rr := httptest.NewRecorder()
			h.CheckEmail().ServeHTTP(rr, postJSON(t, "/auth/email", tt.reqBody))

			if got := rr.Code; got != tt.wantStatusCode {
				t.Errorf("response.Code = %v, want %v", got, tt.wantStatusCode)
			}
			if tt.wantBody != nil {
				var got map[string]any
				if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
					t.Fatalf("json.Unmarshal() error=%v", err)
				}
				for k, want := range tt.wantBody {
					if got[k] != want {
						t.Errorf("response[%q] = %v, want %v", k, got[k], want)
					}
				}
			}
		})
	}
}

func TestHandlers_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	validHash := string(hash)

	tests := []struct {
		name           string
		reqBody        any
		prepare        func(m handlerMocks)
		wantStatusCode int
		wantLoggedIn   bool
	}{
		{
			name:           "fails on decode",
			reqBody:        "invalid json",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fails on missing password",
			reqBody:        map[string]string{"email": "admin@school.test"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "unknown account fails closed",
			reqBody: map[string]string{"email": "stranger@school.test", "password": "password"},
			prepare: func(m handlerMocks) {
				m.users.EXPECT().User(gomock.Any(), "stranger@school.test").
					Return(nil, httpio.NewNotFoundMessage("user not found"))
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:    "fails on wrong password",
			reqBody: map[string]string{"email": "admin@school.test", "password": "wrongpassword"},
			prepare: func(m handlerMocks) {
				m.users.EXPECT().User(gomock.Any(), "admin@school.test").
					Return(&dbtype.User{Email: "admin@school.test", Password: &validHash, EmailVerified: true}, nil)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:    "success",
			reqBody: map[string]string{"email": "admin@school.test", "password": "password"},
			prepare: func(m handlerMocks) {
				m.users.EXPECT().User(gomock.Any(), "admin@school.test").
					Return(&dbtype.User{Email: "admin@school.test", Password: &validHash, EmailVerified: true}, nil)
				m.access.EXPECT().UserAccess(gomock.Any(), "admin@school.test").
					Return(&dbtype.UserAccess{
						Email:         "admin@school.test",
						EmailVerified: true,
						Permissions:   []string{"manage_students"},
						Roles:         []string{"Admin"},
					}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantLoggedIn:   true,
		},
		{
			name:    "fails on access resolution",
			reqBody: map[string]string{"email": "admin@school.test", "password": "password"},
			prepare: func(m handlerMocks) {
				m.users.EXPECT().User(gomock.Any(), "admin@school.test").
					Return(&dbtype.User{Email: "admin@school.test", Password: &validHash, EmailVerified: true}, nil)
				m.access.EXPECT().UserAccess(gomock.Any(), "admin@school.test").
					Return(nil, errors.New("db error"))
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			h, store, m := newTestHandlers(t, ctrl)
			if tt.prepare != nil {
				tt.prepare(m)
			}

			rr := httptest.NewRecorder()
			h.Login().ServeHTTP(rr, postJSON(t, "/auth/login", tt.reqBody))

			if got := rr.Code; got != tt.wantStatusCode {
				t.Errorf("response.Code = %v, want %v", got, tt.wantStatusCode)
			}
			if got := store.Current().IsLoggedIn; got != tt.wantLoggedIn {
				t.Errorf("Store.Current().IsLoggedIn = %v, want %v", got, tt.wantLoggedIn)
			}
			if tt.wantLoggedIn {
				cur := store.Current()
				if !cur.Can("manage_students") {
					t.Error(`session.Can("manage_students") = false after login`)
				}
				if !cur.HasRole("Admin") {
					t.Error(`session.HasRole("Admin") = false after login`)
				}
			}
		})
	}
}

func TestHandlers_Verify(t *testing.T) {
	t.Parallel()

	validBody := map[string]string{
		"email":           "new@school.test",
		"token":           "AB12CD",
		"password":        "secret1",
		"confirmPassword": "secret1",
	}

	tests := []struct {
		name           string
		reqBody        any
		prepare        func(m handlerMocks)
		wantStatusCode int
		wantLoggedIn   bool
	}{
		{
			name:           "fails on decode",
			reqBody:        "invalid json",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fails on missing token",
			reqBody:        map[string]string{"email": "new@school.test", "password": "secret1", "confirmPassword": "secret1"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fails on short password",
			reqBody:        map[string]string{"email": "new@school.test", "token": "AB12CD", "password": "abc", "confirmPassword": "abc"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fails on password mismatch",
			reqBody:        map[string]string{"email": "new@school.test", "token": "AB12CD", "password": "secret1", "confirmPassword": "secret2"},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:    "fails on invalid token",
			reqBody: validBody,
			prepare: func(m handlerMocks) {
				m.tokens.EXPECT().MatchToken(gomock.Any(), "new@school.test", "AB12CD", gomock.Any()).Return(false, nil)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:    "failed password write leaves the token live",
			reqBody: validBody,
			prepare: func(m handlerMocks) {
				m.tokens.EXPECT().MatchToken(gomock.Any(), "new@school.test", "AB12CD", gomock.Any()).Return(true, nil)
				m.users.EXPECT().SetVerifiedPassword(gomock.Any(), "new@school.test", gomock.Any()).
					Return(errors.New("db error"))
				// No DeleteToken expectation: the token must survive.
			},
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:    "success",
			reqBody: validBody,
			prepare: func(m handlerMocks) {
				m.tokens.EXPECT().MatchToken(gomock.Any(), "new@school.test", "AB12CD", gomock.Any()).Return(true, nil)
				setPassword := m.users.EXPECT().SetVerifiedPassword(gomock.Any(), "new@school.test", gomock.Any()).
					DoAndReturn(func(_ any, _ string, passwordHash string) error {
						if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("secret1")); err != nil {
							t.Errorf("stored hash does not match the submitted password: %v", err)
						}
						return nil
					})
				m.tokens.EXPECT().DeleteToken(gomock.Any(), "new@school.test", "AB12CD").
					After(setPassword).Return(nil)
				m.access.EXPECT().UserAccess(gomock.Any(), "new@school.test").
					Return(&dbtype.UserAccess{
						Email:         "new@school.test",
						EmailVerified: true,
						Permissions:   []string{"view_dashboard"},
						Roles:         []string{"Teacher"},
					}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantLoggedIn:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			h, store, m := newTestHandlers(t, ctrl)
			if tt.prepare != nil {
				tt.prepare(m)
			}

			rr := httptest.NewRecorder()
			h.Verify().ServeHTTP(rr, postJSON(t, "/auth/verify", tt.reqBody))

			if got := rr.Code; got != tt.wantStatusCode {
				t.Errorf("response.Code = %v, want %v", got, tt.wantStatusCode)
			}
			if got := store.Current().IsLoggedIn; got != tt.wantLoggedIn {
				t.Errorf("Store.Current().IsLoggedIn = %v, want %v", got, tt.wantLoggedIn)
			}
		})
	}
}

func TestHandlers_Logout(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	h, store, _ := newTestHandlers(t, ctrl)
	if err := store.Login("admin@school.test", nil, nil); err != nil {
		t.Fatalf("Store.Login() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.Logout().ServeHTTP(rr, postJSON(t, "/auth/logout", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("response.Code = %v, want %v", rr.Code, http.StatusOK)
	}
	if store.Current().IsLoggedIn {
		t.Error("Store.Current().IsLoggedIn = true after logout")
	}
}

func TestHandlers_Authenticated(t *testing.T) {
	t.Parallel()

	t.Run("logged out", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)

		h, _, _ := newTestHandlers(t, ctrl)

		rr := httptest.NewRecorder()
		h.Authenticated().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

		if rr.Code != http.StatusOK {
			t.Fatalf("response.Code = %v, want %v", rr.Code, http.StatusOK)
		}
		var got map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("json.Unmarshal() error=%v", err)
		}
		if got["authenticated"] != false {
			t.Errorf("response[authenticated] = %v, want false", got["authenticated"])
		}
	})

	t.Run("logged in", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)

		h, store, _ := newTestHandlers(t, ctrl)
		if err := store.Login("admin@school.test", []string{"manage_students"}, []string{"Admin"}); err != nil {
			t.Fatalf("Store.Login() error = %v", err)
		}

		rr := httptest.NewRecorder()
		h.Authenticated().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

		var got map[string]any
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatalf("json.Unmarshal() error=%v", err)
		}
		if got["authenticated"] != true {
			t.Errorf("response[authenticated] = %v, want true", got["authenticated"])
		}
		if got["email"] != "admin@school.test" {
			t.Errorf("response[email] = %v, want admin@school.test", got["email"])
		}
		if got["expiresAt"] == nil {
			t.Error("response[expiresAt] missing")
		}
	})
}
