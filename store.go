// Package session implements the client-side session and authorization
// core of the school administration system: a process-wide session store
// mirrored into durable local storage, an idle-timeout lifecycle
// monitor, authorization predicates over the resolved permission set,
// and route guards that gate access on it.
package session

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
	"github.com/schoolerp/session/sessioninfo"
	"github.com/schoolerp/session/sessionstorage"
)

const name = "github.com/schoolerp/session"

// Durable entry names. The layout is four independently readable
// entries; Restore treats them as all-or-nothing and falls back to
// logged-out on any inconsistency, which is the safety net for a write
// that only got partway through.
const (
	keyAuth        = "auth"
	keyExpiresAt   = "expiresAt"
	keyPermissions = "permissions"
	keyRoles       = "roles"
)

const defaultSessionTimeout = 30 * time.Minute

// authState is the durable identity blob: {"isLoggedIn":true,"currentEmail":"..."}.
type authState struct {
	IsLoggedIn   bool   `json:"isLoggedIn"`
	CurrentEmail string `json:"currentEmail"`
}

// Store owns the one logical session of this client process. It is the
// sole writer of session state; every mutation is mirrored into the
// durable store before the call returns. All other components hold
// read-only views plus the documented mutation entry points.
type Store struct {
	mu      sync.Mutex
	cur     sessioninfo.Session
	storage sessionstorage.Store
	timeout time.Duration
	now     func() time.Time
	seal    *securecookie.SecureCookie
}

// NewStore creates a Store over the given durable storage. The session
// starts logged out; call Restore to hydrate from a previous run.
func NewStore(storage sessionstorage.Store, options ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		timeout: defaultSessionTimeout,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	return s
}

// Restore hydrates the in-memory session from durable storage. Absent,
// expired, or unparseable state - including a blob that fails the
// optional seal - degrades silently to logged-out, clearing whatever
// partial state was found. Only storage I/O failures are errors.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, haveAuth, err := s.storage.Get(keyAuth)
	if err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Get()")
	}
	expStr, haveExp, err := s.storage.Get(keyExpiresAt)
	if err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Get()")
	}
	if !haveAuth || !haveExp {
		s.resetLocked()

		return nil
	}

	state, err := s.decodeAuth(blob)
	if err != nil || !state.IsLoggedIn || state.CurrentEmail == "" {
		s.resetLocked()

		return nil
	}

	ms, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		s.resetLocked()

		return nil
	}
	expiresAt := time.UnixMilli(ms)
	if !s.now().Before(expiresAt) {
		s.resetLocked()

		return nil
	}

	permissions, ok, err := s.getStringSlice(keyPermissions)
	if err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Get()")
	}
	if !ok {
		s.resetLocked()

		return nil
	}
	roles, ok, err := s.getStringSlice(keyRoles)
	if err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Get()")
	}
	if !ok {
		s.resetLocked()

		return nil
	}

	s.cur = sessioninfo.Session{
		IsLoggedIn:  true,
		Email:       state.CurrentEmail,
		Permissions: permissions,
		Roles:       roles,
		ExpiresAt:   expiresAt,
	}

	return nil
}

// Login marks the session authenticated as email with the given resolved
// permission and role sets, stamping a fresh expiry. Callers must have
// finished resolving permissions before calling Login; a session is
// never marked logged-in ahead of its permission set.
func (s *Store) Login(email string, permissions, roles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	expiresAt := now.Add(s.timeout)

	s.cur = sessioninfo.Session{
		IsLoggedIn:  true,
		Email:       email,
		Permissions: append([]string(nil), permissions...),
		Roles:       append([]string(nil), roles...),
		ExpiresAt:   expiresAt,
	}

	blob, err := s.encodeAuth(authState{IsLoggedIn: true, CurrentEmail: email})
	if err != nil {
		return err
	}
	if err := s.storage.Set(keyAuth, blob); err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Set()")
	}
	if err := s.setStringSlice(keyPermissions, s.cur.Permissions); err != nil {
		return err
	}
	if err := s.setStringSlice(keyRoles, s.cur.Roles); err != nil {
		return err
	}
	// Expiry last: until it lands, Restore treats the partial state as
	// invalid rather than resurrecting a session with missing fields.
	if err := s.storage.Set(keyExpiresAt, strconv.FormatInt(expiresAt.UnixMilli(), 10)); err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Set()")
	}

	return nil
}

// Logout clears the session and removes every durable entry. Idempotent.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logoutLocked()
}

// Extend stamps a new expiry of now plus the session timeout without
// touching identity or permissions. No-op while logged out.
func (s *Store) Extend(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cur.IsLoggedIn {
		return nil
	}

	expiresAt := now.Add(s.timeout)
	if err := s.storage.Set(keyExpiresAt, strconv.FormatInt(expiresAt.UnixMilli(), 10)); err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Set()")
	}
	s.cur.ExpiresAt = expiresAt

	return nil
}

// CheckExpiry re-reads the durable expiry and, if the session is logged
// in and the expiry has passed (or gone missing or unreadable), forces a
// logout. It reports whether a logout was forced.
func (s *Store) CheckExpiry(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cur.IsLoggedIn {
		return false, nil
	}

	expStr, ok, err := s.storage.Get(keyExpiresAt)
	if err != nil {
		return false, errors.Wrap(err, "sessionstorage.Store.Get()")
	}
	if ok {
		if ms, err := strconv.ParseInt(expStr, 10, 64); err == nil && now.Before(time.UnixMilli(ms)) {
			return false, nil
		}
	}

	if err := s.logoutLocked(); err != nil {
		return true, err
	}

	return true, nil
}

// Current returns a consistent copy of the session. Concurrent readers
// all observe the same store, never a private copy.
func (s *Store) Current() sessioninfo.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.cur
	cur.Permissions = append([]string(nil), s.cur.Permissions...)
	cur.Roles = append([]string(nil), s.cur.Roles...)

	return cur
}

// Can reports whether the current session holds permission.
func (s *Store) Can(permission string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cur.Can(permission)
}

// HasRole reports whether the current session holds roleName.
func (s *Store) HasRole(roleName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cur.HasRole(roleName)
}

func (s *Store) logoutLocked() error {
	s.cur = sessioninfo.Session{}

	for _, key := range []string{keyAuth, keyExpiresAt, keyPermissions, keyRoles} {
		if err := s.storage.Delete(key); err != nil {
			return errors.Wrap(err, "sessionstorage.Store.Delete()")
		}
	}

	return nil
}

// resetLocked is the corrupt-state cleanup path: clear memory and make a
// best-effort sweep of the durable entries. It never fails the
// restoration path.
func (s *Store) resetLocked() {
	s.cur = sessioninfo.Session{}

	for _, key := range []string{keyAuth, keyExpiresAt, keyPermissions, keyRoles} {
		_ = s.storage.Delete(key)
	}
}

func (s *Store) encodeAuth(state authState) (string, error) {
	if s.seal != nil {
		encoded, err := s.seal.Encode(keyAuth, state)
		if err != nil {
			return "", errors.Wrap(err, "securecookie.Encode()")
		}

		return encoded, nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", errors.Wrap(err, "json.Marshal()")
	}

	return string(data), nil
}

func (s *Store) decodeAuth(blob string) (authState, error) {
	var state authState
	if s.seal != nil {
		if err := s.seal.Decode(keyAuth, blob, &state); err != nil {
			return authState{}, errors.Wrap(err, "securecookie.Decode()")
		}

		return state, nil
	}

	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return authState{}, errors.Wrap(err, "json.Unmarshal()")
	}

	return state, nil
}

func (s *Store) getStringSlice(key string) ([]string, bool, error) {
	raw, ok, err := s.storage.Get(key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, nil
	}

	return values, true, nil
}

func (s *Store) setStringSlice(key string, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "json.Marshal()")
	}
	if err := s.storage.Set(key, string(data)); err != nil {
		return errors.Wrap(err, "sessionstorage.Store.Set()")
	}

	return nil
}
