// sessioninfo package holds the session snapshot shared by the store, guards, and handlers.
package sessioninfo

import (
	"slices"
	"time"
)

// Session is the client-held projection of an authenticated principal.
// Permissions and Roles are populated only while IsLoggedIn is true.
type Session struct {
	IsLoggedIn  bool
	Email       string
	Permissions []string
	Roles       []string
	ExpiresAt   time.Time
}

// Can reports whether permission is a member of the session's permission
// set. It is a plain membership test with no wildcard handling.
func (s Session) Can(permission string) bool {
	return slices.Contains(s.Permissions, permission)
}

// HasRole reports whether roleName is a member of the session's role set.
func (s Session) HasRole(roleName string) bool {
	return slices.Contains(s.Roles, roleName)
}
