package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-Id"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// System roles
const (
	UserRole      = "user"
	AdminRole     = "admin"
	ModeratorRole = "moderator"
)

// UserCtxName is the fiber locals key the auth middleware stores the
// UserContext under.
const UserCtxName = "user"

// UserContext carries the authenticated caller's identity through a request.
// It is populated by the auth middleware; handlers and services never touch
// token material directly.
type UserContext struct {
	UserID      uuid.UUID `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	SystemRole  string    `json:"systemRole"`
	CreatedDate int64     `json:"createdDate"`
}

// IsElevated reports whether the user may moderate content they do not own.
func (u UserContext) IsElevated() bool {
	return u.SystemRole == AdminRole || u.SystemRole == ModeratorRole
}
