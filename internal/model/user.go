package model

import "time"

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column in the
// database.  A user always has exactly one primary role (RoleID)
// and may carry additional secondary roles via the
// user_secondary_roles join table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – legal/display name.
//  RoleID       – primary role (references roles.id).
//  Status       – account status ("active" or "inactive").
//  IsDemo       – marks seeded demo accounts excluded from real flows.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	RoleID       uint64    // users.role_id
	Status       string    // users.status
	IsDemo       bool      // users.is_demo
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Role represents a row in the `roles` table.  The nine default
// roles are seeded at installation; see role.go for their IDs.
type Role struct {
	ID   uint64 `json:"id"`   // roles.id
	Name string `json:"name"` // roles.name
}

// UserWithRoles is the enriched identity view used by the role
// resolver: the user joined with the primary role name, the derived
// category and managed flag, the profile-level primary talent (for
// artist/musician/professional categories) and the full set of
// secondary roles.
type UserWithRoles struct {
	User
	RoleName       string       `json:"role_name"`
	Category       RoleCategory `json:"category"`
	IsManaged      bool         `json:"is_managed"`
	PrimaryTalent  *string      `json:"primary_talent,omitempty"`
	SecondaryRoles []Role       `json:"secondary_roles"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
