package model

// RoleID is the numeric authorization level stored in the `roles`
// table. The set is closed: there are exactly two roles and no
// mechanism for adding more at runtime.
type RoleID uint8

const (
	RoleAdmin RoleID = 1 // full read/write access to the parts catalogue
	RoleGuest RoleID = 2 // read access plus own-project management
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are used internally by the repository and service layers;
// handlers define separate response types with appropriate tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name, 6 to 15 characters.
//  PasswordHash – bcrypt hashed password; the plain text is never stored.
//  RoleID       – foreign key into the roles table (tinyint).
type User struct {
	ID           uint64 // users.id
	Username     string // users.username
	PasswordHash string // users.password_hash
	RoleID       RoleID // users.role_id (references roles.role_id)
}

// Role represents a row in the `roles` table. It maps a small
// integer ID to a role name. Users reference this table via the
// RoleID field.
//
// Fields:
//  ID   – numeric identifier of the role.
//  Name – unique role name ("admin" or "guest").
type Role struct {
	ID   RoleID // roles.role_id
	Name string // roles.role_name
}

// Identity is the resolved principal of an inbound request. The zero
// value means anonymous. Identities are produced by the
// authentication gate and intentionally carry no role; roles are
// resolved separately and fail closed.
type Identity struct {
	Username string
}

// Anonymous reports whether the identity belongs to no authenticated
// user.
func (i Identity) Anonymous() bool { return i.Username == "" }
