package domain

import "time"

type Role string

const (
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleManager || r == RoleMember
}

type User struct {
	ID           uint64
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID uint64
	Role   Role
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

type CreateUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     Role
}

// UpdateUserInput leaves the password untouched when Password is empty.
type UpdateUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     Role
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      User
}
