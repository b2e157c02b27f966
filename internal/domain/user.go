package domain

import (
	"context"
	"time"
)

// Role is the authorization tier carried on a user and embedded in issued tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered user of the marketplace. PasswordHash is the
// only credential field; plaintext passwords exist solely as function
// parameters on their way into bcrypt and are never stored on the entity.
type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	ProfileImage     string
	Address          string
	Role             Role
	RegistrationDate time.Time
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Name         *string
	Email        *string
	ProfileImage *string
	Address      *string
	Password     *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}
