package users

import "context"

// Repository is the user store contract. Implementations return
// common.ErrorNotFound for missing rows and common.ErrorAlreadyExists when
// a unique constraint on username or email is violated.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*User, error)
}
