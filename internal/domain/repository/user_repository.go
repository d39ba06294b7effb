package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/rituday/internal/domain/entity"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("duplicate key")
	ErrInvalidID   = errors.New("invalid id")
	ErrEmptyFilter = errors.New("empty filter")
)

// UserFilter is an equality filter over user fields. Empty fields are ignored.
type UserFilter struct {
	ID    string
	Name  string
	Email string
}

// IsEmpty reports whether the filter would match every user.
func (f UserFilter) IsEmpty() bool {
	return f.ID == "" && f.Name == "" && f.Email == ""
}

// Matches reports whether u satisfies every non-empty field of f.
func (f UserFilter) Matches(u *entity.User) bool {
	if f.ID != "" && u.ID != f.ID {
		return false
	}
	if f.Name != "" && u.Name != f.Name {
		return false
	}
	if f.Email != "" && u.Email != f.Email {
		return false
	}
	return true
}

// UserUpdate lists the fields to set; nil fields are left untouched.
type UserUpdate struct {
	Password *string
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	FindOne(ctx context.Context, f UserFilter) (*entity.User, error)
	Count(ctx context.Context, f UserFilter) (int64, error)
	Create(ctx context.Context, u *entity.User) error
	// UpdateOne never inserts; matched is false when no user satisfied f.
	UpdateOne(ctx context.Context, f UserFilter, upd UserUpdate) (matched bool, err error)
}
