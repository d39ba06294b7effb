package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/rituday/internal/domain/entity"
	"github.com/oksasatya/rituday/internal/domain/repository"
)

// UserRepository keeps users in insertion order. id and email are unique.
type UserRepository struct {
	mu    sync.RWMutex
	users []entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindOne(_ context.Context, f repository.UserFilter) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if f.Matches(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Count(_ context.Context, f repository.UserFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for i := range r.users {
		if f.Matches(&r.users[i]) {
			n++
		}
	}
	return n, nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == u.ID || r.users[i].Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *UserRepository) UpdateOne(_ context.Context, f repository.UserFilter, upd repository.UserUpdate) (bool, error) {
	if f.IsEmpty() {
		return false, repository.ErrEmptyFilter
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if f.Matches(&r.users[i]) {
			if upd.Password != nil {
				r.users[i].Password = *upd.Password
			}
			return true, nil
		}
	}
	return false, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
