// Package memory holds an in-process UserRepository used by tests and
// database-less local runs. It enforces the same email uniqueness
// contract as the Postgres store.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dreyes/auth-service/internal/domain/entity"
	"github.com/dreyes/auth-service/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*entity.User
	byID    map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*entity.User),
		byID:    make(map[string]*entity.User),
	}
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := clone(u)
	r.byEmail[u.Email] = cp
	r.byID[u.ID] = cp
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := clone(u)
	r.byID[u.ID] = cp
	r.byEmail[u.Email] = cp
	return nil
}

func clone(u *entity.User) *entity.User {
	cp := *u
	cp.Phones = append([]entity.Phone(nil), u.Phones...)
	return &cp
}

var _ repository.UserRepository = (*UserRepository)(nil)
