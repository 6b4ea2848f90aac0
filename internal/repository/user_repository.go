package repository

import "example.com/userdir/internal/domain"

// UserRepository owns the user directory. Implementations serialize
// mutations and return storage.ErrNotFound / storage.ErrConflict.
type UserRepository interface {
	List() ([]domain.User, error)
	GetByID(id int64) (domain.User, error)
	Create(user domain.User) (domain.User, error)
	UpdateAge(id int64, age float64) (domain.User, error)
	Delete(id int64) error
}
