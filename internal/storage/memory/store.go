package memory

import (
	"sync"

	"example.com/userdir/internal/domain"
	"example.com/userdir/internal/storage"
)

// Store keeps the directory in memory only.
type Store struct {
	mu    sync.RWMutex
	users domain.Directory
}

func New(seed ...domain.User) *Store {
	users := make(domain.Directory, 0, 16)
	users = append(users, seed...)
	return &Store{users: users}
}

func (s *Store) List() ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.Clone(), nil
}

func (s *Store) GetByID(id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.users.IndexOf(id)
	if i < 0 {
		return domain.User{}, storage.ErrNotFound
	}
	return s.users[i], nil
}

func (s *Store) Create(u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users.HasEmail(u.Email) {
		return domain.User{}, storage.ErrConflict
	}
	u.ID = s.users.NextID()
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) UpdateAge(id int64, age float64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.users.IndexOf(id)
	if i < 0 {
		return domain.User{}, storage.ErrNotFound
	}
	s.users[i].Age = age
	return s.users[i], nil
}

func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.users.IndexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.users = s.users.Without(i)
	return nil
}
