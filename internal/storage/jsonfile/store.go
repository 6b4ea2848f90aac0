package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"example.com/userdir/internal/domain"
	"example.com/userdir/internal/storage"
)

// Store keeps the directory in memory and rewrites the whole JSON document
// after every mutation. The document and the in-memory copy only differ
// while mu is held for writing.
type Store struct {
	mu    sync.RWMutex
	path  string
	users domain.Directory
}

// Open loads the document at path. A missing file is an empty directory;
// the file is created by the first mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	users, err := s.read()
	if err != nil {
		return nil, err
	}
	s.users = users
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory directory with the document's contents.
// On error the current directory is kept.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.read()
	if err != nil {
		return err
	}
	s.users = users
	return nil
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
	err := s.mutate(func(d domain.Directory) (domain.Directory, error) {
		if d.HasEmail(u.Email) {
			return nil, storage.ErrConflict
		}
		u.ID = d.NextID()
		return append(d, u), nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateAge(id int64, age float64) (domain.User, error) {
	var updated domain.User
	err := s.mutate(func(d domain.Directory) (domain.Directory, error) {
		i := d.IndexOf(id)
		if i < 0 {
			return nil, storage.ErrNotFound
		}
		d[i].Age = age
		updated = d[i]
		return d, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *Store) Delete(id int64) error {
	return s.mutate(func(d domain.Directory) (domain.Directory, error) {
		i := d.IndexOf(id)
		if i < 0 {
			return nil, storage.ErrNotFound
		}
		return d.Without(i), nil
	})
}

// mutate is the single entry point for writes. fn receives a private copy of
// the directory; its result is persisted and only then committed.
func (s *Store) mutate(fn func(domain.Directory) (domain.Directory, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.users.Clone())
	if err != nil {
		return err
	}
	if err := s.write(next); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrPersist, err)
	}
	s.users = next
	return nil
}

func (s *Store) read() (domain.Directory, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Directory{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Directory{}, nil
	}
	var users domain.Directory
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if users == nil {
		users = domain.Directory{}
	}
	return users, nil
}

// write replaces the document atomically: temp file in the same directory,
// fsync, rename.
func (s *Store) write(users domain.Directory) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
