package usecase

import (
	"errors"
	"strings"

	"example.com/userdir/internal/domain"
	"example.com/userdir/internal/repository"
)

const (
	MsgMissingFields = "Data missing in request body"
	MsgMissingAge    = "Missing age property"
)

// ValidationError reports a request body that lacks required fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type CreateUserInput struct {
	Name  string  `json:"name"`
	Age   float64 `json:"age"`
	Email string  `json:"email"`
}

type UpdateUserInput struct {
	Age float64 `json:"age"`
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List() ([]domain.User, error) {
	return s.repo.List()
}

func (s *UserService) GetByID(id int64) (domain.User, error) {
	return s.repo.GetByID(id)
}

// Create requires name, age and email to be present and non-zero.
func (s *UserService) Create(in CreateUserInput) (domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || in.Age == 0 || strings.TrimSpace(in.Email) == "" {
		return domain.User{}, &ValidationError{Message: MsgMissingFields}
	}
	return s.repo.Create(domain.User{
		Name:  in.Name,
		Age:   in.Age,
		Email: in.Email,
	})
}

// Ensure reports storage.ErrNotFound for an unknown id. Update callers check
// existence before reading the body.
func (s *UserService) Ensure(id int64) error {
	_, err := s.repo.GetByID(id)
	return err
}

// UpdateAge changes only the age; name and email are not updatable.
func (s *UserService) UpdateAge(id int64, in UpdateUserInput) (domain.User, error) {
	if in.Age == 0 {
		return domain.User{}, &ValidationError{Message: MsgMissingAge}
	}
	return s.repo.UpdateAge(id, in.Age)
}

func (s *UserService) Delete(id int64) error {
	return s.repo.Delete(id)
}
