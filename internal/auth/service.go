package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/stacks/internal/config"
	"github.com/mrlokans/stacks/internal/database/users"
	"github.com/mrlokans/stacks/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid student id or password")
	ErrStudentIDRequired  = errors.New("student id is required")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateUser(studentID, passwordHash string) (*entities.User, error)
	SetPassword(studentID, passwordHash string) error
	GetUserByID(id uint) (*entities.User, error)
	GetUserByStudentID(studentID string) (*entities.User, error)
}

// Service handles authentication and account provisioning.
type Service struct {
	users  UserRepository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo UserRepository, cfg config.Auth) *Service {
	return &Service{
		users:  repo,
		config: cfg,
	}
}

// Authenticate validates credentials and returns the user. Unknown accounts
// and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(studentID, password string) (*entities.User, error) {
	user, err := s.users.GetUserByStudentID(studentID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.Password); err != nil {
		if !errors.Is(err, ErrInvalidPassword) {
			// Malformed hash in the database; still a failed login.
			log.Printf("Password check for user %d failed: %v", user.ID, err)
		}
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RegisterUser creates an account with a hashed password.
func (s *Service) RegisterUser(studentID, password string) (*entities.User, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, ErrStudentIDRequired
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	return s.users.CreateUser(studentID, hash)
}

// ResetPassword replaces the password of an existing account.
func (s *Service) ResetPassword(studentID, password string) error {
	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return err
	}
	return s.users.SetPassword(studentID, hash)
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.users.GetUserByID(id)
}
