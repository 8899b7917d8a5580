// Package users provides database operations for catalog accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetUserByStudentID("s12345")
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/stacks/internal/entities"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser stores a new account. passwordHash must already be hashed.
func (r *Repository) CreateUser(studentID, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		StudentID: studentID,
		Password:  passwordHash,
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// SetPassword replaces the stored hash of an existing account.
func (r *Repository) SetPassword(studentID, passwordHash string) error {
	result := r.db.Model(&entities.User{}).
		Where("student_id = ?", studentID).
		Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GetUserByStudentID retrieves a user by student id.
func (r *Repository) GetUserByStudentID(studentID string) (*entities.User, error) {
	return r.findOne("student_id = ?", studentID)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	return r.findOne("user_id = ?", id)
}

func (r *Repository) findOne(cond string, arg any) (*entities.User, error) {
	var user entities.User
	result := r.db.Where(cond, arg).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
