package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/dykeinvestments/estate-backend/internal/models"
)

const userColumns = `id, email, full_name, phone, role, password_hash,
	       is_active, created_at, updated_at`

// UserRepository handles user profile database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new account with the given role and password hash
func (r *UserRepository) Create(email, fullName, role, passwordHash string) (*models.UserProfile, error) {
	if !models.ValidRole(role) {
		return nil, models.ErrInvalidInput("invalid role: " + role)
	}

	user := &models.UserProfile{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `
		INSERT INTO user_profiles (
			id, email, full_name, role, password_hash, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		user.ID,
		user.Email,
		user.FullName,
		user.Role,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves an active account by email. Returns (nil, nil) when
// absent.
func (r *UserRepository) GetByEmail(email string) (*models.UserProfile, error) {
	var user models.UserProfile

	query := `
		SELECT ` + userColumns + `
		FROM user_profiles
		WHERE email = $1 AND is_active = true
	`

	err := r.db.Get(&user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

// GetByID retrieves an account by id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(id uuid.UUID) (*models.UserProfile, error) {
	var user models.UserProfile

	query := `
		SELECT ` + userColumns + `
		FROM user_profiles
		WHERE id = $1
	`

	err := r.db.Get(&user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}
