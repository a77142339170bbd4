package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned on a failed sign-in attempt. The
// message is deliberately the same for unknown accounts and wrong
// passwords.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

// UserStore is the persistence surface AuthService depends on
type UserStore interface {
	Create(email, fullName, role, passwordHash string) (*models.UserProfile, error)
	GetByEmail(email string) (*models.UserProfile, error)
	GetByID(id uuid.UUID) (*models.UserProfile, error)
}

// AuthService handles account creation and sign-in
type AuthService struct {
	users UserStore
	jwt   *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwtService *jwt.Service) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwtService,
	}
}

// SignUp creates an account with a bcrypt password hash. Self-service
// registration is limited to buyer and seller roles.
func (s *AuthService) SignUp(email, fullName, password, role string) (*models.UserProfile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, models.ErrInvalidInput("email is required")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, models.ErrInvalidInput("full name is required")
	}
	if len(password) < 8 {
		return nil, models.ErrInvalidInput("password must be at least 8 characters")
	}
	if role == "" {
		role = models.RoleBuyer
	}
	if role != models.RoleBuyer && role != models.RoleSeller {
		return nil, models.ErrInvalidInput("invalid role: " + role)
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrInvalidInput("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(email, fullName, role, string(hash))
}

// SignIn verifies credentials and issues an access token
func (s *AuthService) SignIn(email, password string) (*models.UserProfile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
