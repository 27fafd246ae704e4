package services

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/repositories"
	"github.com/shashiranjanraj/bhandar/pkg/auth"
	"github.com/shashiranjanraj/bhandar/pkg/validate"
)

// RegisterInput is the signup payload.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"nullable,max=100"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers accounts and issues JWTs.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account with a hashed password.
func (s *AuthService) Register(in RegisterInput) (models.User, map[string]string, error) {
	if errs := validate.Struct(&in); validate.HasErrors(errs) {
		return models.User{}, errs, nil
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  hashed,
		Role:      "user",
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, nil, fmt.Errorf("auth: create user: %w", err)
	}
	return user, nil, nil
}

// Login checks credentials and returns a signed token plus the user.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (string, models.User, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: invalid credentials")
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return "", models.User{}, fmt.Errorf("auth: invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("auth: sign token: %w", err)
	}
	return token, user, nil
}
