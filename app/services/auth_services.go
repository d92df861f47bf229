package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id uint) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// Tokens issues and decodes bearer tokens. *auth.TokenManager satisfies it.
type Tokens interface {
	Issue(userID uint, role string) (string, error)
	Verify(token string) auth.Identity
}

type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Phone     string `json:"phone"      validate:"max=50"`
	Address   string `json:"address"    validate:"required,max=255"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type AuthService struct {
	users  UserStore
	tokens Tokens
	events Publisher
}

func NewAuthService(users UserStore, tokens Tokens, events Publisher) *AuthService {
	return &AuthService{users: users, tokens: tokens, events: publisherOrNop(events)}
}

// Register creates a client account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Password:  hash,
		Role:      models.RoleClient,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// A concurrent registration can claim the email after the check.
		if errors.Is(err, repositories.ErrDuplicate) {
			return AuthResult{}, ErrDuplicateEmail
		}
		if taken, _ := s.users.EmailExists(ctx, in.Email); taken {
			return AuthResult{}, ErrDuplicateEmail
		}
		return AuthResult{}, err
	}

	s.events.Fire(ctx, EventUserRegistered, UserRegistered{User: *user.Sanitize()})
	return s.signIn(user)
}

// Login checks the credentials. An unknown email and a wrong password fail
// with the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.signIn(user)
}

// VerifyToken decodes token. Any failure yields (0, "").
func (s *AuthService) VerifyToken(token string) (uint, models.Role) {
	id := s.tokens.Verify(token)
	role, ok := models.ParseRole(id.Role)
	if !id.Authenticated() || !ok {
		return 0, ""
	}
	return id.UserID, role
}

// Profile returns the account of userID without its password hash.
func (s *AuthService) Profile(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	return *user.Sanitize(), nil
}

func (s *AuthService) signIn(user models.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Role.String())
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: *user.Sanitize()}, nil
}
