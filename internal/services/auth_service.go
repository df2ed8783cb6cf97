package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"etalase/internal/config"
	"etalase/internal/models"
	"etalase/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingCredentials is returned when the username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooShort is returned when a minimum password length is configured
	// and the password does not reach it.
	ErrPasswordTooShort = errors.New("password is too short")
)

// AuthService handles registration and credential checks.
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      config.AuthConfig
	events   *Events
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg config.AuthConfig, events *Events) *AuthService {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		events:   events,
	}
}

// RegisterUser hashes the password and stores a new user. The first user ever
// stored is marked as admin.
//
// Counting and inserting are two separate statements, so concurrent first
// registrations may each observe an empty table and both become admin.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if s.cfg.MinPasswordLength > 0 && len(password) < s.cfg.MinPasswordLength {
		return nil, fmt.Errorf("%w: minimum length is %d", ErrPasswordTooShort, s.cfg.MinPasswordLength)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsAdmin:  count == 0,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.IsAdmin {
		log.Printf("User %s registered as the first user and promoted to admin", user.Username)
	}
	s.events.publish(EventUserRegistered, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})
	return user, nil
}

// Authenticate checks a username and password against the stored hash.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
