// Package account holds the mocked sign-up and sign-in flows. Nothing here
// authenticates anyone: login always succeeds and accounts live in memory.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
	"github.com/avstrong/zenith/internal/simulate"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("an account with this email already exists")
)

type RegisterInput struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
	AgreeTerms      bool   `json:"agree_terms" validate:"required"`
}

type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	RememberMe bool      `json:"remember_me"`
	CreatedAt  time.Time `json:"created_at"`
}

type Config struct {
	L     *logger.Logger
	Delay time.Duration
}

type Service struct {
	l        *logger.Logger
	delay    time.Duration
	validate *validator.Validate

	mu       sync.Mutex
	accounts map[string]*Account
}

func New(conf Config) *Service {
	//nolint:exhaustruct
	return &Service{
		l:        conf.L,
		delay:    conf.Delay,
		validate: booking.NewValidator(),
		accounts: make(map[string]*Account),
	}
}

// Register creates an account. A password confirmation mismatch is rejected
// before anything else, including the simulated round trip.
func (s *Service) Register(ctx context.Context, input *RegisterInput) (*Account, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if err := s.validate.Struct(input); err != nil {
		return nil, booking.ToInputError(err)
	}

	if err := simulate.Remote(ctx, s.delay); err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[input.Email]; exists {
		return nil, ErrEmailTaken
	}

	account := &Account{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts[account.Email] = account

	s.l.With(zap.String("account_id", account.ID), zap.String("email", account.Email)).
		LogInfo("Account created for %s %s", account.FirstName, account.LastName)

	out := *account

	return &out, nil
}

// Login always opens a session once the input is well formed.
func (s *Service) Login(ctx context.Context, input *LoginInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validate.Struct(input); err != nil {
		return nil, booking.ToInputError(err)
	}

	if err := simulate.Remote(ctx, s.delay); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	session := &Session{
		ID:         uuid.NewString(),
		Email:      input.Email,
		RememberMe: input.RememberMe,
		CreatedAt:  time.Now().UTC(),
	}

	s.l.With(zap.String("session_id", session.ID)).LogInfo("Session opened for %s", session.Email)

	return session, nil
}

func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.accounts)
}
