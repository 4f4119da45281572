package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avstrong/zenith/internal/booking"
	"github.com/avstrong/zenith/internal/logger"
)

func registerInput() *RegisterInput {
	return &RegisterInput{
		FirstName:       "Avery",
		LastName:        "Martin",
		Email:           "Avery@Example.com ",
		Phone:           "555-0100",
		Password:        "abc123",
		ConfirmPassword: "abc123",
		AgreeTerms:      true,
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	s := New(Config{L: logger.NewNop(), Delay: time.Hour})

	input := registerInput()
	input.ConfirmPassword = "abc321"

	start := time.Now()

	if _, err := s.Register(context.Background(), input); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	if time.Since(start) > time.Second {
		t.Fatal("mismatch must be rejected before the delay")
	}

	if s.Count() != 0 {
		t.Fatal("no account may be created")
	}
}

func TestRegister(t *testing.T) {
	s := New(Config{L: logger.NewNop()})

	account, err := s.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if account.Email != "avery@example.com" || account.ID == "" {
		t.Errorf("unexpected account %+v", account)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte("abc123")); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}

	if _, err := s.Register(context.Background(), registerInput()); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := New(Config{L: logger.NewNop()})

	input := registerInput()
	input.Phone = ""
	input.Email = "nope"

	_, err := s.Register(context.Background(), input)

	inputErr := booking.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("expected input error, got %v", err)
	}

	if len(inputErr.Fields()["phone"]) == 0 || len(inputErr.Fields()["email"]) == 0 {
		t.Errorf("unexpected fields %v", inputErr.Fields())
	}
}

func TestRegisterRequiresAgreeTerms(t *testing.T) {
	s := New(Config{L: logger.NewNop()})

	input := registerInput()
	input.AgreeTerms = false

	_, err := s.Register(context.Background(), input)

	inputErr := booking.IsInputError(err)
	if inputErr == nil {
		t.Fatalf("expected input error, got %v", err)
	}

	if got := inputErr.Fields()["agree_terms"]; len(got) != 1 || got[0] != "accept agree_terms" {
		t.Errorf("unexpected fields %v", inputErr.Fields())
	}

	if s.Count() != 0 {
		t.Errorf("account stored without agreeing to terms")
	}
}

func TestLoginAlwaysSucceeds(t *testing.T) {
	s := New(Config{L: logger.NewNop()})

	session, err := s.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "whatever"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if session.ID == "" || session.Email != "nobody@example.com" {
		t.Errorf("unexpected session %+v", session)
	}
}

func TestLoginCancelled(t *testing.T) {
	s := New(Config{L: logger.NewNop(), Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Login(ctx, &LoginInput{Email: "a@b.co", Password: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
