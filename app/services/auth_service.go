package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/servicehub/app/events"
	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/app/repositories"
	"github.com/shashiranjanraj/servicehub/pkg/auth"
	"github.com/shashiranjanraj/servicehub/pkg/event"
	"github.com/shashiranjanraj/servicehub/pkg/metrics"
	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

// UserStore is the persistence the auth flows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID, email, name string) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,between=10,15"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize trims fields and lower-cases the email. The password is kept
// as typed.
func (in *RegisterInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (in *LoginInput) Normalize() {
	in.Email = normalizeEmail(in.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService implements registration and login.
type AuthService struct {
	users  UserStore
	hasher auth.Hasher
	tokens TokenIssuer
	events *event.Bus
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserStore, hasher auth.Hasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, now: time.Now}
}

// WithEvents sets the bus user.registered is fired on.
func (s *AuthService) WithEvents(bus *event.Bus) *AuthService {
	s.events = bus
	return s
}

// Register creates a user and returns its id. Validation failures are
// returned as validate.Errors.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Normalize()
	if err := validate.Struct(&in).Err(); err != nil {
		return "", err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		return "", ErrDuplicateEmail
	case !errors.Is(err, repositories.ErrNotFound):
		metrics.Registrations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("auth: register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("auth: register: %w", err)
	}

	id, err := s.users.Create(ctx, &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		// Lost the race against a concurrent registration.
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		return "", ErrDuplicateEmail
	}
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("auth: register: %w", err)
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	s.events.Fire(ctx, events.UserRegisteredEvent, events.UserRegistered{UserID: id})
	return id, nil
}

// Login checks credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Normalize()
	if err := validate.Struct(&in).Err(); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		// Same bcrypt cost as the wrong-password path.
		s.hasher.Verify(s.dummy(), in.Password)
		metrics.Logins.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	}
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return "", fmt.Errorf("auth: login: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, in.Password) {
		metrics.Logins.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email, user.Name)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return "", fmt.Errorf("auth: login: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return token, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("servicehub-timing-equalizer")
	})
	return s.dummyHash
}
