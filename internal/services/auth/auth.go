// Package auth содержит бизнес-логику регистрации и входа пользователей.
//
// Сервис работает с абстрактным хранилищем UserRepository, поэтому один и тот же
// код обслуживает SQLite, PostgreSQL и Redis.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/mayukh-auth/internal/lib/password"
	"github.com/magabrotheeeer/mayukh-auth/internal/lib/sl"
	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage"
)

var (
	// ErrUserExists — email уже занят.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials — пользователь не найден или пароль не совпал.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRole — пароль верный, но роль не совпадает с сохранённой.
	ErrInvalidRole = errors.New("invalid role")
	// ErrPasswordTooLong — пароль не помещается в bcrypt.
	ErrPasswordTooLong = errors.New("password too long")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его с назначенными ID и CreatedAt.
	// Дубликат email возвращает storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// EventPublisher отправляет событие о регистрации во внешний брокер.
type EventPublisher interface {
	PublishSignup(ctx context.Context, event models.SignupEvent) error
}

// Service отвечает за регистрацию и вход.
type Service struct {
	users     UserRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewService создаёт Service. publisher может быть nil — тогда события не публикуются.
func NewService(users UserRepository, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// Signup хэширует пароль и создаёт пользователя.
func (s *Service) Signup(ctx context.Context, email, rawPassword, role string) (*models.User, error) {
	const op = "services.auth.Signup"

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishSignup(ctx, models.NewSignupEvent(user)); err != nil {
			s.log.Warn("failed to publish signup event",
				sl.Op(op),
				slog.String("user_id", user.ID),
				sl.Err(err),
			)
		}
	}
	return user, nil
}

// Login проверяет email, пароль и роль.
//
// Отсутствующий пользователь и неверный пароль неразличимы для вызывающего
// (ErrInvalidCredentials); несовпадение роли сообщается отдельно (ErrInvalidRole).
func (s *Service) Login(ctx context.Context, email, rawPassword, role string) (*models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if user.Role != role {
		return nil, ErrInvalidRole
	}
	return user, nil
}
