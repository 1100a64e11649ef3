// Package auth checks login credentials and registers new users.
package auth

import (
	"context"
	"errors"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"fmt"
	"log/slog"
	"strconv"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserStore
type UserStore interface {
	SaveUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PasswordHasher
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenIssuer
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

type Authenticator struct {
	log    *slog.Logger
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer

	// dummyHash is compared against when the email is unknown so that a
	// failed lookup costs as much as a wrong password.
	dummyHash string
}

func New(log *slog.Logger, users UserStore, hasher PasswordHasher, tokens TokenIssuer) (*Authenticator, error) {
	dummyHash, err := hasher.Hash("dummy password for unknown users")
	if err != nil {
		return nil, fmt.Errorf("services.auth.New: %w", err)
	}

	return &Authenticator{
		log:       log,
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}, nil
}

// Login returns a bearer token for the user with the given email and password.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	const op = "services.auth.Login"

	log := a.log.With(slog.String("op", op))

	user, err := a.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			_, _ = a.hasher.Verify(password, a.dummyHash)
			log.Info("login failed: unknown email")

			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		log.Error("stored password hash is unusable", slog.Int64("user_id", user.ID), sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		log.Info("login failed: wrong password", slog.Int64("user_id", user.ID))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := a.tokens.Issue(strconv.FormatInt(user.ID, 10))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))

	return token, nil
}

// Register hashes password and stores a new user with the given role.
func (a *Authenticator) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	const op = "services.auth.Register"

	log := a.log.With(slog.String("op", op))

	if !role.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, models.ErrUnknownRole, role)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.users.SaveUser(ctx, name, email, hash, role)
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			log.Info("registration rejected: email taken")

			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}
