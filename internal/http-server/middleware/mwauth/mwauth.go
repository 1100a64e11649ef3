package mwauth

import (
	"context"
	"errors"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/lib/token"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	msgNotAuthenticated  = "not authenticated"
	msgTokenExpired      = "token expired"
	msgInvalidToken      = "could not validate credentials"
	msgAdminRequired     = "admin privileges required"
	msgInternalAuthError = "failed to authenticate request"
)

type ctxKey struct{}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenVerifier
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserProvider
type UserProvider interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type Guard struct {
	log    *slog.Logger
	tokens TokenVerifier
	users  UserProvider
}

func New(log *slog.Logger, tokens TokenVerifier, users UserProvider) *Guard {
	return &Guard{
		log:    log.With(slog.String("component", "middleware/auth")),
		tokens: tokens,
		users:  users,
	}
}

// Authenticated puts the token's user into the request context or answers 401.
func (g *Guard) Authenticated(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		user, ok := g.authenticate(w, r)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	}

	return http.HandlerFunc(fn)
}

// Admin is Authenticated plus a 403 for roles that cannot manage events.
func (g *Guard) Admin(next http.Handler) http.Handler {
	return g.Authenticated(RequireRole(g.log, models.Role.CanManageEvents)(next))
}

// RequireRole rejects with 403 any request whose context user fails allowed.
// It must run behind Authenticated.
func RequireRole(log *slog.Logger, allowed func(models.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("role check without authenticated user",
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				unauthorized(w, r, msgNotAuthenticated)

				return
			}

			if !allowed(user.Role) {
				log.Info("insufficient role",
					slog.Int64("user_id", user.ID),
					slog.String("role", string(user.Role)),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(msgAdminRequired))

				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func (g *Guard) authenticate(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	log := g.log.With(
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	raw, err := token.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		log.Debug("request without bearer token")
		unauthorized(w, r, msgNotAuthenticated)

		return nil, false
	}

	subject, err := g.tokens.Verify(raw)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			log.Info("expired token")
			unauthorized(w, r, msgTokenExpired)
		case errors.Is(err, token.ErrMissingToken):
			unauthorized(w, r, msgNotAuthenticated)
		default:
			log.Info("invalid token", sl.Err(err))
			unauthorized(w, r, msgInvalidToken)
		}

		return nil, false
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		log.Warn("token subject is not a user id", slog.String("subject", subject))
		unauthorized(w, r, msgInvalidToken)

		return nil, false
	}

	user, err := g.users.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// the user was removed after the token was issued
			log.Info("token subject no longer exists", slog.Int64("user_id", userID))
			unauthorized(w, r, msgInvalidToken)

			return nil, false
		}

		log.Error("failed to load user", slog.Int64("user_id", userID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(msgInternalAuthError))

		return nil, false
	}

	return user, true
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(msg))
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by Authenticated.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*models.User)

	return user, ok && user != nil
}
