package login

import (
	"context"
	"errors"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/services/auth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"time"
)

const TokenType = "bearer"

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Authenticator
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// New answers with a bearer token valid for ttl.
func New(log *slog.Logger, authenticator Authenticator, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Info("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		token, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid credentials"))

				return
			}

			log.Error("failed to login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to login"))

			return
		}

		render.JSON(w, r, Response{
			AccessToken: token,
			TokenType:   TokenType,
			ExpiresIn:   int64(ttl / time.Second),
		})
	}
}
