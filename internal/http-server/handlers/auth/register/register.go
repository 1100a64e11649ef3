package register

import (
	"context"
	"errors"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/lib/password"
	"eventManager/internal/models"
	"eventManager/internal/services/auth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin attendee"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Registrar
type Registrar interface {
	Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error)
}

func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

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

		role, err := models.ParseRole(req.Role)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		user, err := registrar.Register(r.Context(), req.Name, req.Email, req.Password, role)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrDuplicateEmail):
				log.Info("email already registered")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("email already registered"))
			case errors.Is(err, password.ErrTooLong):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("field Password must be at most 72 characters"))
			default:
				log.Error("failed to register user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to register user"))
			}

			return
		}

		log.Info("user registered", slog.Int64("user_id", user.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, user)
	}
}
