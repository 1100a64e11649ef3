// Package router assembles the HTTP routes and middleware chain.
package router

import (
	"context"
	"eventManager/internal/config"
	"eventManager/internal/http-server/handlers/auth/login"
	"eventManager/internal/http-server/handlers/auth/me"
	"eventManager/internal/http-server/handlers/auth/register"
	"eventManager/internal/http-server/handlers/event/createEvent"
	"eventManager/internal/http-server/handlers/event/deleteEvent"
	"eventManager/internal/http-server/handlers/event/getAllEvents"
	"eventManager/internal/http-server/handlers/event/getEventInfo"
	"eventManager/internal/http-server/handlers/event/updateEvent"
	"eventManager/internal/http-server/handlers/health"
	"eventManager/internal/http-server/middleware/mwauth"
	"eventManager/internal/http-server/middleware/mwlogger"
	"eventManager/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"log/slog"
	"net/http"
	"time"
)

// Storage is everything the routes need from persistence.
type Storage interface {
	createEvent.EventCreator
	getEventInfo.EventGetter
	getAllEvents.EventsLister
	updateEvent.EventUpdater
	deleteEvent.EventDeleter
	health.Pinger

	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type AuthService interface {
	login.Authenticator
	register.Registrar
}

type Deps struct {
	Storage  Storage
	Auth     AuthService
	Tokens   mwauth.TokenVerifier
	TokenTTL time.Duration
	CORS     config.CORS
}

func New(log *slog.Logger, deps Deps) http.Handler {
	guard := mwauth.New(log, deps.Tokens, deps.Storage)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", health.Welcome())
	router.Get("/health", health.New(log, deps.Storage))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", register.New(log, deps.Auth))
		r.Post("/login", login.New(log, deps.Auth, deps.TokenTTL))
		r.With(guard.Authenticated).Get("/me", me.New(log))
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", getAllEvents.New(log, deps.Storage))
		r.Get("/{id}", getEventInfo.New(log, deps.Storage))

		r.With(guard.Admin).Post("/", createEvent.New(log, deps.Storage))
		r.With(guard.Admin).Put("/{id}", updateEvent.New(log, deps.Storage))
		r.With(guard.Admin).Delete("/{id}", deleteEvent.New(log, deps.Storage))
	})

	return router
}
