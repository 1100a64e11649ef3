package health

import (
	"context"
	"eventManager/internal/lib/logger/sl"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	pingTimeout = 2 * time.Second
)

type Response struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Pinger
type Pinger interface {
	Ping(ctx context.Context) error
}

// New reports whether the database answers a ping.
func New(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Error("database ping failed", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, Response{Status: StatusUnhealthy})

			return
		}

		render.JSON(w, r, Response{Status: StatusHealthy})
	}
}

func Welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, WelcomeResponse{Message: "Welcome to Event Management API"})
	}
}
