package getAllEvents

import (
	"context"
	"errors"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/models"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsLister
type EventsLister interface {
	ListEvents(ctx context.Context, skip, limit int) ([]models.Event, error)
}

func New(log *slog.Logger, lister EventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		skip, limit, err := parsePage(r)
		if err != nil {
			log.Info("invalid pagination", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		events, err := lister.ListEvents(r.Context(), skip, limit)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))

			return
		}

		if events == nil {
			events = []models.Event{}
		}

		log.Info("events retrieved successfully",
			slog.Int("skip", skip),
			slog.Int("limit", limit),
			slog.Int("count", len(events)),
		)

		render.JSON(w, r, events)
	}
}

// parsePage reads skip and limit from the query string, applying defaults
// for absent values.
func parsePage(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()

	skip = 0
	if raw := q.Get("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return 0, 0, errors.New("skip must be a non-negative integer")
		}
	}

	limit = DefaultLimit
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("limit must be an integer between 0 and %d", MaxLimit)
		}
	}

	return skip, limit, nil
}
