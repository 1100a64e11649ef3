package updateEvent

import (
	"context"
	"errors"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const msgInvalidSchedule = "end_date must not be before start_date"

// UpdateRequest is a partial update. Absent and null fields keep their
// stored values.
type UpdateRequest struct {
	Name        *string    `json:"name" validate:"omitnil,min=1"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Location    *string    `json:"location" validate:"omitnil,min=1"`
}

func (req UpdateRequest) patch() models.EventPatch {
	return models.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
	}
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
}

func New(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))

			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req UpdateRequest

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
			log.Info("rejected schedule", slog.Time("start_date", *req.StartDate), slog.Time("end_date", *req.EndDate))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(msgInvalidSchedule))

			return
		}

		event, err := updater.UpdateEvent(r.Context(), eventID, req.patch())
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrInvalidSchedule):
				log.Info("merged schedule rejected", sl.Err(err))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error(msgInvalidSchedule))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}

			return
		}

		log.Info("event updated")

		render.JSON(w, r, event)
	}
}
