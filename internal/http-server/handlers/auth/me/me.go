package me

import (
	"eventManager/internal/http-server/middleware/mwauth"
	"eventManager/internal/lib/api/response"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// New returns the user resolved by mwauth.Guard.Authenticated.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.me.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user, ok := mwauth.UserFromContext(r.Context())
		if !ok {
			log.Error("no authenticated user in context")
			w.Header().Set("WWW-Authenticate", "Bearer")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("not authenticated"))

			return
		}

		render.JSON(w, r, user)
	}
}
