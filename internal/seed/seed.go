// Package seed fills an empty events table with sample events.
package seed

import (
	"context"
	"eventManager/internal/models"
	"fmt"
	"log/slog"
	"time"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventSeeder
type EventSeeder interface {
	// SeedEvents inserts events only when no event exists yet and returns
	// how many rows were written.
	SeedEvents(ctx context.Context, events []models.EventInput) (int, error)
}

// SampleEvents are scheduled relative to now.
func SampleEvents(now time.Time) []models.EventInput {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	at := func(days, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}
	text := func(s string) *string {
		return &s
	}

	return []models.EventInput{
		{
			Name:        "Tech Conference",
			Description: text("Annual technology conference featuring the latest innovations"),
			StartDate:   at(14, 9),
			EndDate:     at(14, 17),
			Location:    "San Francisco Convention Center",
		},
		{
			Name:        "Startup Meetup",
			Description: text("Networking event for startup founders and investors"),
			StartDate:   at(30, 18),
			EndDate:     at(30, 21),
			Location:    "Downtown Innovation Hub",
		},
		{
			Name:        "Design Workshop",
			Description: text("Hands-on workshop for UI/UX designers"),
			StartDate:   at(45, 10),
			EndDate:     at(45, 16),
			Location:    "Creative Design Studio",
		},
	}
}

func Run(ctx context.Context, log *slog.Logger, seeder EventSeeder, now time.Time) error {
	const op = "seed.Run"

	log = log.With(slog.String("op", op))

	n, err := seeder.SeedEvents(ctx, SampleEvents(now))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		log.Debug("events table not empty, sample data skipped")

		return nil
	}

	log.Info("sample events created", slog.Int("count", n))

	return nil
}
