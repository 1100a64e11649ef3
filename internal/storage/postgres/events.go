package postgres

import (
	"context"
	"database/sql"
	"errors"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"fmt"
)

const eventColumns = `id, name, description, start_date, end_date, location, created_at, updated_at`

func (s *Storage) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	const op = "storage.postgres.CreateEvent"

	query := `
		INSERT INTO events (name, description, start_date, end_date, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + eventColumns

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query,
		input.Name,
		nullString(input.Description),
		input.StartDate,
		input.EndDate,
		input.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) Event(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.postgres.Event"

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// ListEvents returns at most limit events after skipping skip, in insertion (id) order.
func (s *Storage) ListEvents(ctx context.Context, skip, limit int) ([]models.Event, error) {
	const op = "storage.postgres.ListEvents"

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`

	rows, err := s.DB.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}

		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

// UpdateEvent applies patch to the event under a row lock. An empty patch
// returns the event untouched.
func (s *Storage) UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	const op = "storage.postgres.UpdateEvent"

	if patch.Empty() {
		event, err := s.Event(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return event, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	selectQuery := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	event, err := scanEvent(tx.QueryRowContext(ctx, selectQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	patch.Apply(event)

	if !event.ScheduleValid() {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidSchedule)
	}

	updateQuery := `
		UPDATE events
		SET name = $2, description = $3, start_date = $4, end_date = $5, location = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + eventColumns

	updated, err := scanEvent(tx.QueryRowContext(ctx, updateQuery,
		id,
		event.Name,
		nullString(event.Description),
		event.StartDate,
		event.EndDate,
		event.Location,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update event: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteEvent"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return nil
}

// SeedEvents inserts events only when the table is empty and reports how
// many rows it inserted.
func (s *Storage) SeedEvents(ctx context.Context, events []models.EventInput) (int, error) {
	const op = "storage.postgres.SeedEvents"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	// serializes concurrent seeders without blocking readers
	if _, err = tx.ExecContext(ctx, `LOCK TABLE events IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return 0, fmt.Errorf("%s: failed to lock events: %w", op, err)
	}

	var exists bool
	if err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events)`).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%s: failed to count events: %w", op, err)
	}

	if exists {
		return 0, nil
	}

	insertQuery := `
		INSERT INTO events (name, description, start_date, end_date, location)
		VALUES ($1, $2, $3, $4, $5)`

	for _, e := range events {
		_, err = tx.ExecContext(ctx, insertQuery, e.Name, nullString(e.Description), e.StartDate, e.EndDate, e.Location)
		if err != nil {
			return 0, fmt.Errorf("%s: failed to insert event %q: %w", op, e.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return len(events), nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		event       models.Event
		description sql.NullString
	)

	err := row.Scan(
		&event.ID,
		&event.Name,
		&description,
		&event.StartDate,
		&event.EndDate,
		&event.Location,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		event.Description = &description.String
	}

	return &event, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
