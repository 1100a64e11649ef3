package models

import "time"

type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduleValid reports whether the event does not end before it starts.
func (e *Event) ScheduleValid() bool {
	return !e.EndDate.Before(e.StartDate)
}

// EventInput holds the caller-supplied fields of a new event.
type EventInput struct {
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
}

// EventPatch is a partial update: nil fields are left untouched.
type EventPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    *string
}

func (p EventPatch) Empty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.StartDate == nil &&
		p.EndDate == nil &&
		p.Location == nil
}

// Apply copies the present fields of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		desc := *p.Description
		e.Description = &desc
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
}
