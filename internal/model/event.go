package model

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrTaskNotFound  = errors.New("task not found")
)

// Event is a named, dated container that tasks belong to.
type Event struct {
	ID        string
	Name      string
	Date      time.Time
	CreatedAt time.Time
}

func NewEvent(name string, date time.Time) *Event {
	return &Event{
		Name: name,
		Date: date,
	}
}

type EventRepository interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id string) (*Event, error)
	FetchEventByName(ctx context.Context, name string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	// DeleteEvent cascades: every task referencing the event goes with it.
	DeleteEvent(ctx context.Context, id string) error
}
