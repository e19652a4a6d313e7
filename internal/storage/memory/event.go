package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agalitsyn/meetup-tasks/internal/model"
)

func (s *Store) CreateEvent(ctx context.Context, event *model.Event) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()

	s.events[event.ID] = event
	s.eventIDs = append(s.eventIDs, event.ID)
	return nil
}

func (s *Store) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) FetchEventByName(ctx context.Context, name string) (*model.Event, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.eventIDs {
		if s.events[id].Name == name {
			return s.events[id], nil
		}
	}
	return nil, model.ErrEventNotFound
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	events := make([]model.Event, 0, len(s.eventIDs))
	for _, id := range s.eventIDs {
		events = append(events, *s.events[id])
	}
	return events, nil
}

// DeleteEvent removes the event and cascades to every task referencing it,
// so a task can never point at a missing event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.events[id]; !ok {
		return model.ErrEventNotFound
	}

	delete(s.events, id)
	for i, v := range s.eventIDs {
		if v == id {
			s.eventIDs = append(s.eventIDs[:i], s.eventIDs[i+1:]...)
			break
		}
	}

	kept := s.taskIDs[:0]
	for _, taskID := range s.taskIDs {
		if s.tasks[taskID].EventID == id {
			delete(s.tasks, taskID)
			continue
		}
		kept = append(kept, taskID)
	}
	s.taskIDs = kept

	return nil
}
