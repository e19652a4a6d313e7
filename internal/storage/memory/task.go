package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agalitsyn/meetup-tasks/internal/model"
)

func (s *Store) CreateTask(ctx context.Context, task *model.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.events[task.EventID]; !ok {
		return model.ErrEventNotFound
	}

	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now()

	s.tasks[task.ID] = task
	s.taskIDs = append(s.taskIDs, task.ID)
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, task *model.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return model.ErrTaskNotFound
	}
	s.tasks[task.ID] = task
	return nil
}

func (s *Store) RemoveTask(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return model.ErrTaskNotFound
	}
	delete(s.tasks, id)
	for i, v := range s.taskIDs {
		if v == id {
			s.taskIDs = append(s.taskIDs[:i], s.taskIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}
	return task, nil
}

func (s *Store) FilterTasks(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []model.Task
	for _, id := range s.taskIDs {
		task := s.tasks[id]

		if filter.EventID != "" && task.EventID != filter.EventID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.AssignedTo), needle) {
				continue
			}
		}

		tasks = append(tasks, *task)
	}
	return tasks, nil
}

// ToggleTaskDone flips the stored status between pending and done. A task
// displayed as overdue is stored pending, so toggling it marks it done.
func (s *Store) ToggleTaskDone(ctx context.Context, id string) (*model.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}

	if task.Status == model.TaskStatusDone {
		task.Status = model.TaskStatusPending
	} else {
		task.Status = model.TaskStatusDone
	}
	return task, nil
}

// BulkImportTasks attaches the imported records to an event in one shot:
// fresh identities, status pending, original row order preserved. Importing
// the same records twice creates duplicates, there is no dedup by content.
func (s *Store) BulkImportTasks(ctx context.Context, eventID string, imported []model.ImportedTask) ([]model.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return nil, model.ErrEventNotFound
	}

	now := time.Now()
	created := make([]model.Task, 0, len(imported))
	for _, rec := range imported {
		task := &model.Task{
			ID:          uuid.NewString(),
			EventID:     eventID,
			Title:       rec.Title,
			Description: rec.Description,
			AssignedTo:  rec.AssignedTo,
			Phone:       rec.Phone,
			Deadline:    rec.Deadline,
			Status:      model.TaskStatusPending,
			Priority:    rec.Priority,
			CreatedAt:   now,
		}
		s.tasks[task.ID] = task
		s.taskIDs = append(s.taskIDs, task.ID)
		created = append(created, *task)
	}
	return created, nil
}

func (s *Store) DashboardStats(ctx context.Context, now time.Time) (model.DashboardStats, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := make([]model.Task, 0, len(s.taskIDs))
	for _, id := range s.taskIDs {
		tasks = append(tasks, *s.tasks[id])
	}
	return model.ComputeDashboardStats(tasks, now), nil
}
