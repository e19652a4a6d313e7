// Package memory is the session-scoped store: all state lives here for the
// lifetime of one run and is discarded on exit.
package memory

import (
	"sync"

	"github.com/agalitsyn/meetup-tasks/internal/model"
)

type Store struct {
	mtx sync.RWMutex

	events   map[string]*model.Event
	eventIDs []string

	tasks   map[string]*model.Task
	taskIDs []string
}

func NewStore() *Store {
	return &Store{
		events: make(map[string]*model.Event),
		tasks:  make(map[string]*model.Task),
	}
}
