package market

import (
	"sync"

	"github.com/gridmarket/go-compute-market/models"
)

// TaskFilter narrows List results; empty fields match everything.
type TaskFilter struct {
	ProviderId string
	ConsumerId string
	Status     string
}

// TaskStore holds task records. UpdateIfStatus is the conditional write the
// lifecycle controller relies on for its at-most-once settlement guarantee:
// the write only lands if the stored task still has the expected status.
type TaskStore interface {
	Get(id string) (*models.Task, error)
	List(filter TaskFilter) ([]*models.Task, error)
	Create(task *models.Task) error
	UpdateIfStatus(task *models.Task, expectedStatus string) error
}

type MemoryTaskStore struct {
	lk    sync.RWMutex
	tasks map[string]*models.Task
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		tasks: make(map[string]*models.Task),
	}
}

func (m *MemoryTaskStore) Get(id string) (*models.Task, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cloned := *task
	return &cloned, nil
}

func (m *MemoryTaskStore) List(filter TaskFilter) ([]*models.Task, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	var result []*models.Task
	for _, task := range m.tasks {
		if filter.ProviderId != "" && task.ProviderId != filter.ProviderId {
			continue
		}
		if filter.ConsumerId != "" && task.ConsumerId != filter.ConsumerId {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		cloned := *task
		result = append(result, &cloned)
	}
	return result, nil
}

func (m *MemoryTaskStore) Create(task *models.Task) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	cloned := *task
	m.tasks[task.Id] = &cloned
	return nil
}

func (m *MemoryTaskStore) UpdateIfStatus(task *models.Task, expectedStatus string) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	current, ok := m.tasks[task.Id]
	if !ok {
		return ErrTaskNotFound
	}
	if current.Status != expectedStatus {
		return ErrTaskTerminal
	}
	cloned := *task
	m.tasks[task.Id] = &cloned
	return nil
}
