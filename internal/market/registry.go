package market

import (
	"sync"

	"github.com/gridmarket/go-compute-market/constants"
	"github.com/gridmarket/go-compute-market/models"
)

// ResourceStore is the keyed store of advertised resources. Implementations
// must be safe for concurrent use within one process.
type ResourceStore interface {
	Get(id string) (*models.Resource, error)
	ListByProvider(providerId string) ([]*models.Resource, error)
	ListActive() ([]*models.Resource, error)
	List() ([]*models.Resource, error)
	Upsert(resource *models.Resource) error
	Remove(id string) error
}

// MemoryResourceStore keeps resources in a mutex-guarded map. Used by tests
// and as the default backend when no redis url is configured.
type MemoryResourceStore struct {
	lk        sync.RWMutex
	resources map[string]*models.Resource
}

func NewMemoryResourceStore() *MemoryResourceStore {
	return &MemoryResourceStore{
		resources: make(map[string]*models.Resource),
	}
}

func (m *MemoryResourceStore) Get(id string) (*models.Resource, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	resource, ok := m.resources[id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	cloned := *resource
	return &cloned, nil
}

func (m *MemoryResourceStore) ListByProvider(providerId string) ([]*models.Resource, error) {
	return m.filter(func(r *models.Resource) bool {
		return r.ProviderId == providerId
	})
}

func (m *MemoryResourceStore) ListActive() ([]*models.Resource, error) {
	return m.filter(func(r *models.Resource) bool {
		return r.Status == constants.ResourceStatusActive
	})
}

func (m *MemoryResourceStore) List() ([]*models.Resource, error) {
	return m.filter(func(r *models.Resource) bool {
		return true
	})
}

func (m *MemoryResourceStore) Upsert(resource *models.Resource) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	cloned := *resource
	m.resources[resource.Id] = &cloned
	return nil
}

func (m *MemoryResourceStore) Remove(id string) error {
	m.lk.Lock()
	defer m.lk.Unlock()

	if _, ok := m.resources[id]; !ok {
		return ErrResourceNotFound
	}
	delete(m.resources, id)
	return nil
}

func (m *MemoryResourceStore) filter(keep func(*models.Resource) bool) ([]*models.Resource, error) {
	m.lk.RLock()
	defer m.lk.RUnlock()

	var result []*models.Resource
	for _, resource := range m.resources {
		if keep(resource) {
			cloned := *resource
			result = append(result, &cloned)
		}
	}
	return result, nil
}
