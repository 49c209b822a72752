package courier

import (
	"slices"
	"strings"
	"sync"

	"storekit-backend/internal/domain"
	"storekit-backend/pkg/apperror"
)

// Manager is the registry of courier adapters keyed by provider name.
type Manager struct {
	providers map[string]domain.CourierProvider
	mu        sync.RWMutex
}

func NewManager(providers ...domain.CourierProvider) *Manager {
	m := &Manager{providers: make(map[string]domain.CourierProvider)}
	for _, p := range providers {
		m.Register(p)
	}
	return m
}

func (m *Manager) Register(p domain.CourierProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.Name()] = p
}

func (m *Manager) Get(name string) (domain.CourierProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.providers[name]
	if !ok {
		return nil, apperror.ErrUnknownCourier(name)
	}
	return p, nil
}

// Providers returns the registered adapters ordered by name.
func (m *Manager) Providers() []domain.CourierProvider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.CourierProvider, 0, len(m.providers))
	for _, p := range m.providers {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.CourierProvider) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}
