package chart

import (
	"fmt"
	"sync"

	"golang-lwcharts/pkg/lwc/options"
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

// Manager renders several charts together, optionally synchronizing their crosshair
// and visible range. Charts keep their registration order.
type Manager struct {
	mu     sync.RWMutex
	charts map[string]*Chart
	order  []string
	sync   *options.SyncOptions
}

func NewManager() *Manager {
	return &Manager{charts: make(map[string]*Chart), sync: options.NewSyncOptions()}
}

// Add registers c under id, or under c.ID when id is empty.
func (m *Manager) Add(c *Chart, id string) error {
	if c == nil {
		return types.RequiredError("chart")
	}
	if id == "" {
		id = c.ID
	}
	if id == "" {
		return types.RequiredError("chart id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.charts[id]; exists {
		return types.NewValidationError("chartId", id, "is already registered")
	}
	m.charts[id] = c
	m.order = append(m.order, id)
	return nil
}

func (m *Manager) Get(id string) (*Chart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.charts[id]
	return c, ok
}

func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.charts[id]; !ok {
		return false
	}
	delete(m.charts, id)
	for i, n := range m.order {
		if n == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *Manager) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.charts)
}

func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

func (m *Manager) SetSync(s *options.SyncOptions) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s == nil {
		s = options.NewSyncOptions()
	}
	m.sync = s
	return m
}

func (m *Manager) Sync() options.SyncOptions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.sync
}

// SyncCharts turns crosshair and time range synchronization on or off.
func (m *Manager) SyncCharts(enable bool) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	if enable {
		m.sync.EnableAll()
	} else {
		m.sync.DisableAll()
	}
	return m
}

// ToFrontendConfig validates every chart and returns
// {"charts": [...in registration order...], "syncConfig": {...}}.
func (m *Manager) ToFrontendConfig() (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	charts := make([]any, 0, len(m.order))
	for _, id := range m.order {
		c := m.charts[id]
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("chart %q: %w", id, err)
		}
		charts = append(charts, c.frontendObject(id))
	}
	return map[string]any{
		"charts":     charts,
		"syncConfig": serialize.ToMap(m.sync),
	}, nil
}

func (m *Manager) ToJSON() ([]byte, error) {
	cfg, err := m.ToFrontendConfig()
	if err != nil {
		return nil, err
	}
	return serialize.ToJSON(cfg)
}
