package annotation

import (
	"fmt"

	"golang-lwcharts/pkg/lwc/types"
)

// Manager owns the annotation layers of one chart. Layers keep their creation order.
type Manager struct {
	layers map[string]*Layer
	order  []string
}

func NewManager() *Manager {
	return &Manager{layers: make(map[string]*Layer)}
}

// CreateLayer returns the layer called name, creating it when missing.
func (m *Manager) CreateLayer(name string) *Layer {
	if l, ok := m.layers[name]; ok {
		return l
	}
	l := NewLayer(name)
	m.layers[name] = l
	m.order = append(m.order, name)
	return l
}

// Layer returns the named layer, or nil.
func (m *Manager) Layer(name string) *Layer {
	return m.layers[name]
}

func (m *Manager) Layers() []*Layer {
	out := make([]*Layer, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.layers[name])
	}
	return out
}

func (m *Manager) RemoveLayer(name string) bool {
	if _, ok := m.layers[name]; !ok {
		return false
	}
	delete(m.layers, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// ClearAll empties every layer but keeps the layers themselves.
func (m *Manager) ClearAll() *Manager {
	for _, l := range m.layers {
		l.Clear()
	}
	return m
}

// Add appends a to layer, creating the layer on demand. An empty layer name means DefaultLayer.
func (m *Manager) Add(a Annotation, layer string) *Manager {
	if layer == "" {
		layer = DefaultLayer
	}
	m.CreateLayer(layer).Add(a)
	return m
}

func (m *Manager) HideLayer(name string) error {
	l, ok := m.layers[name]
	if !ok {
		return fmt.Errorf("annotation layer %q: %w", name, types.ErrNotFound)
	}
	l.Hide()
	return nil
}

func (m *Manager) ShowLayer(name string) error {
	l, ok := m.layers[name]
	if !ok {
		return fmt.Errorf("annotation layer %q: %w", name, types.ErrNotFound)
	}
	l.Show()
	return nil
}

// All returns the annotations of every layer in layer order.
func (m *Manager) All() []Annotation {
	out := []Annotation{}
	for _, l := range m.Layers() {
		out = append(out, l.Annotations...)
	}
	return out
}

// Visible returns the annotations of the visible layers in layer order.
func (m *Manager) Visible() []Annotation {
	out := []Annotation{}
	for _, l := range m.Layers() {
		if l.Visible {
			out = append(out, l.Annotations...)
		}
	}
	return out
}

func (m *Manager) Len() int {
	n := 0
	for _, l := range m.layers {
		n += l.Len()
	}
	return n
}

func (m *Manager) Validate() error {
	for _, l := range m.Layers() {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("annotation layer %q: %w", l.Name, err)
		}
	}
	return nil
}

// AsDict returns {"layers": {name: layer}}. Layer names are used verbatim as keys.
func (m *Manager) AsDict() map[string]any {
	layers := make(map[string]any, len(m.layers))
	for name, l := range m.layers {
		layers[name] = l.AsDict()
	}
	return map[string]any{"layers": layers}
}
