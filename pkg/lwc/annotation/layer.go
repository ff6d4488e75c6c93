package annotation

import (
	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

// Layer is a named group of annotations sharing visibility and opacity.
type Layer struct {
	Name        string       `json:"name" validate:"required"`
	Annotations []Annotation `json:"annotations" lwc:",keep"`
	Visible     bool         `json:"visible"`
	Opacity     float64      `json:"opacity" validate:"gte=0,lte=1"`
}

func NewLayer(name string) *Layer {
	return &Layer{Name: name, Annotations: []Annotation{}, Visible: true, Opacity: 1}
}

func (l *Layer) Add(a Annotation) *Layer {
	l.Annotations = append(l.Annotations, a)
	return l
}

// Remove deletes the annotation at index and reports whether it existed.
func (l *Layer) Remove(index int) bool {
	if index < 0 || index >= len(l.Annotations) {
		return false
	}
	l.Annotations = append(l.Annotations[:index], l.Annotations[index+1:]...)
	return true
}

func (l *Layer) Clear() *Layer {
	l.Annotations = []Annotation{}
	return l
}

func (l *Layer) Hide() *Layer {
	l.Visible = false
	return l
}

func (l *Layer) Show() *Layer {
	l.Visible = true
	return l
}

func (l *Layer) SetOpacity(opacity float64) error {
	if err := types.ValidateVar("opacity", opacity, "gte=0,lte=1"); err != nil {
		return err
	}
	l.Opacity = opacity
	return nil
}

func (l *Layer) Len() int { return len(l.Annotations) }

// FilterByTimeRange returns the annotations whose time falls in [start, end].
func (l *Layer) FilterByTimeRange(start, end any) ([]Annotation, error) {
	from, err := types.NormalizeTime(start)
	if err != nil {
		return nil, err
	}
	to, err := types.NormalizeTime(end)
	if err != nil {
		return nil, err
	}
	out := []Annotation{}
	for _, a := range l.Annotations {
		if int64(a.Time) >= from && int64(a.Time) <= to {
			out = append(out, a)
		}
	}
	return out, nil
}

// FilterByPriceRange returns the annotations whose price falls in [min, max].
func (l *Layer) FilterByPriceRange(min, max float64) []Annotation {
	out := []Annotation{}
	for _, a := range l.Annotations {
		if a.Price >= min && a.Price <= max {
			out = append(out, a)
		}
	}
	return out
}

func (l *Layer) Validate() error {
	if err := types.ValidateAt("layer", l); err != nil {
		return err
	}
	for _, a := range l.Annotations {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layer) AsDict() map[string]any {
	return serialize.StructFields(l)
}
