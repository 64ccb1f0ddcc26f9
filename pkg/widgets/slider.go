package widgets

import (
	"math"

	"github.com/matzehuels/layoutkit/pkg/errors"
	"github.com/matzehuels/layoutkit/pkg/scene"
)

// Properties read and written by Slider.
const (
	PropFrom     = "from"
	PropTo       = "to"
	PropValue    = "value"
	PropStepSize = "stepSize"
	PropPosition = "position"
)

// Slider keeps a value within [from, to], snapped to stepSize steps from
// from, and publishes its relative position in [0, 1]. Changing from, to or
// stepSize re-normalizes the value. A stepSize of 0 disables snapping.
type Slider struct {
	item     *scene.Item
	updating bool
}

// NewSlider attaches slider behavior to it. Unset from and to default to 0
// and 1.
func NewSlider(it *scene.Item) (*Slider, error) {
	if !it.Has(PropTo) {
		it.SetProperty(PropTo, 1)
	}
	if it.Property(PropTo) < it.Property(PropFrom) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "slider range is inverted: from %v > to %v",
			it.Property(PropFrom), it.Property(PropTo))
	}
	if it.Property(PropStepSize) < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "slider step size cannot be negative")
	}

	s := &Slider{item: it}
	it.SetData(s)
	for _, p := range []string{PropValue, PropFrom, PropTo, PropStepSize} {
		it.Subscribe(p, s.normalize)
	}
	s.normalize()
	return s, nil
}

// Item returns the slider's scene item.
func (s *Slider) Item() *scene.Item { return s.item }

// Value returns the current value.
func (s *Slider) Value() float64 { return s.item.Property(PropValue) }

// SetValue requests a value; the stored value is clamped and snapped.
func (s *Slider) SetValue(v float64) {
	s.item.SetProperty(PropValue, v)
	s.normalize()
}

// Position returns the value's relative position in the range, 0 for an
// empty range.
func (s *Slider) Position() float64 { return s.item.Property(PropPosition) }

// Increase moves the value one step up, or by 1% of the range without
// a step size.
func (s *Slider) Increase() { s.SetValue(s.Value() + s.step()) }

// Decrease moves the value one step down.
func (s *Slider) Decrease() { s.SetValue(s.Value() - s.step()) }

func (s *Slider) step() float64 {
	if st := s.item.Property(PropStepSize); st > 0 {
		return st
	}
	return (s.item.Property(PropTo) - s.item.Property(PropFrom)) / 100
}

func (s *Slider) normalize() {
	if s.updating {
		return
	}
	s.updating = true
	defer func() { s.updating = false }()

	from, to := s.item.Property(PropFrom), s.item.Property(PropTo)
	v := s.item.Property(PropValue)
	if step := s.item.Property(PropStepSize); step > 0 {
		v = from + math.Round((v-from)/step)*step
	}
	v = min(max(v, from), to)
	s.item.SetProperty(PropValue, v)

	pos := 0.0
	if to > from {
		pos = (v - from) / (to - from)
	}
	s.item.SetProperty(PropPosition, pos)
}

func sliderFactory(it *scene.Item, _ *scene.Spec) error {
	_, err := NewSlider(it)
	return err
}

// SliderOf returns the slider attached to it, if any.
func SliderOf(it *scene.Item) (*Slider, bool) {
	s, ok := it.Data().(*Slider)
	return s, ok
}
