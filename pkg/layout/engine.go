package layout

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/observability"
)

// Engine is the entry point for sizing and alignment. It holds no layout
// state of its own: everything a standing recomputation needs lives in the
// Subscription it installs on the container.
type Engine struct {
	logger  *log.Logger
	metrics TextMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTextMetrics sets the metrics used by TextBlockSize.
func WithTextMetrics(m TextMetrics) Option {
	return func(e *Engine) { e.metrics = m.withDefaults() }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: log.Default(), metrics: DefaultTextMetrics}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AutoSizeChildren sizes the container's children along the axis named by
// token ("h", "horizontal", "v" or "vertical") and keeps them sized as the
// container resizes.
//
// Children declaring 0 stretch, children declaring a value in (0, 1) take
// that ratio of the unclaimed space, and children declaring 1 or more keep
// their size. It reports whether a standing subscription was installed;
// false means every child is fixed and nothing was done.
func (e *Engine) AutoSizeChildren(c Container, token string) (bool, error) {
	axis, err := ParseAxis(token)
	if err != nil {
		return false, err
	}
	sub, err := e.AutoSize(c, axis)
	if err != nil {
		return false, err
	}
	return sub != nil, nil
}

// AutoSize is AutoSizeChildren with a parsed axis. It returns the installed
// subscription, or nil when no child needs dynamic sizing.
func (e *Engine) AutoSize(c Container, axis Axis) (*Subscription, error) {
	alloc, err := Classify(c, axis)
	observability.Layout().OnClassify(axis.Extent(), alloc.fixedCount(len(c.Children())), len(alloc.Elastic), len(alloc.Stretch), err)
	if err != nil {
		return nil, fmt.Errorf("classify children: %w", err)
	}
	if !alloc.Dynamic() {
		e.logger.Debug("no dynamic children", "axis", axis, "claimed", alloc.Claimed)
		return nil, nil
	}

	start := time.Now()
	p := Allocate(c, alloc)
	observability.Layout().OnAllocate(axis.Extent(), p.Available, p.Unclaimed, time.Since(start))
	e.logger.Debug("allocated children",
		"axis", axis,
		"claimed", alloc.Claimed,
		"elastic", len(alloc.Elastic),
		"stretch", len(alloc.Stretch),
		"unclaimed", p.Unclaimed)

	return Rebind(c, alloc, e.logger), nil
}

// AutoAlign applies a comma-separated list of directives in order, each fully
// before the next:
//
//   - hcenter, vcenter: bind every current child's center to the container's;
//     ignored on the stacking axis of a row or column
//   - hfill, vfill: copy the container's extent to every child, now and on resize
//   - stretch: split the container's stacking extent evenly, now and on resize
//
// An unknown directive fails the call before any directive is applied.
func (e *Engine) AutoAlign(c Container, alignment string) error {
	directives, err := ParseDirectives(alignment)
	if err != nil {
		return err
	}
	for _, d := range directives {
		var n int
		switch d {
		case HCenter, VCenter:
			axis := Horizontal
			if d == VCenter {
				axis = Vertical
			}
			if n = center(c, axis); n == 0 && stacks(c, axis) {
				e.logger.Debug("skipping centering on stacking axis", "orientation", c.Orientation(), "axis", axis)
			}
		case HFill:
			n = fill(c, Horizontal)
		case VFill:
			n = fill(c, Vertical)
		case Spread:
			var axis Axis
			axis, n = spread(c)
			e.logger.Debug("stretching children", "orientation", c.Orientation(), "axis", axis)
		}
		observability.Layout().OnAlign(string(d), n)
		e.logger.Debug("applied alignment", "directive", d, "children", n)
	}
	return nil
}

// EqualSizeChildren gives every child an equal share of the container's
// extent along the axis named by token. It runs once and is not kept up to
// date on resize.
func (e *Engine) EqualSizeChildren(c Container, token string) error {
	axis, err := ParseAxis(token)
	if err != nil {
		return err
	}
	avg := equalSize(c, axis)
	e.logger.Debug("equal-sized children", "axis", axis, "size", avg)
	return nil
}

// ContentWidth measures the width t needs for text. See the package-level
// ContentWidth.
func (e *Engine) ContentWidth(t TextObject, text string) float64 {
	return ContentWidth(t, text)
}

// ContentHeight measures the height t needs for text. See the package-level
// ContentHeight.
func (e *Engine) ContentHeight(t TextObject, text string) float64 {
	return ContentHeight(t, text)
}

// TextBlockSize estimates the size of a block of lines with the engine's
// text metrics.
func (e *Engine) TextBlockSize(lines []string) (width, height float64) {
	return TextBlockSize(lines, e.metrics)
}

// TextMetrics returns the metrics used by TextBlockSize.
func (e *Engine) TextMetrics() TextMetrics { return e.metrics }
