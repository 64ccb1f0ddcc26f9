package layout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/layoutkit/pkg/observability"
)

// maxFollowUps bounds the passes a single notification can chain when a
// pass itself changes the container's extent.
const maxFollowUps = 8

// Subscription keeps a container's children allocated as it resizes.
//
// It owns the allocation record captured at setup and re-runs Allocate with
// it on every extent change of the container; the record is never
// recomputed. A notification that arrives while a pass is running is folded
// into one follow-up pass that reads the then-current extent.
type Subscription struct {
	container Container
	alloc     Allocation
	logger    *log.Logger

	running bool
	pending bool
	passes  int
	last    Pass
}

// Rebind subscribes a to the container's extent notifications for a.Axis.
// There is no way to cancel it; it lives as long as the container keeps it.
func Rebind(c Container, a Allocation, logger *log.Logger) *Subscription {
	if logger == nil {
		logger = log.Default()
	}
	s := &Subscription{container: c, alloc: a, logger: logger}
	c.Subscribe(a.Axis.Extent(), s.trigger)
	observability.Layout().OnRebind(a.Axis.Extent(), len(c.Children()))
	return s
}

// Allocation returns the record captured at setup.
func (s *Subscription) Allocation() Allocation { return s.alloc }

// Passes returns how many allocation passes the subscription has run.
func (s *Subscription) Passes() int { return s.passes }

// Last returns the summary of the most recent pass.
func (s *Subscription) Last() Pass { return s.last }

func (s *Subscription) trigger() {
	if s.running {
		s.pending = true
		return
	}
	s.running = true
	defer func() { s.running = false }()

	for i := 0; ; i++ {
		s.pending = false
		s.run()
		if !s.pending {
			return
		}
		if i >= maxFollowUps {
			s.logger.Warn("allocation keeps resizing its container; dropping follow-up pass",
				"axis", s.alloc.Axis, "passes", s.passes)
			s.pending = false
			return
		}
	}
}

func (s *Subscription) run() {
	start := time.Now()
	s.last = Allocate(s.container, s.alloc)
	s.passes++
	observability.Layout().OnAllocate(s.alloc.Axis.Extent(), s.last.Available, s.last.Unclaimed, time.Since(start))
	s.logger.Debug("reallocated children",
		"axis", s.alloc.Axis,
		"unclaimed", s.last.Unclaimed,
		"remaining", s.last.Remaining,
		"saturated", s.last.Saturated)
}
