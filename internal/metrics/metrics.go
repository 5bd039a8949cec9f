// Package metrics evaluates solved game trajectories.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/cost"
)

// Metric observes a trajectory step by step and reduces it to one number.
// us is empty at the terminal step.
type Metric interface {
	Name() string
	Observe(x mat.Vector, us []mat.Vector, k int)
	Value() float64
	Reset()
}

// ControlEffort reports the mean absolute control across players and steps.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x mat.Vector, us []mat.Vector, k int) {
	for _, u := range us {
		for d := 0; d < u.Len(); d++ {
			c.sum += math.Abs(u.AtVec(d))
			c.samples++
		}
	}
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// TerminalError reports the norm of the last observed state.
type TerminalError struct {
	last float64
}

func NewTerminalError() *TerminalError { return &TerminalError{} }

func (t *TerminalError) Name() string { return "terminal_error" }

func (t *TerminalError) Observe(x mat.Vector, us []mat.Vector, k int) {
	t.last = mat.Norm(x, 2)
}

func (t *TerminalError) Value() float64 { return t.last }

func (t *TerminalError) Reset() { t.last = 0 }

// Stability reports the fraction of steps whose state stayed inside a
// per-dimension threshold.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x mat.Vector, us []mat.Vector, k int) {
	s.samples++
	for d := 0; d < x.Len(); d++ {
		if math.Abs(x.AtVec(d)) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// PlayerCostTotal accumulates one player's stage cost along the trajectory.
type PlayerCostTotal struct {
	name string
	cost cost.PlayerCost
	sum  float64
}

func NewPlayerCostTotal(name string, pc cost.PlayerCost) *PlayerCostTotal {
	return &PlayerCostTotal{name: name, cost: pc}
}

func (p *PlayerCostTotal) Name() string { return p.name }

func (p *PlayerCostTotal) Observe(x mat.Vector, us []mat.Vector, k int) {
	if len(us) == 0 {
		// Terminal step: only state costs apply.
		for _, c := range p.cost.StateCosts {
			p.sum += c.Evaluate(x)
		}
		return
	}
	p.sum += p.cost.Evaluate(x, us)
}

func (p *PlayerCostTotal) Value() float64 { return p.sum }

func (p *PlayerCostTotal) Reset() { p.sum = 0 }
