package experiment

import (
	"fmt"
	"sort"

	"github.com/MikFerrari/ilqgames/internal/cost"
	"github.com/MikFerrari/ilqgames/internal/dynamics"
	"github.com/MikFerrari/ilqgames/internal/metrics"
)

type Registry struct {
	games map[string]func(dt float64) (*Game, error)
}

func NewRegistry() *Registry {
	r := &Registry{games: make(map[string]func(dt float64) (*Game, error))}

	r.games["regulation"] = newRegulationGame
	r.games["pursuit"] = newPursuitGame
	r.games["merge"] = newMergeGame

	return r
}

func (r *Registry) GetGame(name string, dt float64) (*Game, error) {
	fn, ok := r.games[name]
	if !ok {
		return nil, fmt.Errorf("unknown game: %s", name)
	}
	return fn(dt)
}

func (r *Registry) ListGames() []string {
	names := make([]string, 0, len(r.games))
	for name := range r.games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(game *Game) []metrics.Metric {
	ms := []metrics.Metric{
		metrics.NewControlEffort(),
		metrics.NewTerminalError(),
		metrics.NewStability(10.0),
	}
	for i, pc := range game.Costs {
		ms = append(ms, metrics.NewPlayerCostTotal(fmt.Sprintf("cost_p%d", i), pc))
	}
	return ms
}

// newRegulationGame is a single-player sanity game: a 1D double integrator
// regulating to the origin. Open-loop Nash with one player reduces to LQR.
func newRegulationGame(dt float64) (*Game, error) {
	sys := dynamics.DoubleIntegrator1D(dt)
	costs := []cost.PlayerCost{
		{
			StateCosts: []cost.Cost{
				cost.Quadratic{Weight: 1.0, Dim: -1},
			},
			ControlCosts: map[int][]cost.Cost{
				0: {cost.Quadratic{Weight: 0.1, Dim: -1}},
			},
		},
	}
	return &Game{System: sys, Costs: costs, X0: []float64{1, 0}}, nil
}

// newPursuitGame is a planar pursuit: the pursuer closes the gap to the
// evader, the evader runs for a corner while both pay for effort. State
// layout: pursuer (x, y, vx, vy) then evader (x, y, vx, vy).
func newPursuitGame(dt float64) (*Game, error) {
	sys, err := dynamics.Concatenate(
		dynamics.DoubleIntegrator2D(dt),
		dynamics.DoubleIntegrator2D(dt),
	)
	if err != nil {
		return nil, err
	}

	pursuer := cost.PlayerCost{
		StateCosts: []cost.Cost{
			cost.RelativeQuadratic{Weight: 5.0, Dim1: 0, Dim2: 4},
			cost.RelativeQuadratic{Weight: 5.0, Dim1: 1, Dim2: 5},
			cost.Quadratic{Weight: 0.5, Dim: 2},
			cost.Quadratic{Weight: 0.5, Dim: 3},
		},
		ControlCosts: map[int][]cost.Cost{
			0: {cost.Quadratic{Weight: 1.0, Dim: -1}},
		},
	}
	evader := cost.PlayerCost{
		StateCosts: []cost.Cost{
			cost.Quadratic{Weight: 1.0, Dim: 4, Nominal: 5.0},
			cost.Quadratic{Weight: 1.0, Dim: 5, Nominal: 5.0},
			cost.Quadratic{Weight: 0.5, Dim: 6},
			cost.Quadratic{Weight: 0.5, Dim: 7},
		},
		ControlCosts: map[int][]cost.Cost{
			1: {cost.Quadratic{Weight: 1.0, Dim: -1}},
		},
	}

	x0 := []float64{0, 0, 0, 0, 2, 2, 0, 0}
	return &Game{System: sys, Costs: []cost.PlayerCost{pursuer, evader}, X0: x0}, nil
}

// newMergeGame is a longitudinal merge: the leader tracks the lane origin,
// the follower keeps a nominal gap behind the leader. State layout:
// leader (pos, vel) then follower (pos, vel).
func newMergeGame(dt float64) (*Game, error) {
	sys, err := dynamics.Concatenate(
		dynamics.DoubleIntegrator1D(dt),
		dynamics.DoubleIntegrator1D(dt),
	)
	if err != nil {
		return nil, err
	}

	leader := cost.PlayerCost{
		StateCosts: []cost.Cost{
			cost.Quadratic{Weight: 1.0, Dim: 0},
			cost.Quadratic{Weight: 0.5, Dim: 1},
		},
		ControlCosts: map[int][]cost.Cost{
			0: {cost.Quadratic{Weight: 0.5, Dim: -1}},
		},
	}
	follower := cost.PlayerCost{
		StateCosts: []cost.Cost{
			cost.RelativeQuadratic{Weight: 2.0, Dim1: 0, Dim2: 2, Nominal: 2.0},
			cost.Quadratic{Weight: 0.5, Dim: 3},
		},
		ControlCosts: map[int][]cost.Cost{
			1: {cost.Quadratic{Weight: 0.5, Dim: -1}},
		},
	}

	x0 := []float64{0, 1, -1, 1}
	return &Game{System: sys, Costs: []cost.PlayerCost{leader, follower}, X0: x0}, nil
}
