// Package experiment assembles named games, solves them, and evaluates the
// resulting trajectories.
package experiment

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/cost"
	"github.com/MikFerrari/ilqgames/internal/dynamics"
	"github.com/MikFerrari/ilqgames/internal/lqgame"
	"github.com/MikFerrari/ilqgames/internal/metrics"
)

type Config struct {
	Game           string
	Horizon        int // time steps including the terminal one
	Dt             float64
	InitState      []float64 // overrides the game's default when non-empty
	Regularization float64   // overrides the game's default when positive
}

// Game bundles a joint system, one stage cost per player, and a default
// initial state perturbation.
type Game struct {
	System dynamics.System
	Costs  []cost.PlayerCost
	X0     []float64
}

type Result struct {
	States     []*mat.VecDense
	Controls   [][]*mat.VecDense // indexed by player, then step
	Strategies []lqgame.Strategy
	Metrics    map[string]float64
}

type Experiment struct {
	cfg     Config
	game    *Game
	solver  *lqgame.OpenLoopSolver
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(game *Game, ms []metrics.Metric) error {
	if e.cfg.Horizon < 2 {
		return fmt.Errorf("experiment: horizon must be at least 2, got %d", e.cfg.Horizon)
	}
	if e.cfg.Regularization > 0 {
		for i := range game.Costs {
			game.Costs[i].Regularization = e.cfg.Regularization
		}
	}
	e.game = game
	e.solver = lqgame.NewOpenLoopSolver(game.System.Dims(), e.cfg.Horizon)
	e.metrics = ms
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dims := e.game.System.Dims()

	x0 := e.game.X0
	if len(e.cfg.InitState) > 0 {
		x0 = e.cfg.InitState
	}
	if len(x0) != dims.XDim {
		return nil, lqgame.ShapeError{What: "initial state", Got: len(x0), Want: dims.XDim}
	}

	lin := e.game.System.Linearization(e.cfg.Horizon)
	quad := cost.QuadraticizeHorizon(dims, e.game.Costs, e.cfg.Horizon, nil, nil)

	strategies, err := e.solver.Solve(lin, quad, mat.NewVecDense(dims.XDim, x0))
	if err != nil {
		return nil, err
	}

	states, controls, err := dynamics.Rollout(lin, strategies, mat.NewVecDense(dims.XDim, x0))
	if err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	us := make([]mat.Vector, dims.NumPlayers)
	for k, x := range states {
		var step []mat.Vector
		if k < len(states)-1 {
			for i := range controls {
				us[i] = controls[i][k]
			}
			step = us
		}
		for _, m := range e.metrics {
			m.Observe(x, step, k)
		}
	}

	result := &Result{
		States:     states,
		Controls:   controls,
		Strategies: strategies,
		Metrics:    make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
