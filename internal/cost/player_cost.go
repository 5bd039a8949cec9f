package cost

import (
	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/lqgame"
)

// PlayerCost is one player's stage cost: a sum of costs over the joint
// state plus, per player, a sum of costs over that player's control.
// Regularization is added to the diagonal of the player's own control
// Hessian so the quadratic subproblem stays positive definite even when no
// explicit control-effort cost is present.
type PlayerCost struct {
	StateCosts     []Cost
	ControlCosts   map[int][]Cost
	Regularization float64
}

// Evaluate sums the player's stage cost at a joint state and per-player
// controls.
func (pc PlayerCost) Evaluate(x mat.Vector, us []mat.Vector) float64 {
	total := 0.0
	for _, c := range pc.StateCosts {
		total += c.Evaluate(x)
	}
	for j, costs := range pc.ControlCosts {
		for _, c := range costs {
			total += c.Evaluate(us[j])
		}
	}
	return total
}

// Quadraticize expands the stage cost about (x, us) into the bundle the
// solver consumes. player is the owning player's index: its control entry
// is always emitted, regularized per Regularization.
func (pc PlayerCost) Quadraticize(player int, dims lqgame.Dims, x mat.Vector, us []mat.Vector) lqgame.QuadraticCostApproximation {
	quad := lqgame.NewQuadraticCostApproximation(dims.XDim)
	for _, c := range pc.StateCosts {
		c.Quadraticize(x, quad.State.Hess, quad.State.Grad)
	}

	for j, costs := range pc.ControlCosts {
		term := lqgame.NewCostTerm(dims.UDim(j))
		for _, c := range costs {
			c.Quadraticize(us[j], term.Hess, term.Grad)
		}
		quad.Control[j] = term
	}

	own, ok := quad.Control[player]
	if !ok {
		own = lqgame.NewCostTerm(dims.UDim(player))
		quad.Control[player] = own
	}
	for d := 0; d < dims.UDim(player); d++ {
		own.Hess.SetSym(d, d, own.Hess.At(d, d)+pc.Regularization)
	}

	return quad
}

// QuadraticizeHorizon expands every player's cost about a fixed nominal
// point over numTimeSteps steps. A nil x or us expands about the origin.
// The result is indexed first by time, then by player.
func QuadraticizeHorizon(dims lqgame.Dims, costs []PlayerCost, numTimeSteps int, x mat.Vector, us []mat.Vector) [][]lqgame.QuadraticCostApproximation {
	if x == nil {
		x = mat.NewVecDense(dims.XDim, nil)
	}
	if us == nil {
		us = make([]mat.Vector, dims.NumPlayers)
		for i := range us {
			us[i] = mat.NewVecDense(dims.UDim(i), nil)
		}
	}

	quad := make([][]lqgame.QuadraticCostApproximation, numTimeSteps)
	for k := range quad {
		quad[k] = make([]lqgame.QuadraticCostApproximation, dims.NumPlayers)
		for i := range quad[k] {
			quad[k][i] = costs[i].Quadraticize(i, dims, x, us)
		}
	}
	return quad
}
