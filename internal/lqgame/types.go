package lqgame

import "gonum.org/v1/gonum/mat"

// Dims describes a multi-player system: the joint state dimension and one
// control dimension per player. It is fixed for the lifetime of a solver.
type Dims struct {
	NumPlayers int
	XDim       int
	UDims      []int
}

func (d Dims) UDim(i int) int { return d.UDims[i] }

// TotalUDim returns the summed control dimension across players.
func (d Dims) TotalUDim() int {
	total := 0
	for _, u := range d.UDims {
		total += u
	}
	return total
}

// LinearDynamics is the linearization of the joint dynamics at one time step:
//
//	dx_{k+1} = A*dx_k + sum_i Bs[i]*du_{i,k}
//
// The additive drift is zero because these are perturbation dynamics.
type LinearDynamics struct {
	A  *mat.Dense
	Bs []*mat.Dense
}

// CostTerm is one second-order Taylor term: a Hessian and a gradient.
type CostTerm struct {
	Hess *mat.SymDense
	Grad *mat.VecDense
}

// NewCostTerm returns a zeroed term of the given dimension.
func NewCostTerm(dim int) CostTerm {
	return CostTerm{
		Hess: mat.NewSymDense(dim, nil),
		Grad: mat.NewVecDense(dim, nil),
	}
}

// QuadraticCostApproximation bundles one player's stage-cost expansion at a
// single time step. Control maps player index to that player's control term.
// An entry for the owning player must be present at every non-terminal step,
// and its Hessian must be positive definite; cross entries may exist but the
// open-loop solver reads only the diagonal one.
type QuadraticCostApproximation struct {
	State   CostTerm
	Control map[int]CostTerm
}

// NewQuadraticCostApproximation returns an approximation with a zeroed state
// term and an empty control map.
func NewQuadraticCostApproximation(xDim int) QuadraticCostApproximation {
	return QuadraticCostApproximation{
		State:   NewCostTerm(xDim),
		Control: make(map[int]CostTerm),
	}
}
