package cost

import "gonum.org/v1/gonum/mat"

// Cost is a scalar functional of one input vector (a state or one player's
// control). Quadraticize accumulates the functional's Hessian and gradient
// at the given input into hess and grad, which must be sized to the input.
type Cost interface {
	Evaluate(input mat.Vector) float64
	Quadraticize(input mat.Vector, hess *mat.SymDense, grad *mat.VecDense)
}

func addSym(h *mat.SymDense, i, j int, v float64) {
	h.SetSym(i, j, h.At(i, j)+v)
}

func addVec(g *mat.VecDense, i int, v float64) {
	g.SetVec(i, g.AtVec(i)+v)
}
