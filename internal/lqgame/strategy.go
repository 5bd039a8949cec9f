package lqgame

import "gonum.org/v1/gonum/mat"

// Strategy is one player's time-indexed affine state-feedback law,
//
//	du_{i,k} = -Ps[k]*dx_k - Alphas[k]
//
// Open-loop solutions leave every gain at zero and carry all information in
// the feedforward terms; closed-loop solutions share the same shape.
type Strategy struct {
	Ps     []*mat.Dense
	Alphas []*mat.VecDense
}

// NewStrategy returns a zeroed strategy over the given horizon.
func NewStrategy(horizon, xDim, uDim int) Strategy {
	s := Strategy{
		Ps:     make([]*mat.Dense, horizon),
		Alphas: make([]*mat.VecDense, horizon),
	}
	for k := 0; k < horizon; k++ {
		s.Ps[k] = mat.NewDense(uDim, xDim, nil)
		s.Alphas[k] = mat.NewVecDense(uDim, nil)
	}
	return s
}

// Horizon returns the number of time steps the strategy covers.
func (s Strategy) Horizon() int { return len(s.Alphas) }

// Control evaluates the law at step k for the state perturbation dx.
func (s Strategy) Control(k int, dx mat.Vector) *mat.VecDense {
	uDim, _ := s.Ps[k].Dims()
	u := mat.NewVecDense(uDim, nil)
	u.MulVec(s.Ps[k], dx)
	u.AddVec(u, s.Alphas[k])
	u.ScaleVec(-1, u)
	return u
}
