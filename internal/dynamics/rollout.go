package dynamics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/lqgame"
)

// Rollout applies the strategies from x0:
//
//	du_{i,k} = -P_{i,k}*dx_k - alpha_{i,k}
//	dx_{k+1} = A_k*dx_k + sum_i B_{i,k}*du_{i,k}
//
// It returns the state trajectory (one entry per time step, x0 first) and
// each player's control trajectory (one entry per non-terminal step).
func Rollout(linearization []lqgame.LinearDynamics, strategies []lqgame.Strategy, x0 mat.Vector) ([]*mat.VecDense, [][]*mat.VecDense, error) {
	horizon := len(linearization) - 1
	if horizon < 0 {
		return nil, nil, lqgame.ShapeError{What: "linearization", Got: 0, Want: 1}
	}
	if len(linearization) > 0 && len(strategies) != len(linearization[0].Bs) {
		return nil, nil, lqgame.ShapeError{What: "strategies", Got: len(strategies), Want: len(linearization[0].Bs)}
	}
	for _, s := range strategies {
		if s.Horizon() != horizon {
			return nil, nil, lqgame.ShapeError{What: "strategy horizon", Got: s.Horizon(), Want: horizon}
		}
	}

	n := x0.Len()
	states := make([]*mat.VecDense, horizon+1)
	states[0] = mat.NewVecDense(n, nil)
	states[0].CopyVec(x0)

	controls := make([][]*mat.VecDense, len(strategies))
	for i := range controls {
		controls[i] = make([]*mat.VecDense, horizon)
	}

	tmp := mat.NewVecDense(n, nil)
	for k := 0; k < horizon; k++ {
		lin := linearization[k]

		next := mat.NewVecDense(n, nil)
		next.MulVec(lin.A, states[k])
		for i, s := range strategies {
			u := s.Control(k, states[k])
			controls[i][k] = u
			tmp.MulVec(lin.Bs[i], u)
			next.AddVec(next, tmp)
		}
		states[k+1] = next
	}

	return states, controls, nil
}
