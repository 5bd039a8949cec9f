package cost

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/lqgame"
)

func TestPlayerCostQuadraticize(t *testing.T) {
	dims := lqgame.Dims{NumPlayers: 2, XDim: 2, UDims: []int{1, 2}}
	pc := PlayerCost{
		StateCosts: []Cost{Quadratic{Weight: 1.0, Dim: 0, Nominal: 2.0}},
		ControlCosts: map[int][]Cost{
			0: {Quadratic{Weight: 0.5, Dim: -1}},
		},
		Regularization: 0.1,
	}

	x := mat.NewVecDense(2, []float64{1, 0})
	us := []mat.Vector{mat.NewVecDense(1, nil), mat.NewVecDense(2, nil)}
	quad := pc.Quadraticize(0, dims, x, us)

	if got := quad.State.Hess.At(0, 0); got != 1.0 {
		t.Errorf("state hess = %v, want 1", got)
	}
	if got := quad.State.Grad.AtVec(0); got != -1.0 {
		t.Errorf("state grad = %v, want -1", got)
	}

	own, ok := quad.Control[0]
	if !ok {
		t.Fatal("own control entry missing")
	}
	if got := own.Hess.At(0, 0); got != 0.6 {
		t.Errorf("own control hess = %v, want 0.6 (cost + regularization)", got)
	}
}

func TestPlayerCostRegularizesEmptyControl(t *testing.T) {
	dims := lqgame.Dims{NumPlayers: 1, XDim: 1, UDims: []int{2}}
	pc := PlayerCost{Regularization: 0.5}

	quad := pc.Quadraticize(0, dims, mat.NewVecDense(1, nil), []mat.Vector{mat.NewVecDense(2, nil)})

	own, ok := quad.Control[0]
	if !ok {
		t.Fatal("own control entry missing")
	}
	for d := 0; d < 2; d++ {
		if got := own.Hess.At(d, d); got != 0.5 {
			t.Errorf("hess[%d,%d] = %v, want 0.5", d, d, got)
		}
	}
}

func TestQuadraticizeHorizon(t *testing.T) {
	dims := lqgame.Dims{NumPlayers: 2, XDim: 2, UDims: []int{1, 1}}
	costs := []PlayerCost{
		{StateCosts: []Cost{Quadratic{Weight: 1, Dim: -1}}, Regularization: 1},
		{StateCosts: []Cost{Quadratic{Weight: 2, Dim: -1}}, Regularization: 1},
	}

	quad := QuadraticizeHorizon(dims, costs, 5, nil, nil)

	if len(quad) != 5 {
		t.Fatalf("len = %d, want 5", len(quad))
	}
	for k := range quad {
		if len(quad[k]) != 2 {
			t.Fatalf("players at step %d = %d, want 2", k, len(quad[k]))
		}
		for i := range quad[k] {
			if _, ok := quad[k][i].Control[i]; !ok {
				t.Errorf("own control entry missing for player %d at step %d", i, k)
			}
		}
	}
	if got := quad[0][1].State.Hess.At(0, 0); got != 2 {
		t.Errorf("player 1 state hess = %v, want 2", got)
	}
}

func TestPlayerCostEvaluate(t *testing.T) {
	pc := PlayerCost{
		StateCosts: []Cost{Quadratic{Weight: 2, Dim: 0}},
		ControlCosts: map[int][]Cost{
			1: {Quadratic{Weight: 4, Dim: 0}},
		},
	}

	x := mat.NewVecDense(1, []float64{3})
	us := []mat.Vector{mat.NewVecDense(1, nil), mat.NewVecDense(1, []float64{2})}

	// 0.5*2*9 + 0.5*4*4 = 9 + 8
	if got := pc.Evaluate(x, us); got != 17 {
		t.Errorf("Evaluate() = %v, want 17", got)
	}
}
