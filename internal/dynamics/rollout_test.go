package dynamics

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/lqgame"
)

func TestRollout(t *testing.T) {
	sys := SingleIntegrator1D(1.0)
	lin := sys.Linearization(3)

	s := lqgame.NewStrategy(2, 1, 1)
	s.Alphas[0].SetVec(0, 0.5)
	s.Alphas[1].SetVec(0, -0.25)

	states, controls, err := Rollout(lin, []lqgame.Strategy{s}, mat.NewVecDense(1, []float64{1}))
	if err != nil {
		t.Fatal(err)
	}

	if len(states) != 3 || len(controls) != 1 || len(controls[0]) != 2 {
		t.Fatal("wrong trajectory lengths")
	}

	// x1 = 1 - 0.5, x2 = 0.5 + 0.25
	if got := states[1].AtVec(0); got != 0.5 {
		t.Errorf("states[1] = %v, want 0.5", got)
	}
	if got := states[2].AtVec(0); got != 0.75 {
		t.Errorf("states[2] = %v, want 0.75", got)
	}
	if got := controls[0][0].AtVec(0); got != -0.5 {
		t.Errorf("controls[0][0] = %v, want -0.5", got)
	}
}

func TestRolloutFeedback(t *testing.T) {
	sys := SingleIntegrator1D(1.0)
	lin := sys.Linearization(2)

	// Pure proportional feedback u = -x cancels the state in one step.
	s := lqgame.NewStrategy(1, 1, 1)
	s.Ps[0].Set(0, 0, 1)

	states, _, err := Rollout(lin, []lqgame.Strategy{s}, mat.NewVecDense(1, []float64{2}))
	if err != nil {
		t.Fatal(err)
	}
	if got := states[1].AtVec(0); got != 0 {
		t.Errorf("states[1] = %v, want 0", got)
	}
}

func TestRolloutShapeErrors(t *testing.T) {
	sys := SingleIntegrator1D(1.0)
	lin := sys.Linearization(3)

	short := lqgame.NewStrategy(1, 1, 1)
	_, _, err := Rollout(lin, []lqgame.Strategy{short}, mat.NewVecDense(1, nil))
	var shapeErr lqgame.ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want ShapeError, got %v", err)
	}

	_, _, err = Rollout(lin, nil, mat.NewVecDense(1, nil))
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want ShapeError for missing strategies, got %v", err)
	}
}
