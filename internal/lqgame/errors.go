package lqgame

import "fmt"

// ShapeError reports an input whose dimensions disagree with the solver's
// construction parameters.
type ShapeError struct {
	What string
	Got  int
	Want int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("lqgame: bad shape for %s: got %d, want %d", e.What, e.Got, e.Want)
}

// NumericalError reports a failed factorization: a control Hessian that is
// not positive definite, or a singular coupling matrix. The outer iterative
// loop recognizes this kind and re-poses the subproblem with more damping.
type NumericalError struct {
	Step   int
	Player int // -1 when the failure is in the coupling matrix
	Matrix string
	Err    error
}

func (e NumericalError) Error() string {
	who := "coupling"
	if e.Player >= 0 {
		who = fmt.Sprintf("player %d", e.Player)
	}
	if e.Err == nil {
		return fmt.Sprintf("lqgame: step %d: %s matrix %s is not positive definite", e.Step, who, e.Matrix)
	}
	return fmt.Sprintf("lqgame: step %d: %s matrix %s: %v", e.Step, who, e.Matrix, e.Err)
}

func (e NumericalError) Unwrap() error { return e.Err }
