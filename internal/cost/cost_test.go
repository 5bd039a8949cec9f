package cost

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const fdStep = 1e-5

func numericGrad(c Cost, x *mat.VecDense) []float64 {
	n := x.Len()
	grad := make([]float64, n)
	for d := 0; d < n; d++ {
		orig := x.AtVec(d)
		x.SetVec(d, orig+fdStep)
		up := c.Evaluate(x)
		x.SetVec(d, orig-fdStep)
		down := c.Evaluate(x)
		x.SetVec(d, orig)
		grad[d] = (up - down) / (2 * fdStep)
	}
	return grad
}

func numericHess(c Cost, x *mat.VecDense) [][]float64 {
	n := x.Len()
	hess := make([][]float64, n)
	for i := 0; i < n; i++ {
		hess[i] = make([]float64, n)
		orig := x.AtVec(i)
		x.SetVec(i, orig+fdStep)
		up := numericGrad(c, x)
		x.SetVec(i, orig-fdStep)
		down := numericGrad(c, x)
		x.SetVec(i, orig)
		for j := 0; j < n; j++ {
			hess[i][j] = (up[j] - down[j]) / (2 * fdStep)
		}
	}
	return hess
}

func checkQuadraticize(t *testing.T, c Cost, x *mat.VecDense) {
	t.Helper()
	n := x.Len()
	hess := mat.NewSymDense(n, nil)
	grad := mat.NewVecDense(n, nil)
	c.Quadraticize(x, hess, grad)

	wantGrad := numericGrad(c, x)
	for d := 0; d < n; d++ {
		if math.Abs(grad.AtVec(d)-wantGrad[d]) > 1e-6 {
			t.Errorf("grad[%d] = %v, finite difference %v", d, grad.AtVec(d), wantGrad[d])
		}
	}

	wantHess := numericHess(c, x)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(hess.At(i, j)-wantHess[i][j]) > 1e-4 {
				t.Errorf("hess[%d,%d] = %v, finite difference %v", i, j, hess.At(i, j), wantHess[i][j])
			}
		}
	}
}

func TestQuadraticSingleDim(t *testing.T) {
	c := Quadratic{Weight: 2.0, Dim: 1, Nominal: 0.5}
	x := mat.NewVecDense(3, []float64{1, -0.7, 2})

	want := 0.5 * 2.0 * (-0.7 - 0.5) * (-0.7 - 0.5)
	if got := c.Evaluate(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
	checkQuadraticize(t, c, x)
}

func TestQuadraticAllDims(t *testing.T) {
	c := Quadratic{Weight: 1.5, Dim: -1}
	x := mat.NewVecDense(2, []float64{3, -4})

	want := 0.5 * 1.5 * 25.0
	if got := c.Evaluate(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
	checkQuadraticize(t, c, x)
}

func TestRelativeQuadratic(t *testing.T) {
	c := RelativeQuadratic{Weight: 3.0, Dim1: 0, Dim2: 2, Nominal: 1.0}
	x := mat.NewVecDense(3, []float64{2, 9, -0.5})

	diff := 2 - (-0.5) - 1.0
	want := 0.5 * 3.0 * diff * diff
	if got := c.Evaluate(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
	checkQuadraticize(t, c, x)
}

func TestOrientationFlat(t *testing.T) {
	c := OrientationFlat{Weight: 2.0, Dim1: 0, Dim2: 1, Nominal: 0.3}
	x := mat.NewVecDense(2, []float64{1.2, 0.8})

	diff := math.Atan2(0.8, 1.2) - 0.3
	want := 0.5 * 2.0 * diff * diff
	if got := c.Evaluate(x); math.Abs(got-want) > 1e-12 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
	checkQuadraticize(t, c, x)
}

func TestQuadraticizeAccumulates(t *testing.T) {
	x := mat.NewVecDense(2, []float64{1, 2})
	hess := mat.NewSymDense(2, nil)
	grad := mat.NewVecDense(2, nil)

	Quadratic{Weight: 1.0, Dim: 0}.Quadraticize(x, hess, grad)
	Quadratic{Weight: 2.0, Dim: 0}.Quadraticize(x, hess, grad)

	if got := hess.At(0, 0); got != 3.0 {
		t.Errorf("hess[0,0] = %v, want 3", got)
	}
	if got := grad.AtVec(0); got != 3.0 {
		t.Errorf("grad[0] = %v, want 3", got)
	}
}
