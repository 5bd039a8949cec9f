package cost

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// OrientationFlat penalizes the deviation of the heading implied by two
// state dimensions from a nominal angle,
// 0.5 * Weight * (atan2(input[Dim2], input[Dim1]) - Nominal)^2.
// Undefined at the origin of the (Dim1, Dim2) plane; quadraticize about a
// nominal point away from it.
type OrientationFlat struct {
	Weight     float64
	Dim1, Dim2 int
	Nominal    float64
}

func (c OrientationFlat) Evaluate(input mat.Vector) float64 {
	diff := math.Atan2(input.AtVec(c.Dim2), input.AtVec(c.Dim1)) - c.Nominal
	return 0.5 * c.Weight * diff * diff
}

func (c OrientationFlat) Quadraticize(input mat.Vector, hess *mat.SymDense, grad *mat.VecDense) {
	x1 := input.AtVec(c.Dim1)
	x2 := input.AtVec(c.Dim2)
	w := c.Weight

	norm := math.Hypot(x1, x2)
	norm2 := norm * norm
	norm4 := norm2 * norm2
	theta := math.Atan2(x2, x1)

	addSym(hess, c.Dim1, c.Dim1,
		(x2*x2*w-x1*x2*w*(2*c.Nominal-2*theta))/norm4)
	addSym(hess, c.Dim1, c.Dim2,
		-(x1*x2*w-x1*x1*w*(c.Nominal-theta)+x2*x2*w*(c.Nominal-theta))/norm4)
	addSym(hess, c.Dim2, c.Dim2,
		(x1*x1*w+x1*x2*w*(2*c.Nominal-2*theta))/norm4)

	addVec(grad, c.Dim1, (x2*w*(c.Nominal-theta))/norm2)
	addVec(grad, c.Dim2, -(x1*w*(c.Nominal-theta))/norm2)
}
