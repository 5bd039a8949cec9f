package cost

import "gonum.org/v1/gonum/mat"

// Quadratic penalizes squared deviation from a nominal value,
// 0.5 * Weight * (input[Dim] - Nominal)^2, either in a single dimension or,
// with Dim < 0, summed over every dimension.
type Quadratic struct {
	Weight  float64
	Dim     int // negative applies the penalty to every dimension
	Nominal float64
}

func (c Quadratic) Evaluate(input mat.Vector) float64 {
	if c.Dim >= 0 {
		d := input.AtVec(c.Dim) - c.Nominal
		return 0.5 * c.Weight * d * d
	}
	total := 0.0
	for d := 0; d < input.Len(); d++ {
		diff := input.AtVec(d) - c.Nominal
		total += diff * diff
	}
	return 0.5 * c.Weight * total
}

func (c Quadratic) Quadraticize(input mat.Vector, hess *mat.SymDense, grad *mat.VecDense) {
	if c.Dim >= 0 {
		addSym(hess, c.Dim, c.Dim, c.Weight)
		addVec(grad, c.Dim, c.Weight*(input.AtVec(c.Dim)-c.Nominal))
		return
	}
	for d := 0; d < input.Len(); d++ {
		addSym(hess, d, d, c.Weight)
		addVec(grad, d, c.Weight*(input.AtVec(d)-c.Nominal))
	}
}

// RelativeQuadratic penalizes the gap between two dimensions of the input,
// 0.5 * Weight * (input[Dim1] - input[Dim2] - Nominal)^2. Used for
// inter-player spacing terms on a concatenated state.
type RelativeQuadratic struct {
	Weight     float64
	Dim1, Dim2 int
	Nominal    float64
}

func (c RelativeQuadratic) Evaluate(input mat.Vector) float64 {
	d := input.AtVec(c.Dim1) - input.AtVec(c.Dim2) - c.Nominal
	return 0.5 * c.Weight * d * d
}

func (c RelativeQuadratic) Quadraticize(input mat.Vector, hess *mat.SymDense, grad *mat.VecDense) {
	diff := input.AtVec(c.Dim1) - input.AtVec(c.Dim2) - c.Nominal
	addSym(hess, c.Dim1, c.Dim1, c.Weight)
	addSym(hess, c.Dim2, c.Dim2, c.Weight)
	addSym(hess, c.Dim1, c.Dim2, -c.Weight)
	addVec(grad, c.Dim1, c.Weight*diff)
	addVec(grad, c.Dim2, -c.Weight*diff)
}
