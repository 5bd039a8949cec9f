package dynamics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/MikFerrari/ilqgames/internal/lqgame"
)

// System is a discrete-time multi-player dynamical system that can report
// its dimensions and its linearization over a horizon.
type System interface {
	Dims() lqgame.Dims
	XDim() int
	NumPlayers() int
	UDim(i int) int
	Linearization(numTimeSteps int) []lqgame.LinearDynamics
}

// LTI is a time-invariant linear system
//
//	x_{k+1} = A*x_k + sum_i Bs[i]*u_{i,k}
//
// with one control channel per player.
type LTI struct {
	A  *mat.Dense
	Bs []*mat.Dense
}

func (s *LTI) Dims() lqgame.Dims {
	uDims := make([]int, len(s.Bs))
	for i, B := range s.Bs {
		_, uDims[i] = B.Dims()
	}
	n, _ := s.A.Dims()
	return lqgame.Dims{NumPlayers: len(s.Bs), XDim: n, UDims: uDims}
}

func (s *LTI) XDim() int {
	n, _ := s.A.Dims()
	return n
}

func (s *LTI) NumPlayers() int { return len(s.Bs) }

func (s *LTI) UDim(i int) int {
	_, c := s.Bs[i].Dims()
	return c
}

// Linearization replicates the constant system matrices over the horizon.
// The entries alias the system's matrices; the solver borrows them read-only.
func (s *LTI) Linearization(numTimeSteps int) []lqgame.LinearDynamics {
	lin := make([]lqgame.LinearDynamics, numTimeSteps)
	for k := range lin {
		lin[k] = lqgame.LinearDynamics{A: s.A, Bs: s.Bs}
	}
	return lin
}

// SingleIntegrator1D is a scalar position driven directly by velocity input,
// discretized with timestep dt.
func SingleIntegrator1D(dt float64) *LTI {
	return &LTI{
		A:  mat.NewDense(1, 1, []float64{1}),
		Bs: []*mat.Dense{mat.NewDense(1, 1, []float64{dt})},
	}
}

// DoubleIntegrator1D is a position/velocity pair with acceleration input,
// discretized under zero-order hold.
func DoubleIntegrator1D(dt float64) *LTI {
	return &LTI{
		A: mat.NewDense(2, 2, []float64{
			1, dt,
			0, 1,
		}),
		Bs: []*mat.Dense{mat.NewDense(2, 1, []float64{
			0.5 * dt * dt,
			dt,
		})},
	}
}

// DoubleIntegrator2D is a planar point mass: states (x, y, vx, vy) with
// acceleration inputs (ax, ay), discretized under zero-order hold.
func DoubleIntegrator2D(dt float64) *LTI {
	return &LTI{
		A: mat.NewDense(4, 4, []float64{
			1, 0, dt, 0,
			0, 1, 0, dt,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}),
		Bs: []*mat.Dense{mat.NewDense(4, 2, []float64{
			0.5 * dt * dt, 0,
			0, 0.5 * dt * dt,
			dt, 0,
			0, dt,
		})},
	}
}

// Concatenate stacks single-player blocks into one joint system: A becomes
// block-diagonal, and each player's B is padded with zeros to the joint
// state dimension. Each block must carry exactly one control channel.
func Concatenate(blocks ...*LTI) (*LTI, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("dynamics: no blocks to concatenate")
	}

	total := 0
	for i, b := range blocks {
		if len(b.Bs) != 1 {
			return nil, fmt.Errorf("dynamics: block %d has %d control channels, want 1", i, len(b.Bs))
		}
		total += b.XDim()
	}

	A := mat.NewDense(total, total, nil)
	Bs := make([]*mat.Dense, len(blocks))

	offset := 0
	for i, b := range blocks {
		n := b.XDim()
		A.Slice(offset, offset+n, offset, offset+n).(*mat.Dense).Copy(b.A)

		u := b.UDim(0)
		B := mat.NewDense(total, u, nil)
		B.Slice(offset, offset+n, 0, u).(*mat.Dense).Copy(b.Bs[0])
		Bs[i] = B

		offset += n
	}

	return &LTI{A: A, Bs: Bs}, nil
}
