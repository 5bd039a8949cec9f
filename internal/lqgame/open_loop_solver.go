package lqgame

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OpenLoopSolver computes open-loop Nash equilibria of finite-horizon LQ
// games, following Basar and Olsder, ch. 6, with linear control-cost terms
// folded in:
//
//	control penalty i = sum_j (0.5 * du_j^T R_ij du_j + r_ij^T du_j)
//
// Dynamics are perturbation dynamics, so the additive drift is always zero.
// The returned strategies keep their gains at zero; only the feedforward
// terms are populated, with sign such that the realized control is
// du = -alpha.
//
// A solver owns its workspace: two concurrent Solve calls on one instance
// are undefined, distinct instances are independent.
type OpenLoopSolver struct {
	dims         Dims
	numTimeSteps int
	ws           *workspace
}

// NewOpenLoopSolver allocates a solver for the given dimensions and horizon.
// numTimeSteps counts every step including the terminal one and must be at
// least 2.
func NewOpenLoopSolver(dims Dims, numTimeSteps int) *OpenLoopSolver {
	return &OpenLoopSolver{
		dims:         dims,
		numTimeSteps: numTimeSteps,
		ws:           newWorkspace(dims, numTimeSteps),
	}
}

func (s *OpenLoopSolver) Dims() Dims        { return s.dims }
func (s *OpenLoopSolver) NumTimeSteps() int { return s.numTimeSteps }

// Solve runs the backward-forward recursion and returns one strategy per
// player, each with numTimeSteps-1 feedforward terms. Inputs are read-only;
// the workspace is overwritten on every call.
func (s *OpenLoopSolver) Solve(linearization []LinearDynamics, quadraticization [][]QuadraticCostApproximation, x0 mat.Vector) ([]Strategy, error) {
	if err := s.validate(linearization, quadraticization, x0); err != nil {
		return nil, err
	}

	numPlayers := s.dims.NumPlayers
	T := s.numTimeSteps
	ws := s.ws

	// The terminal cost has no control term; its expansion seeds the value
	// function at the horizon.
	for ii := 0; ii < numPlayers; ii++ {
		ws.Ms[T-1][ii].Copy(quadraticization[T-1][ii].State.Hess)
		ws.ms[T-1][ii].CopyVec(quadraticization[T-1][ii].State.Grad)
	}

	// Backward sweep: precondition each player's B and r by its control
	// Hessian, assemble and factorize the coupling matrix, then update the
	// value Hessians and gradients.
	for kk := T - 2; kk >= 0; kk-- {
		lin := linearization[kk]
		quad := quadraticization[kk]
		nextQuad := quadraticization[kk+1]

		setIdentity(ws.lambdas[kk])
		for ii := 0; ii < numPlayers; ii++ {
			ctrl := quad[ii].Control[ii]
			if ok := ws.cholRs[kk][ii].Factorize(ctrl.Hess); !ok {
				return nil, NumericalError{Step: kk, Player: ii, Matrix: "R"}
			}
			if err := ws.cholRs[kk][ii].SolveTo(ws.warpedBs[kk][ii], lin.Bs[ii].T()); err != nil {
				return nil, NumericalError{Step: kk, Player: ii, Matrix: "R", Err: err}
			}
			if err := ws.cholRs[kk][ii].SolveVecTo(ws.warpedRs[kk][ii], ctrl.Grad); err != nil {
				return nil, NumericalError{Step: kk, Player: ii, Matrix: "R", Err: err}
			}

			ws.tmpNN.Mul(lin.Bs[ii], ws.warpedBs[kk][ii])
			ws.tmpNN2.Mul(ws.tmpNN, ws.Ms[kk+1][ii])
			ws.lambdas[kk].Add(ws.lambdas[kk], ws.tmpNN2)
		}

		// One factorization of Lambda serves the M update, the m update,
		// and the forward pass.
		ws.qrLambdas[kk].Factorize(ws.lambdas[kk])
		if err := ws.qrLambdas[kk].SolveTo(ws.lamInvA, false, lin.A); err != nil {
			return nil, NumericalError{Step: kk, Player: -1, Matrix: "Lambda", Err: err}
		}

		for ii := 0; ii < numPlayers; ii++ {
			// M_k = Q_k + A^T M_{k+1} Lambda^-1 A
			ws.tmpNN.Mul(ws.Ms[kk+1][ii], ws.lamInvA)
			ws.Ms[kk][ii].Mul(lin.A.T(), ws.tmpNN)
			ws.Ms[kk][ii].Add(ws.Ms[kk][ii], quad[ii].State.Hess)

			// iota = -sum_j B_j (warpedB_j m_{k+1} + warpedR_j). The sum
			// runs over every player, including ii.
			ws.iota.Zero()
			for jj := 0; jj < numPlayers; jj++ {
				tu := ws.tmpUs[jj]
				tu.MulVec(ws.warpedBs[kk][jj], ws.ms[kk+1][ii])
				tu.AddVec(tu, ws.warpedRs[kk][jj])
				ws.tmpN.MulVec(lin.Bs[jj], tu)
				ws.iota.SubVec(ws.iota, ws.tmpN)
			}
			if err := ws.qrLambdas[kk].SolveVecTo(ws.solved, false, ws.iota); err != nil {
				return nil, NumericalError{Step: kk, Player: -1, Matrix: "Lambda", Err: err}
			}

			// m_k = l_{k+1} + A^T (m_{k+1} + M_{k+1} Lambda^-1 iota).
			// The gradient comes from the NEXT step's cost; the Hessian
			// above comes from the current step's. The asymmetry matches
			// the derivation and must be preserved.
			ws.tmpN.MulVec(ws.Ms[kk+1][ii], ws.solved)
			ws.tmpN.AddVec(ws.tmpN, ws.ms[kk+1][ii])
			ws.ms[kk][ii].MulVec(lin.A.T(), ws.tmpN)
			ws.ms[kk][ii].AddVec(ws.ms[kk][ii], nextQuad[ii].State.Grad)
		}
	}

	strategies := make([]Strategy, numPlayers)
	for ii := range strategies {
		strategies[ii] = NewStrategy(T-1, s.dims.XDim, s.dims.UDims[ii])
	}

	// Forward sweep: reconstruct the equilibrium state trajectory with the
	// cached factorizations and emit each player's feedforward term.
	xStar := ws.xStar
	xStar.CopyVec(x0)
	for kk := 0; kk < T-1; kk++ {
		lin := linearization[kk]

		// Same structural term as the m update above.
		ws.iota.MulVec(lin.A, xStar)
		for ii := 0; ii < numPlayers; ii++ {
			tu := ws.tmpUs[ii]
			tu.MulVec(ws.warpedBs[kk][ii], ws.ms[kk+1][ii])
			tu.AddVec(tu, ws.warpedRs[kk][ii])
			ws.tmpN.MulVec(lin.Bs[ii], tu)
			ws.iota.SubVec(ws.iota, ws.tmpN)
		}
		if err := ws.qrLambdas[kk].SolveVecTo(xStar, false, ws.iota); err != nil {
			return nil, NumericalError{Step: kk, Player: -1, Matrix: "Lambda", Err: err}
		}

		// alpha = warpedB (M_{k+1} x* + m_{k+1}) + warpedR; the realized
		// control is du = -alpha.
		for ii := 0; ii < numPlayers; ii++ {
			alpha := strategies[ii].Alphas[kk]
			ws.tmpN.MulVec(ws.Ms[kk+1][ii], xStar)
			ws.tmpN.AddVec(ws.tmpN, ws.ms[kk+1][ii])
			alpha.MulVec(ws.warpedBs[kk][ii], ws.tmpN)
			alpha.AddVec(alpha, ws.warpedRs[kk][ii])
		}
	}

	return strategies, nil
}

func (s *OpenLoopSolver) validate(linearization []LinearDynamics, quadraticization [][]QuadraticCostApproximation, x0 mat.Vector) error {
	n := s.dims.XDim
	numPlayers := s.dims.NumPlayers
	T := s.numTimeSteps

	if T < 2 {
		return ShapeError{What: "num time steps", Got: T, Want: 2}
	}
	if len(linearization) != T {
		return ShapeError{What: "linearization", Got: len(linearization), Want: T}
	}
	if len(quadraticization) != T {
		return ShapeError{What: "quadraticization", Got: len(quadraticization), Want: T}
	}
	if x0.Len() != n {
		return ShapeError{What: "x0", Got: x0.Len(), Want: n}
	}

	for kk, lin := range linearization {
		if r, c := lin.A.Dims(); r != n || c != n {
			return ShapeError{What: fmt.Sprintf("A at step %d", kk), Got: r, Want: n}
		}
		if len(lin.Bs) != numPlayers {
			return ShapeError{What: fmt.Sprintf("B count at step %d", kk), Got: len(lin.Bs), Want: numPlayers}
		}
		for ii, B := range lin.Bs {
			if r, c := B.Dims(); r != n || c != s.dims.UDims[ii] {
				return ShapeError{What: fmt.Sprintf("B for player %d at step %d", ii, kk), Got: c, Want: s.dims.UDims[ii]}
			}
		}
	}

	for kk := range quadraticization {
		if len(quadraticization[kk]) != numPlayers {
			return ShapeError{What: fmt.Sprintf("quadraticization at step %d", kk), Got: len(quadraticization[kk]), Want: numPlayers}
		}
		for ii := range quadraticization[kk] {
			quad := &quadraticization[kk][ii]
			if r, _ := quad.State.Hess.Dims(); r != n {
				return ShapeError{What: fmt.Sprintf("state Hessian for player %d at step %d", ii, kk), Got: r, Want: n}
			}
			if quad.State.Grad.Len() != n {
				return ShapeError{What: fmt.Sprintf("state gradient for player %d at step %d", ii, kk), Got: quad.State.Grad.Len(), Want: n}
			}
			if kk == T-1 {
				continue // only the state term is read at the terminal step
			}
			ctrl, ok := quad.Control[ii]
			if !ok {
				return ShapeError{What: fmt.Sprintf("control cost entries for player %d at step %d", ii, kk), Got: 0, Want: 1}
			}
			uDim := s.dims.UDims[ii]
			if r, _ := ctrl.Hess.Dims(); r != uDim {
				return ShapeError{What: fmt.Sprintf("control Hessian for player %d at step %d", ii, kk), Got: r, Want: uDim}
			}
			if ctrl.Grad.Len() != uDim {
				return ShapeError{What: fmt.Sprintf("control gradient for player %d at step %d", ii, kk), Got: ctrl.Grad.Len(), Want: uDim}
			}
		}
	}

	return nil
}
