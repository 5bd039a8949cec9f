package lqgame

import "gonum.org/v1/gonum/mat"

// workspace holds everything the backward pass caches for the forward pass,
// laid out time-major then player-major, plus scratch reused across steps.
// It is allocated once at construction and overwritten by every Solve.
type workspace struct {
	// Value function expansion per step and player: Hessian M and gradient m.
	Ms [][]*mat.Dense
	ms [][]*mat.VecDense

	// Per-step, per-player control preconditioning: the Cholesky factor of
	// R_ii, warpedB = R_ii^-1 B_i^T and warpedR = R_ii^-1 r_ii.
	cholRs   [][]*mat.Cholesky
	warpedBs [][]*mat.Dense
	warpedRs [][]*mat.VecDense

	// Coupling matrix Lambda and its factorization, shared by the M update,
	// the m update, and the forward pass.
	lambdas   []*mat.Dense
	qrLambdas []*mat.QR

	// Scratch. lamInvA caches Lambda^-1 A once per backward step; tmpUs has
	// one vector per player since control dimensions differ.
	lamInvA *mat.Dense
	iota    *mat.VecDense
	solved  *mat.VecDense
	xStar   *mat.VecDense
	tmpNN   *mat.Dense
	tmpNN2  *mat.Dense
	tmpN    *mat.VecDense
	tmpUs   []*mat.VecDense
}

func newWorkspace(dims Dims, numTimeSteps int) *workspace {
	n := dims.XDim
	horizon := numTimeSteps - 1

	ws := &workspace{
		Ms:        make([][]*mat.Dense, numTimeSteps),
		ms:        make([][]*mat.VecDense, numTimeSteps),
		cholRs:    make([][]*mat.Cholesky, horizon),
		warpedBs:  make([][]*mat.Dense, horizon),
		warpedRs:  make([][]*mat.VecDense, horizon),
		lambdas:   make([]*mat.Dense, horizon),
		qrLambdas: make([]*mat.QR, horizon),
		lamInvA:   mat.NewDense(n, n, nil),
		iota:      mat.NewVecDense(n, nil),
		solved:    mat.NewVecDense(n, nil),
		xStar:     mat.NewVecDense(n, nil),
		tmpNN:     mat.NewDense(n, n, nil),
		tmpNN2:    mat.NewDense(n, n, nil),
		tmpN:      mat.NewVecDense(n, nil),
		tmpUs:     make([]*mat.VecDense, dims.NumPlayers),
	}

	for k := 0; k < numTimeSteps; k++ {
		ws.Ms[k] = make([]*mat.Dense, dims.NumPlayers)
		ws.ms[k] = make([]*mat.VecDense, dims.NumPlayers)
		for i := 0; i < dims.NumPlayers; i++ {
			ws.Ms[k][i] = mat.NewDense(n, n, nil)
			ws.ms[k][i] = mat.NewVecDense(n, nil)
		}
	}
	for k := 0; k < horizon; k++ {
		ws.cholRs[k] = make([]*mat.Cholesky, dims.NumPlayers)
		ws.warpedBs[k] = make([]*mat.Dense, dims.NumPlayers)
		ws.warpedRs[k] = make([]*mat.VecDense, dims.NumPlayers)
		for i := 0; i < dims.NumPlayers; i++ {
			ws.cholRs[k][i] = &mat.Cholesky{}
			ws.warpedBs[k][i] = mat.NewDense(dims.UDims[i], n, nil)
			ws.warpedRs[k][i] = mat.NewVecDense(dims.UDims[i], nil)
		}
		ws.lambdas[k] = mat.NewDense(n, n, nil)
		ws.qrLambdas[k] = &mat.QR{}
	}
	for i := 0; i < dims.NumPlayers; i++ {
		ws.tmpUs[i] = mat.NewVecDense(dims.UDims[i], nil)
	}

	return ws
}

func setIdentity(m *mat.Dense) {
	n, _ := m.Dims()
	m.Zero()
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
}
