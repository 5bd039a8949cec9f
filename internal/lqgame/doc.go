// Package lqgame solves time-varying, finite-horizon linear-quadratic games.
//
// A game is posed as a time-indexed linearization of joint multi-player
// dynamics together with a per-player, per-step quadratic expansion of stage
// costs. The open-loop solver returns one [Strategy] per player holding the
// feedforward terms of an open-loop Nash equilibrium:
//
//	dims := lqgame.Dims{NumPlayers: 2, XDim: 4, UDims: []int{1, 1}}
//	solver := lqgame.NewOpenLoopSolver(dims, numTimeSteps)
//	strategies, err := solver.Solve(linearization, quadraticization, x0)
//
// The solver owns a preallocated workspace sized at construction, so repeated
// Solve calls from an outer iterative loop do not allocate in the recursion.
// Input violations surface as [ShapeError]; failed factorizations surface as
// [NumericalError], which the caller is expected to answer with more damping
// on the next subproblem.
package lqgame
