// Package cost defines scalar cost functionals with analytic second-order
// expansions, and aggregates them into per-player quadratic stage-cost
// approximations for the LQ game solver.
package cost
