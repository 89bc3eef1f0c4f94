// Package train drives the optimization of the field networks against the
// composite loss: squared field-equation residuals at collocation points,
// squared boundary conditions, and the orbit-matching term that compares a
// geodesic solve under the candidate metric with the reference trajectory.
//
// Cost model: every orbit-loss evaluation performs one full ODE solve, and
// gradients are taken by central differences over the flat parameter vector,
// so one training iteration costs 2*P loss evaluations (P parameters). The
// orbit term depends only on the A-field network and is skipped when
// perturbing B-field parameters.
package train
