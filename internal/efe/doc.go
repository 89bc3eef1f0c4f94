// Package efe defines the reduced vacuum field equations for a static,
// spherically symmetric metric written as two radial functions A(r) and B(r),
// together with the closed-form solution used for comparison.
//
// With f = A and h = -B the metric is ds^2 = -f dt^2 + h dr^2 + r^2 dOmega^2,
// and the vacuum equations reduce to two first-order equations and one
// second-order equation in A and B. The equations carry no mass scale: the
// boundary conditions A(rmax)=1, B(rmax)=-1 fix the asymptotic normalization
// and the orbit-matching term of the training loss supplies the mass.
package efe
