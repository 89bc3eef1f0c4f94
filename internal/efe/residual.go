package efe

// Field is a scalar radial field. Network predictions and the closed-form
// solution both satisfy it.
type Field interface {
	At(r float64) float64
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(r float64) float64

func (f FieldFunc) At(r float64) float64 { return f(r) }

// DerivStep is the central-difference step for field derivatives at
// collocation points. The second-derivative stencil loses half the working
// precision to cancellation, so the step is kept coarse enough that rounding
// noise stays below the truncation error.
const DerivStep = 1e-2

// Deriv1 is the symmetric first derivative of f at r.
func Deriv1(f Field, r, h float64) float64 {
	return (f.At(r+h) - f.At(r-h)) / (2 * h)
}

// Deriv2 is the symmetric second derivative of f at r.
func Deriv2(f Field, r, h float64) float64 {
	return (f.At(r+h) - 2*f.At(r) + f.At(r-h)) / (h * h)
}

// ResidualSet evaluates the three reduced vacuum equations for candidate
// fields A and B. All three vanish identically on the closed-form solution.
type ResidualSet struct {
	A    Field
	B    Field
	Step float64
}

func NewResidualSet(a, b Field) *ResidualSet {
	return &ResidualSet{A: a, B: b, Step: DerivStep}
}

// Eval returns the three residuals at radius r:
//
//	R1 = B' - B(1+B)/r
//	R2 = A' + A(1+B)/r
//	R3 = A'' - A'/2*(A'/A + B'/B) + 2A'/r
func (s *ResidualSet) Eval(r float64) [3]float64 {
	a := s.A.At(r)
	b := s.B.At(r)
	da := Deriv1(s.A, r, s.Step)
	db := Deriv1(s.B, r, s.Step)
	dda := Deriv2(s.A, r, s.Step)

	r1 := db - b*(1+b)/r
	r2 := da + a*(1+b)/r
	r3 := dda - 0.5*da*(da/a+db/b) + 2*da/r

	return [3]float64{r1, r2, r3}
}

// BoundaryResiduals returns A(rmax)-1 and B(rmax)+1, the two conditions
// pinning the asymptotic normalization.
func BoundaryResiduals(a, b Field, rmax float64) (float64, float64) {
	return a.At(rmax) - 1, b.At(rmax) + 1
}
