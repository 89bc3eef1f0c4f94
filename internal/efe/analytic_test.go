package efe_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lvb5/solve-PDEs-with-PINN/internal/efe"
	"github.com/lvb5/solve-PDEs-with-PINN/internal/units"
)

var _ = Describe("closed-form solution", func() {
	var (
		sol efe.Analytic
		dom efe.Domain
	)

	BeforeEach(func() {
		sol = efe.NewAnalytic(units.SchwarzschildRadius)
		dom = efe.DefaultDomain()
	})

	It("satisfies both boundary conditions at the outer edge", func() {
		ra, rb := efe.BoundaryResiduals(efe.FieldFunc(sol.A), efe.FieldFunc(sol.B), dom.RMax)
		Expect(ra).To(BeNumerically("~", 0, 1e-8))
		Expect(rb).To(BeNumerically("~", 0, 1e-8))
	})

	It("zeroes all three residual equations across the domain", func() {
		set := efe.NewResidualSet(efe.FieldFunc(sol.A), efe.FieldFunc(sol.B))
		for _, r := range dom.Uniform(19) {
			res := set.Eval(r)
			Expect(res[0]).To(BeNumerically("~", 0, 1e-9), "R1 at r=%f", r)
			Expect(res[1]).To(BeNumerically("~", 0, 1e-9), "R2 at r=%f", r)
			Expect(res[2]).To(BeNumerically("~", 0, 1e-9), "R3 at r=%f", r)
		}
	})

	It("is monotonically increasing in both fields over the grid", func() {
		grid := dom.Grid(0.01)
		for i := 1; i < len(grid); i++ {
			Expect(sol.A(grid[i])).To(BeNumerically(">", sol.A(grid[i-1])))
			Expect(sol.B(grid[i])).To(BeNumerically(">", sol.B(grid[i-1])))
		}
	})

	It("keeps the divergence of B below the domain", func() {
		// B blows up only at r = Rs, which sits far inside RMin.
		Expect(sol.Rs).To(BeNumerically("<", dom.RMin))
		for _, r := range dom.Grid(0.01) {
			Expect(sol.B(r)).To(BeNumerically("<", 0))
			Expect(sol.B(r)).To(BeNumerically(">", -1.001))
		}
	})

	It("evaluates g00 through the radial distance", func() {
		Expect(sol.G00(3, 4)).To(BeNumerically("~", sol.A(5), 1e-15))
	})
})
