// Package units fixes the AU-year unit system used throughout the solver.
//
// All SI inputs are folded into derived constants once at startup; the rest
// of the code works exclusively in astronomical units and years, where the
// gravitational parameter of the Sun is close to 4*pi^2.
package units

// SI constants.
const (
	GravConst    = 6.67430e-11   // m^3 kg^-1 s^-2
	SolarMass    = 1.98847e30    // kg
	AU           = 1.495978707e11 // m
	Year         = 3.1536e7      // s (365 days)
	LightSpeedSI = 2.99792458e8  // m/s
)

// Derived constants in the AU-year system.
var (
	// GM is the solar gravitational parameter in AU^3/yr^2 (~4*pi^2).
	GM = GravConst * SolarMass * Year * Year / (AU * AU * AU)

	// C is the speed of light in AU/yr.
	C = LightSpeedSI * Year / AU

	// SchwarzschildRadius is 2GM/c^2 in AU.
	SchwarzschildRadius = 2 * GM / (C * C)
)
