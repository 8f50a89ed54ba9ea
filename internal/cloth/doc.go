// Package cloth implements a 2D mass-spring cloth as a particle grid
// connected by distance constraints.
//
// The engine is built from three pieces:
//
//   - [Particle]: a Verlet-integrated mass point (velocity is implicit in
//     the difference between current and previous position)
//   - [Spring]: a distance constraint between two particles, classified as
//     structural, bending, or shear
//   - [Cloth]: the aggregate that builds the grid topology, steps the
//     integrator, and relaxes constraints
//
// Springs are removed permanently when over-strained (tearing) or when they
// pass near a cut point; they are never recreated without rebuilding the
// whole cloth.
//
// The package has no failure modes in normal operation. Degenerate inputs
// (zero-length springs, coincident segment endpoints) are handled by skip
// rules rather than errors. Grid dimensions below 2x2 or non-positive
// spacing are an input contract violation the caller must prevent; see
// config.Validate.
package cloth
