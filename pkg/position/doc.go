// Package position adapts coil geometry for an external positional
// optimiser.
//
// Two mappers translate between physical (x, z) coordinates and the
// normalised coordinates the optimiser works in:
//
//   - [XZLMapper] positions PF coils along a 1-D track, handling
//     exclusion zones, bound derivation and anti-collision track
//     segmentation, and stacks CS modules on a straight normalised
//     solenoid track.
//   - [RegionMapper] positions PF coils inside 2-D convex regions via
//     [RegionInterpolator], and derives maximum-current limits from the
//     largest rectangle that fits around each coil.
//
// The optimiser contract is a vector one: GetLMap returns the initial
// position vector with elementwise lower and upper bounds, and the
// inverse conversions turn a candidate vector back into physical
// coordinates. All values stay in [0, 1].
//
// Mappers are not safe for concurrent use; they are owned by a single
// optimisation loop that calls them once per iteration.
package position
