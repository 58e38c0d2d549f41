// Package geometry provides the 2-D primitives the positioning core
// consumes: points and closed polygons in the poloidal (x, z) plane,
// shoelace areas, convex-hull checks, plane-polygon cuts and inscribed
// rectangles.
//
// The package is deliberately small. It covers convex polygons and open
// polylines only, which is all the coil mappers require; there is no
// general boolean-operation machinery here.
package geometry
