// Package geometry turns free-form volume descriptions into validated,
// unit-normalized volumes ready to hand to an engine backend.
//
// Supported solids form a closed set:
//
//   - [Box]: full lengths along x, y and z
//   - [Tube]: inner radius, outer radius, full length, optional phi segment
//   - [Cone]: inner/outer radius at -z and +z, full length, optional phi segment
//   - [Sphere]: inner and outer radius, optional phi and theta segments
//   - [Orb]: solid sphere of a given radius
//
// Each solid validates its own parameter count, so a misspelled or
// unsupported shape never reaches the backend. Lengths are in millimetres;
// angular segments are in degrees.
package geometry
