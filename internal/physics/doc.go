// Package physics is the catalog of Geant4 reference physics lists a
// session may select. Names are matched exactly.
package physics
