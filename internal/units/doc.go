// Package units converts unit-annotated tokens such as "5m", "-20cm" or
// "100GeV" into magnitudes expressed in the engine's base units.
//
// Lengths are normalized to millimetres and energies to MeV, matching the
// CLHEP system of units used by Geant4:
//
//	v, _ := units.Parse("2.5m") // 2500
//	e, _ := units.Parse("50GeV") // 50000
//
// A token without a suffix is taken to be in base units already. When
// several suffixes could match, the longest one wins, so "5mm" is five
// millimetres and never five metres with a stray "m".
package units
