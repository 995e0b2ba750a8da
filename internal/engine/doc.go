// Package engine defines the capability surface a simulation engine must
// offer to drive a session:
//
//   - material lookup by name
//   - world and solid construction from numeric dimensions
//   - placement by 3D coordinate
//   - colour assignment
//   - a particle gun settable by particle, position, momentum or energy
//     and direction
//   - a textual command interface for visualization and run control
//   - event processing by count
//
// The engine itself stays external. Implementations are expected to own
// process-wide state (the Geant4 run manager is a singleton), so at most
// one live backend should be driven per process; recording backends used
// in tests have no such limit. Backends are not safe for concurrent use.
package engine
