// Package session drives an engine backend from friendly configuration.
//
// A Session moves through four states:
//
//	Uninitialized -> PhysicsSelected -> WorldCreated -> Ready
//
// [New] selects the physics list, creates the world and then adds the
// configured volumes and gun. Volumes and the gun can be added or
// replaced afterwards; re-adding a name overwrites the earlier volume.
// [Session.Run] issues the visualization commands and, when events are
// requested, hands control to the engine until they are processed.
//
// Every volume and gun description is validated and unit-normalized
// before the backend is touched. Errors raised by the backend are logged
// with the values that were supplied and returned wrapped in an
// [engine.BackendArgumentError].
//
// A Session is not safe for concurrent use.
package session
