package engine

import (
	"context"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/palette"
)

// Material is a handle from the engine's material database.
type Material interface {
	Name() string
}

// Volume is a handle to a constructed solid.
type Volume interface {
	Name() string
}

// Gun is an engine particle source.
type Gun interface {
	SetParticle(name string) error
	SetPosition(pos geometry.Vector) error
	SetMomentum(p geometry.Vector) error
	SetEnergy(e float64) error
	SetDirection(d geometry.Vector) error
}

// Backend is the engine capability surface.
type Backend interface {
	SelectPhysicsList(name string) error
	LookupMaterial(name string) (Material, error)
	// SetWorld creates or resizes the world box; size holds full lengths.
	SetWorld(m Material, size geometry.Vector) error
	CreateVolume(name string, shape geometry.Shape, m Material) (Volume, error)
	Place(v Volume, pos geometry.Vector) error
	SetColour(v Volume, c palette.RGBA) error
	CreateGun() (Gun, error)
	ApplyCommand(cmd Command) error
	// BeamOn blocks until the engine has processed the requested events.
	BeamOn(ctx context.Context, events int) error
}
