// Package macro implements an engine backend that renders a session as a
// Geant4 text geometry description and a UI macro. Any Geant4 application
// built with the text geometry reader can replay the pair:
//
//	b := macro.New(log)
//	s, _ := session.New(b, cfg, log)
//	_ = s.Run(ctx, opts)
//	_ = b.WriteGeometry(geoFile)
//	_ = b.WriteMacro(macFile)
//
// Lengths are written in millimetres, energies in MeV and angles in
// degrees, the text geometry defaults.
package macro

import (
	"context"
	"fmt"

	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/logging"
	"github.com/san-kum/g4basic/internal/nist"
	"github.com/san-kum/g4basic/internal/palette"
	"github.com/sirupsen/logrus"
)

// WorldName is the text geometry name of the world volume.
const WorldName = "world"

type material string

func (m material) Name() string { return string(m) }

type volume struct {
	name     string
	shape    geometry.Shape
	material string
	position *geometry.Vector
	colour   *palette.RGBA
}

func (v *volume) Name() string { return v.name }

// Backend accumulates geometry and commands in memory.
type Backend struct {
	log      *logrus.Entry
	physics  string
	world    *volume
	volumes  []*volume
	byName   map[string]*volume
	gun      []engine.Command
	commands []engine.Command
	events   int
}

// New returns an empty backend.
func New(log *logrus.Entry) *Backend {
	if log == nil {
		log = logging.Discard()
	}
	return &Backend{
		log:    log,
		byName: make(map[string]*volume),
	}
}

func (b *Backend) SelectPhysicsList(name string) error {
	b.physics = name
	return nil
}

// PhysicsList returns the selected physics list.
func (b *Backend) PhysicsList() string {
	return b.physics
}

func (b *Backend) LookupMaterial(name string) (engine.Material, error) {
	if !nist.Known(name) {
		return nil, &engine.UnknownMaterialError{Name: name}
	}
	return material(name), nil
}

func (b *Backend) SetWorld(m engine.Material, size geometry.Vector) error {
	shape := geometry.Box{DX: size.X, DY: size.Y, DZ: size.Z}
	if err := checkSolid(shape); err != nil {
		return err
	}
	b.world = &volume{name: WorldName, shape: shape, material: m.Name()}
	b.log.WithField("size", size).Debug("world defined")
	return nil
}

func (b *Backend) CreateVolume(name string, shape geometry.Shape, m engine.Material) (engine.Volume, error) {
	if name == WorldName {
		return nil, fmt.Errorf("macro: volume name %q is reserved", name)
	}
	if err := checkSolid(shape); err != nil {
		return nil, err
	}
	v := &volume{name: name, shape: shape, material: m.Name()}
	if prev, ok := b.byName[name]; ok {
		*prev = *v
		return prev, nil
	}
	b.byName[name] = v
	b.volumes = append(b.volumes, v)
	return v, nil
}

func (b *Backend) Place(h engine.Volume, pos geometry.Vector) error {
	v, err := b.lookup(h)
	if err != nil {
		return err
	}
	v.position = &pos
	return nil
}

func (b *Backend) SetColour(h engine.Volume, c palette.RGBA) error {
	v, err := b.lookup(h)
	if err != nil {
		return err
	}
	v.colour = &c
	return nil
}

func (b *Backend) CreateGun() (engine.Gun, error) {
	b.gun = nil
	return &gun{b: b}, nil
}

func (b *Backend) ApplyCommand(cmd engine.Command) error {
	b.commands = append(b.commands, cmd)
	return nil
}

func (b *Backend) BeamOn(ctx context.Context, events int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if events <= 0 {
		return fmt.Errorf("macro: beamOn needs a positive event count, got %d", events)
	}
	b.events += events
	b.commands = append(b.commands, engine.Cmd("/run/beamOn", events))
	return nil
}

// Events returns the total number of events requested so far.
func (b *Backend) Events() int {
	return b.events
}

func (b *Backend) lookup(h engine.Volume) (*volume, error) {
	v, ok := b.byName[h.Name()]
	if !ok {
		return nil, fmt.Errorf("macro: unknown volume %q", h.Name())
	}
	return v, nil
}

type gun struct {
	b *Backend
}

func (g *gun) add(cmd engine.Command) error {
	g.b.gun = append(g.b.gun, cmd)
	return nil
}

func (g *gun) SetParticle(name string) error {
	return g.add(engine.Cmd("/gun/particle", name))
}

func (g *gun) SetPosition(p geometry.Vector) error {
	return g.add(engine.Cmd("/gun/position", p.X, p.Y, p.Z, "mm"))
}

func (g *gun) SetMomentum(p geometry.Vector) error {
	return g.add(engine.Cmd("/gun/momentum", p.X, p.Y, p.Z, "MeV"))
}

func (g *gun) SetEnergy(e float64) error {
	if e <= 0 {
		return fmt.Errorf("macro: gun energy must be positive, got %g MeV", e)
	}
	return g.add(engine.Cmd("/gun/energy", e, "MeV"))
}

func (g *gun) SetDirection(d geometry.Vector) error {
	if d == (geometry.Vector{}) {
		return fmt.Errorf("macro: gun direction must be non-zero")
	}
	return g.add(engine.Cmd("/gun/direction", d.X, d.Y, d.Z))
}

var _ engine.Backend = (*Backend)(nil)
