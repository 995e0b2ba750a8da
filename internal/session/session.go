package session

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/logging"
	"github.com/san-kum/g4basic/internal/physics"
	"github.com/san-kum/g4basic/internal/units"
	"github.com/sirupsen/logrus"
)

// Config is everything needed to bring a session to Ready.
type Config struct {
	PhysicsList string
	World       geometry.WorldSpec
	Volumes     map[string]geometry.VolumeSpec
	Gun         *gun.Spec
}

type placed struct {
	volume geometry.Volume
	handle engine.Volume
}

// Session owns the named volumes and the single gun built on a backend.
type Session struct {
	backend engine.Backend
	log     *logrus.Entry

	state   State
	physics string
	world   geometry.World
	volumes map[string]placed
	gun     *gun.Gun
}

// New selects the physics list, creates the world and adds the configured
// volumes (in name order) and gun. An unknown physics list is rejected
// before the backend is called.
func New(b engine.Backend, cfg Config, log *logrus.Entry) (*Session, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		backend: b,
		log:     log,
		volumes: make(map[string]placed),
	}

	name := cfg.PhysicsList
	if name == "" {
		name = physics.Default
	}
	if _, err := physics.Lookup(name); err != nil {
		s.log.WithError(err).Error("physics list rejected")
		return nil, err
	}
	if err := b.SelectPhysicsList(name); err != nil {
		return nil, s.rejected(&engine.BackendArgumentError{Op: "select physics list", Target: name, Err: err})
	}
	s.physics = name
	s.state = PhysicsSelected
	s.log.WithField("physics_list", name).Info("physics list selected")

	if err := s.createWorld(cfg.World); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.Volumes))
	for n := range cfg.Volumes {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if err := s.AddVolume(n, cfg.Volumes[n]); err != nil {
			return nil, err
		}
	}

	if cfg.Gun != nil {
		if err := s.AddParticleGun(*cfg.Gun); err != nil {
			return nil, err
		}
	}

	s.state = Ready
	return s, nil
}

func (s *Session) createWorld(spec geometry.WorldSpec) error {
	w, err := geometry.NormalizeWorld(spec)
	if err != nil {
		return err
	}
	m, err := s.resolveMaterial(w.Material)
	if err != nil {
		return err
	}
	if err := s.backend.SetWorld(m, w.Size); err != nil {
		return s.rejected(&engine.BackendArgumentError{
			Op:         "create world",
			Target:     "world",
			Signature:  geometry.Signature(geometry.KindBox),
			Material:   w.Material,
			Dimensions: []float64{w.Size.X, w.Size.Y, w.Size.Z},
			Err:        err,
		})
	}
	s.world = w
	if s.state < WorldCreated {
		s.state = WorldCreated
	}
	s.log.WithFields(logrus.Fields{"material": w.Material, "size": w.Size}).Info("world created")
	return nil
}

// ResizeWorld recreates the world with new full lengths, keeping its
// material.
func (s *Session) ResizeWorld(dims []units.Token) error {
	if s.state < WorldCreated {
		return ErrNotReady
	}
	return s.createWorld(geometry.WorldSpec{Material: s.world.Material, Dimensions: dims})
}

// AddVolume validates spec, builds the solid, places it and assigns its
// colour. An existing volume of the same name is replaced.
func (s *Session) AddVolume(name string, spec geometry.VolumeSpec) error {
	if s.state < WorldCreated {
		return ErrNotReady
	}
	v, err := geometry.Normalize(name, spec)
	if err != nil {
		return err
	}
	m, err := s.resolveMaterial(v.Material)
	if err != nil {
		return fmt.Errorf("volume %q: %w", name, err)
	}

	fail := func(op string, err error) error {
		pos := v.Position
		return s.rejected(&engine.BackendArgumentError{
			Op:         op,
			Target:     name,
			Signature:  geometry.Signature(v.Shape.Kind()),
			Material:   v.Material,
			Dimensions: v.Shape.Params(),
			Position:   &pos,
			Err:        err,
		})
	}

	h, err := s.backend.CreateVolume(name, v.Shape, m)
	if err != nil {
		return fail("create volume", err)
	}
	if err := s.backend.Place(h, v.Position); err != nil {
		return fail("place volume", err)
	}
	if err := s.backend.SetColour(h, v.Colour); err != nil {
		return fail("colour volume", err)
	}

	entry := s.log.WithFields(logrus.Fields{
		"volume":   name,
		"shape":    v.Shape.Kind(),
		"material": v.Material,
		"position": v.Position,
	})
	if _, ok := s.volumes[name]; ok {
		entry.Debug("volume replaced")
	} else {
		entry.Debug("volume added")
	}
	s.volumes[name] = placed{volume: v, handle: h}
	if s.state == WorldCreated {
		s.state = Ready
	}
	return nil
}

// AddParticleGun builds the session's gun, replacing any earlier one.
// When both momentum and energy are given the momentum wins and a warning
// is logged.
func (s *Session) AddParticleGun(spec gun.Spec) error {
	if s.state < WorldCreated {
		return ErrNotReady
	}
	g, err := gun.Normalize(spec)
	if err != nil {
		return err
	}
	if len(g.Ignored) > 0 {
		s.log.WithFields(logrus.Fields{
			"particle": g.Particle,
			"ignored":  g.Ignored,
		}).Warn("gun momentum given; ignoring energy and direction")
	}

	fail := func(err error) error {
		pos := g.Position
		return s.rejected(&engine.BackendArgumentError{
			Op:       "configure gun",
			Target:   g.Particle,
			Position: &pos,
			Err:      err,
		})
	}

	h, err := s.backend.CreateGun()
	if err != nil {
		return fail(err)
	}
	if err := h.SetParticle(g.Particle); err != nil {
		return fail(err)
	}
	if err := h.SetPosition(g.Position); err != nil {
		return fail(err)
	}
	switch g.Mode {
	case gun.ModeMomentum:
		if err := h.SetMomentum(g.Momentum); err != nil {
			return fail(err)
		}
	case gun.ModeEnergy:
		if err := h.SetEnergy(g.Energy); err != nil {
			return fail(err)
		}
		if err := h.SetDirection(g.Direction); err != nil {
			return fail(err)
		}
	}

	s.gun = &g
	s.log.WithFields(logrus.Fields{"particle": g.Particle, "mode": g.Mode}).Info("gun created")
	if s.state == WorldCreated {
		s.state = Ready
	}
	return nil
}

func (s *Session) resolveMaterial(name string) (engine.Material, error) {
	m, err := engine.ResolveMaterial(s.backend, name)
	var bae *engine.BackendArgumentError
	if errors.As(err, &bae) {
		return nil, s.rejected(bae)
	}
	return m, err
}

func (s *Session) rejected(err *engine.BackendArgumentError) error {
	fields := logrus.Fields{"op": err.Op, "target": err.Target}
	if err.Signature != "" {
		fields["expects"] = err.Signature
	}
	if err.Material != "" {
		fields["material"] = err.Material
	}
	if err.Dimensions != nil {
		fields["dimensions"] = err.Dimensions
	}
	if err.Position != nil {
		fields["position"] = *err.Position
	}
	s.log.WithFields(fields).WithError(err.Err).Error("backend rejected arguments")
	return err
}

// State returns the current initialization stage.
func (s *Session) State() State { return s.state }

// PhysicsList returns the selected physics list.
func (s *Session) PhysicsList() string { return s.physics }

// World returns the normalized world.
func (s *Session) World() geometry.World { return s.world }

// Volume returns a volume by name.
func (s *Session) Volume(name string) (geometry.Volume, bool) {
	p, ok := s.volumes[name]
	return p.volume, ok
}

// Handle returns the backend handle of a named volume.
func (s *Session) Handle(name string) (engine.Volume, bool) {
	p, ok := s.volumes[name]
	return p.handle, ok
}

// Volumes returns every volume ordered by name.
func (s *Session) Volumes() []geometry.Volume {
	names := make([]string, 0, len(s.volumes))
	for n := range s.volumes {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]geometry.Volume, len(names))
	for i, n := range names {
		out[i] = s.volumes[n].volume
	}
	return out
}

// Gun returns the normalized gun, if one was added.
func (s *Session) Gun() (gun.Gun, bool) {
	if s.gun == nil {
		return gun.Gun{}, false
	}
	return *s.gun, true
}

// IsBackendRejection reports whether err came from the engine refusing
// supplied arguments.
func IsBackendRejection(err error) bool {
	var bae *engine.BackendArgumentError
	return errors.As(err, &bae)
}
