// Package recorder provides an in-memory engine backend that records every
// call in order. It accepts the NIST material catalog and can be told to
// reject specific operations.
package recorder

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/nist"
	"github.com/san-kum/g4basic/internal/palette"
)

// Call is one recorded backend invocation.
type Call struct {
	Op     string
	Target string
	Args   []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return fmt.Sprintf("%s %s", c.Op, c.Target)
	}
	return fmt.Sprintf("%s %s %v", c.Op, c.Target, c.Args)
}

// Op names.
const (
	OpPhysics   = "physics"
	OpMaterial  = "material"
	OpWorld     = "world"
	OpVolume    = "volume"
	OpPlace     = "place"
	OpColour    = "colour"
	OpGun       = "gun"
	OpParticle  = "gun.particle"
	OpPosition  = "gun.position"
	OpMomentum  = "gun.momentum"
	OpEnergy    = "gun.energy"
	OpDirection = "gun.direction"
	OpCommand   = "command"
	OpBeamOn    = "beamOn"
)

// RejectFunc decides whether an operation on a target fails.
type RejectFunc func(op, target string) error

// Recorder is an engine.Backend that performs no simulation.
type Recorder struct {
	calls  []Call
	extra  map[string]bool
	reject RejectFunc
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{extra: make(map[string]bool)}
}

// WithMaterials makes additional canonical material names resolvable.
func (r *Recorder) WithMaterials(names ...string) *Recorder {
	for _, n := range names {
		r.extra[n] = true
	}
	return r
}

// RejectWith installs a failure hook consulted before every recorded call.
func (r *Recorder) RejectWith(fn RejectFunc) *Recorder {
	r.reject = fn
	return r
}

// Calls returns a copy of the call log.
func (r *Recorder) Calls() []Call {
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsTo filters the log by operation.
func (r *Recorder) CallsTo(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Commands returns the rendered UI commands in issue order.
func (r *Recorder) Commands() []string {
	var out []string
	for _, c := range r.calls {
		if c.Op == OpCommand {
			out = append(out, c.Target)
		}
	}
	return out
}

// Reset clears the call log.
func (r *Recorder) Reset() {
	r.calls = nil
}

func (r *Recorder) record(op, target string, args ...any) error {
	if r.reject != nil {
		if err := r.reject(op, target); err != nil {
			return err
		}
	}
	r.calls = append(r.calls, Call{Op: op, Target: target, Args: args})
	return nil
}

type handle string

func (h handle) Name() string { return string(h) }

func (r *Recorder) SelectPhysicsList(name string) error {
	return r.record(OpPhysics, name)
}

func (r *Recorder) LookupMaterial(name string) (engine.Material, error) {
	if !nist.Known(name) && !r.extra[name] {
		return nil, &engine.UnknownMaterialError{Name: name}
	}
	if err := r.record(OpMaterial, name); err != nil {
		return nil, err
	}
	return handle(name), nil
}

func (r *Recorder) SetWorld(m engine.Material, size geometry.Vector) error {
	return r.record(OpWorld, m.Name(), size)
}

func (r *Recorder) CreateVolume(name string, shape geometry.Shape, m engine.Material) (engine.Volume, error) {
	if err := r.record(OpVolume, name, shape.Kind(), shape.Params(), m.Name()); err != nil {
		return nil, err
	}
	return handle(name), nil
}

func (r *Recorder) Place(v engine.Volume, pos geometry.Vector) error {
	return r.record(OpPlace, v.Name(), pos)
}

func (r *Recorder) SetColour(v engine.Volume, c palette.RGBA) error {
	return r.record(OpColour, v.Name(), c)
}

func (r *Recorder) CreateGun() (engine.Gun, error) {
	if err := r.record(OpGun, ""); err != nil {
		return nil, err
	}
	return &gun{r: r}, nil
}

func (r *Recorder) ApplyCommand(cmd engine.Command) error {
	if !strings.HasPrefix(cmd.Name, "/") {
		return fmt.Errorf("recorder: command %q is not a UI path", cmd.Name)
	}
	return r.record(OpCommand, cmd.String())
}

func (r *Recorder) BeamOn(ctx context.Context, events int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.record(OpBeamOn, "", events)
}

type gun struct {
	r *Recorder
}

func (g *gun) SetParticle(name string) error {
	return g.r.record(OpParticle, name)
}

func (g *gun) SetPosition(pos geometry.Vector) error {
	return g.r.record(OpPosition, "", pos)
}

func (g *gun) SetMomentum(p geometry.Vector) error {
	return g.r.record(OpMomentum, "", p)
}

func (g *gun) SetEnergy(e float64) error {
	return g.r.record(OpEnergy, "", e)
}

func (g *gun) SetDirection(d geometry.Vector) error {
	return g.r.record(OpDirection, "", d)
}

var _ engine.Backend = (*Recorder)(nil)
