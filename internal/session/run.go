package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/san-kum/g4basic/internal/engine"
)

// Viewer styles.
const (
	StyleWireframe = "wireframe"
	StyleSurface   = "surface"
)

// RunOptions controls the visualization setup and event processing.
type RunOptions struct {
	// Events to process; zero performs a dry run that only sets up and
	// draws the geometry.
	Events  int
	Verbose int
	Viewer  string
	Theta   float64
	Phi     float64
	Style   string

	Hits         bool
	Trajectories bool
	Logo         bool
}

// DefaultRunOptions opens the OpenGL viewer looking from theta=80, phi=20
// degrees in wireframe.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Viewer: "OGL",
		Theta:  80,
		Phi:    20,
		Style:  StyleWireframe,
	}
}

func (o RunOptions) validate() error {
	if o.Events < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeEvents, o.Events)
	}
	if o.Viewer == "" {
		return fmt.Errorf("session: viewer driver is required")
	}
	switch o.Style {
	case StyleWireframe, StyleSurface:
	default:
		return fmt.Errorf("session: unknown viewer style %q", o.Style)
	}
	return nil
}

// Plan returns the UI commands Run issues, in order: verbosity, run
// initialization, viewer, viewpoint, style, geometry drawing, then the
// optional hits, trajectories and logo overlays. Event processing is not
// part of the plan.
func Plan(o RunOptions) ([]engine.Command, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	cmds := []engine.Command{
		engine.Cmd("/run/verbose", o.Verbose),
		engine.Cmd("/event/verbose", o.Verbose),
		engine.Cmd("/tracking/verbose", o.Verbose),
		engine.Cmd("/run/initialize"),
		engine.Cmd("/vis/open", o.Viewer),
		engine.Cmd("/vis/viewer/set/viewpointThetaPhi", o.Theta, o.Phi),
		engine.Cmd("/vis/viewer/set/style", o.Style),
		engine.Cmd("/vis/drawVolume"),
	}
	if o.Hits {
		cmds = append(cmds, engine.Cmd("/vis/scene/add/hits"))
	}
	if o.Trajectories {
		cmds = append(cmds, engine.Cmd("/vis/scene/add/trajectories", "smooth"))
	}
	if o.Hits || o.Trajectories {
		cmds = append(cmds, engine.Cmd("/vis/scene/endOfEventAction", "accumulate"))
	}
	if o.Logo {
		cmds = append(cmds, engine.Cmd("/vis/scene/add/logo"))
	}
	return cmds, nil
}

// Run issues the planned commands and, for a positive event count,
// blocks until the engine has processed the events.
func (s *Session) Run(ctx context.Context, o RunOptions) error {
	if s.state < Ready {
		return ErrNotReady
	}
	cmds, err := Plan(o)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		s.log.WithField("command", c.String()).Debug("apply")
		if err := s.backend.ApplyCommand(c); err != nil {
			return s.rejected(&engine.BackendArgumentError{Op: "apply command", Target: c.String(), Err: err})
		}
	}
	if o.Events == 0 {
		s.log.Info("dry run: no events requested")
		return nil
	}
	s.log.WithField("events", o.Events).Info("processing events")
	if err := s.backend.BeamOn(ctx, o.Events); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("session: beamOn %d: %w", o.Events, err)
		}
		return s.rejected(&engine.BackendArgumentError{Op: "beamOn", Target: strconv.Itoa(o.Events), Err: err})
	}
	return nil
}
