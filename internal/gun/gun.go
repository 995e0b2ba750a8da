// Package gun normalizes particle-source descriptions.
//
// A source is driven either by a momentum vector or by a kinetic energy
// plus a direction. Momentum takes precedence: when both are given the
// energy and direction are dropped and reported in Gun.Ignored so the
// caller can warn about it.
package gun

import (
	"fmt"
	"strings"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/units"
)

// Spec is the caller-facing gun description.
type Spec struct {
	Particle  string        `yaml:"particle" toml:"particle" json:"particle"`
	Position  []units.Token `yaml:"position,omitempty" toml:"position" json:"position,omitempty"`
	Energy    *units.Token  `yaml:"energy,omitempty" toml:"energy" json:"energy,omitempty"`
	Direction []units.Token `yaml:"direction,omitempty" toml:"direction" json:"direction,omitempty"`
	Momentum  []units.Token `yaml:"momentum,omitempty" toml:"momentum" json:"momentum,omitempty"`
}

// Mode selects how the source kinematics are set.
type Mode int

const (
	ModeMomentum Mode = iota
	ModeEnergy
)

func (m Mode) String() string {
	switch m {
	case ModeMomentum:
		return "momentum"
	case ModeEnergy:
		return "energy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Gun is a normalized Spec. Only the fields selected by Mode are set.
type Gun struct {
	Particle  string
	Position  geometry.Vector
	Mode      Mode
	Momentum  geometry.Vector
	Energy    float64
	Direction geometry.Vector
	// Ignored names spec fields dropped by the precedence rule.
	Ignored []string
}

// IncompleteGunSpecError reports a spec that cannot drive a source.
type IncompleteGunSpecError struct {
	Missing []string
}

func (e *IncompleteGunSpecError) Error() string {
	return fmt.Sprintf("gun: incomplete spec, missing %s", strings.Join(e.Missing, " and "))
}

// Normalize applies the precedence rule and converts units. An omitted
// position fires from the origin.
func Normalize(spec Spec) (Gun, error) {
	if strings.TrimSpace(spec.Particle) == "" {
		return Gun{}, &IncompleteGunSpecError{Missing: []string{"particle"}}
	}
	g := Gun{Particle: strings.TrimSpace(spec.Particle)}

	if len(spec.Position) > 0 {
		pos, err := geometry.ParseVector("gun position", spec.Position)
		if err != nil {
			return Gun{}, err
		}
		g.Position = pos
	}

	switch {
	case len(spec.Momentum) > 0:
		p, err := geometry.ParseVector("gun momentum", spec.Momentum)
		if err != nil {
			return Gun{}, err
		}
		g.Mode = ModeMomentum
		g.Momentum = p
		if spec.Energy != nil {
			g.Ignored = append(g.Ignored, "energy")
		}
		if len(spec.Direction) > 0 {
			g.Ignored = append(g.Ignored, "direction")
		}
	case spec.Energy != nil:
		if len(spec.Direction) == 0 {
			return Gun{}, &IncompleteGunSpecError{Missing: []string{"direction"}}
		}
		e, err := spec.Energy.Float()
		if err != nil {
			return Gun{}, fmt.Errorf("gun energy: %w", err)
		}
		d, err := geometry.ParseVector("gun direction", spec.Direction)
		if err != nil {
			return Gun{}, err
		}
		g.Mode = ModeEnergy
		g.Energy = e
		g.Direction = d
	default:
		return Gun{}, &IncompleteGunSpecError{Missing: []string{"momentum", "energy"}}
	}
	return g, nil
}
