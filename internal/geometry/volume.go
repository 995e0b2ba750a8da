package geometry

import (
	"fmt"
	"sort"

	"github.com/san-kum/g4basic/internal/nist"
	"github.com/san-kum/g4basic/internal/palette"
	"github.com/san-kum/g4basic/internal/units"
)

// Vector is a point or direction in base units.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// ParseVector reads exactly three tokens.
func ParseVector(field string, tokens []units.Token) (Vector, error) {
	if len(tokens) != 3 {
		return Vector{}, &ArityError{Field: field, Signature: "(x, y, z)", Got: len(tokens)}
	}
	vals, err := units.ParseAll(tokens)
	if err != nil {
		return Vector{}, fmt.Errorf("%s: %w", field, err)
	}
	return Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// VolumeSpec is the caller-facing description of one volume.
type VolumeSpec struct {
	VolType    string        `yaml:"vol_type" toml:"vol_type" json:"vol_type"`
	Material   string        `yaml:"material" toml:"material" json:"material"`
	Dimensions []units.Token `yaml:"dimensions" toml:"dimensions" json:"dimensions"`
	Position   []units.Token `yaml:"position,omitempty" toml:"position" json:"position,omitempty"`
	// Colour is a palette name, an RGBA sequence, or nil for the default.
	Colour any `yaml:"colour,omitempty" toml:"colour" json:"colour,omitempty"`
}

// Volume is a normalized VolumeSpec.
type Volume struct {
	Name     string
	Shape    Shape
	Material string
	Position Vector
	Colour   palette.RGBA
}

// Normalize validates a spec and converts every token to base units. The
// shape type is checked before anything else is parsed. An omitted
// position places the volume at the origin.
func Normalize(name string, spec VolumeSpec) (Volume, error) {
	kind, err := ParseKind(spec.VolType)
	if err != nil {
		return Volume{}, fmt.Errorf("volume %q: %w", name, err)
	}
	if spec.Material == "" {
		return Volume{}, fmt.Errorf("volume %q: %w", name, ErrMissingMaterial)
	}

	dims, err := units.ParseAll(spec.Dimensions)
	if err != nil {
		return Volume{}, fmt.Errorf("volume %q dimensions: %w", name, err)
	}
	shape, err := NewShape(kind, dims)
	if err != nil {
		return Volume{}, fmt.Errorf("volume %q: %w", name, err)
	}

	var pos Vector
	if len(spec.Position) > 0 {
		pos, err = ParseVector("position", spec.Position)
		if err != nil {
			return Volume{}, fmt.Errorf("volume %q: %w", name, err)
		}
	}

	colour, err := palette.Resolve(spec.Colour)
	if err != nil {
		return Volume{}, fmt.Errorf("volume %q: %w", name, err)
	}

	return Volume{
		Name:     name,
		Shape:    shape,
		Material: nist.Canonical(spec.Material),
		Position: pos,
		Colour:   colour,
	}, nil
}

// NormalizeAll normalizes a name-keyed set of specs in name order.
func NormalizeAll(specs map[string]VolumeSpec) ([]Volume, error) {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Volume, 0, len(names))
	for _, name := range names {
		v, err := Normalize(name, specs[name])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Default world description, full lengths.
const DefaultWorldMaterial = "AIR"

var DefaultWorldDimensions = units.Tokens("20m", "20m", "20m")

// WorldSpec describes the enclosing world volume.
type WorldSpec struct {
	Material   string        `yaml:"material,omitempty" toml:"material" json:"material,omitempty"`
	Dimensions []units.Token `yaml:"dimensions,omitempty" toml:"dimensions" json:"dimensions,omitempty"`
}

// World is a normalized WorldSpec.
type World struct {
	Material string
	Size     Vector
}

// NormalizeWorld fills defaults and converts units.
func NormalizeWorld(spec WorldSpec) (World, error) {
	material := spec.Material
	if material == "" {
		material = DefaultWorldMaterial
	}
	dims := spec.Dimensions
	if len(dims) == 0 {
		dims = DefaultWorldDimensions
	}
	size, err := ParseVector("world dimensions", dims)
	if err != nil {
		return World{}, err
	}
	return World{Material: nist.Canonical(material), Size: size}, nil
}
