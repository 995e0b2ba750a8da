package geometry

import (
	"fmt"
	"strings"
)

// Kind names a supported solid.
type Kind string

const (
	KindBox    Kind = "Box"
	KindTube   Kind = "Tube"
	KindCone   Kind = "Cone"
	KindSphere Kind = "Sphere"
	KindOrb    Kind = "Orb"
)

// Kinds lists the supported solids in a stable order.
var Kinds = []Kind{KindBox, KindTube, KindCone, KindSphere, KindOrb}

// Shape is a solid with validated parameters.
type Shape interface {
	Kind() Kind
	// Params returns the full parameter list, optional angles included.
	Params() []float64
}

type Box struct {
	DX, DY, DZ float64
}

type Tube struct {
	RMin, RMax, DZ     float64
	StartPhi, DeltaPhi float64
}

type Cone struct {
	RMin1, RMax1, RMin2, RMax2, DZ float64
	StartPhi, DeltaPhi             float64
}

type Sphere struct {
	RMin, RMax             float64
	StartPhi, DeltaPhi     float64
	StartTheta, DeltaTheta float64
}

type Orb struct {
	R float64
}

func (Box) Kind() Kind    { return KindBox }
func (Tube) Kind() Kind   { return KindTube }
func (Cone) Kind() Kind   { return KindCone }
func (Sphere) Kind() Kind { return KindSphere }
func (Orb) Kind() Kind    { return KindOrb }

func (s Box) Params() []float64 { return []float64{s.DX, s.DY, s.DZ} }
func (s Tube) Params() []float64 {
	return []float64{s.RMin, s.RMax, s.DZ, s.StartPhi, s.DeltaPhi}
}
func (s Cone) Params() []float64 {
	return []float64{s.RMin1, s.RMax1, s.RMin2, s.RMax2, s.DZ, s.StartPhi, s.DeltaPhi}
}
func (s Sphere) Params() []float64 {
	return []float64{s.RMin, s.RMax, s.StartPhi, s.DeltaPhi, s.StartTheta, s.DeltaTheta}
}
func (s Orb) Params() []float64 { return []float64{s.R} }

type layout struct {
	params   []string
	required int
	defaults []float64
	build    func(p []float64) Shape
}

var layouts = map[Kind]layout{
	KindBox: {
		params:   []string{"dx", "dy", "dz"},
		required: 3,
		build:    func(p []float64) Shape { return Box{DX: p[0], DY: p[1], DZ: p[2]} },
	},
	KindTube: {
		params:   []string{"rmin", "rmax", "dz", "sphi", "dphi"},
		required: 3,
		defaults: []float64{0, 360},
		build: func(p []float64) Shape {
			return Tube{RMin: p[0], RMax: p[1], DZ: p[2], StartPhi: p[3], DeltaPhi: p[4]}
		},
	},
	KindCone: {
		params:   []string{"rmin1", "rmax1", "rmin2", "rmax2", "dz", "sphi", "dphi"},
		required: 5,
		defaults: []float64{0, 360},
		build: func(p []float64) Shape {
			return Cone{RMin1: p[0], RMax1: p[1], RMin2: p[2], RMax2: p[3], DZ: p[4], StartPhi: p[5], DeltaPhi: p[6]}
		},
	},
	KindSphere: {
		params:   []string{"rmin", "rmax", "sphi", "dphi", "stheta", "dtheta"},
		required: 2,
		defaults: []float64{0, 360, 0, 180},
		build: func(p []float64) Shape {
			return Sphere{RMin: p[0], RMax: p[1], StartPhi: p[2], DeltaPhi: p[3], StartTheta: p[4], DeltaTheta: p[5]}
		},
	},
	KindOrb: {
		params:   []string{"r"},
		required: 1,
		build:    func(p []float64) Shape { return Orb{R: p[0]} },
	},
}

// ParseKind matches a vol_type name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), strings.TrimSpace(name)) {
			return k, nil
		}
	}
	return "", &UnsupportedVolumeTypeError{Type: name, Supported: Kinds}
}

// Signature describes the parameter list a kind expects, optional
// parameters in brackets, e.g. "Tube(rmin, rmax, dz[, sphi, dphi])".
func Signature(k Kind) string {
	l, ok := layouts[k]
	if !ok {
		return string(k) + "(?)"
	}
	var b strings.Builder
	b.WriteString(string(k))
	b.WriteByte('(')
	b.WriteString(strings.Join(l.params[:l.required], ", "))
	if len(l.params) > l.required {
		b.WriteString("[, ")
		b.WriteString(strings.Join(l.params[l.required:], ", "))
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}

// NewShape builds a solid of the given kind from numeric parameters.
func NewShape(k Kind, dims []float64) (Shape, error) {
	l, ok := layouts[k]
	if !ok {
		return nil, &UnsupportedVolumeTypeError{Type: string(k), Supported: Kinds}
	}
	if len(dims) < l.required || len(dims) > len(l.params) {
		return nil, &ArityError{Field: fmt.Sprintf("%s dimensions", k), Signature: Signature(k), Got: len(dims)}
	}
	p := make([]float64, len(l.params))
	copy(p, dims)
	for i := len(dims); i < len(l.params); i++ {
		p[i] = l.defaults[i-l.required]
	}
	return l.build(p), nil
}
