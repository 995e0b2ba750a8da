// Package palette resolves colour names and RGBA tuples for volume
// visualization attributes.
package palette

import (
	"fmt"
	"sort"
	"strings"
)

// RGBA is a colour with components in [0, 1].
type RGBA struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

// NewRGBA constructs a colour.
func NewRGBA(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

func (c RGBA) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

var (
	Red     = NewRGBA(1, 0, 0, 1)
	Green   = NewRGBA(0, 1, 0, 1)
	Blue    = NewRGBA(0, 0, 1, 1)
	Yellow  = NewRGBA(1, 1, 0, 1)
	Cyan    = NewRGBA(0, 1, 1, 1)
	Magenta = NewRGBA(1, 0, 1, 1)
	White   = NewRGBA(1, 1, 1, 1)
	Black   = NewRGBA(0, 0, 0, 1)

	// Default is applied to volumes that do not name a colour.
	Default = White
)

var named = map[string]RGBA{
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"cyan":    Cyan,
	"magenta": Magenta,
	"white":   White,
	"black":   Black,
}

// UnknownColourError reports a colour that is neither a palette name nor a
// valid RGBA tuple.
type UnknownColourError struct {
	Value  any
	Reason string
}

func (e *UnknownColourError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("palette: invalid colour %v: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("palette: unknown colour %v (known: %s)", e.Value, strings.Join(Names(), ", "))
}

// Names lists the palette in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a palette colour by case-insensitive name.
func Lookup(name string) (RGBA, error) {
	c, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return RGBA{}, &UnknownColourError{Value: name}
	}
	return c, nil
}

// Resolve accepts a palette name, an RGBA value, or a sequence of three or
// four numeric components. A nil value yields Default.
func Resolve(v any) (RGBA, error) {
	switch x := v.(type) {
	case nil:
		return Default, nil
	case RGBA:
		if err := validate(x); err != nil {
			return RGBA{}, err
		}
		return x, nil
	case string:
		return Lookup(x)
	case []float64:
		return fromComponents(v, x)
	case []any:
		comps := make([]float64, len(x))
		for i, c := range x {
			f, ok := toFloat(c)
			if !ok {
				return RGBA{}, &UnknownColourError{Value: v, Reason: fmt.Sprintf("component %d is %T", i, c)}
			}
			comps[i] = f
		}
		return fromComponents(v, comps)
	default:
		return RGBA{}, &UnknownColourError{Value: v, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

func fromComponents(orig any, comps []float64) (RGBA, error) {
	var c RGBA
	switch len(comps) {
	case 3:
		c = NewRGBA(comps[0], comps[1], comps[2], 1)
	case 4:
		c = NewRGBA(comps[0], comps[1], comps[2], comps[3])
	default:
		return RGBA{}, &UnknownColourError{Value: orig, Reason: fmt.Sprintf("want 3 or 4 components, got %d", len(comps))}
	}
	if err := validate(c); err != nil {
		return RGBA{}, &UnknownColourError{Value: orig, Reason: err.(*UnknownColourError).Reason}
	}
	return c, nil
}

func validate(c RGBA) error {
	for _, f := range []float64{c.R, c.G, c.B, c.A} {
		if !(f >= 0 && f <= 1) {
			return &UnknownColourError{Value: c, Reason: "components must lie in [0, 1]"}
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
