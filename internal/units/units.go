package units

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Dimension is the physical quantity a unit measures.
type Dimension string

const (
	Length Dimension = "length"
	Energy Dimension = "energy"
)

// Base unit factors.
const (
	Millimetre = 1.0
	Centimetre = 10 * Millimetre
	Metre      = 1000 * Millimetre

	MeV = 1.0
	GeV = 1000 * MeV
	KeV = 1e-3 * MeV
)

// Unit is a recognised suffix and its conversion factor to the base unit.
type Unit struct {
	Symbol    string
	Factor    float64
	Dimension Dimension
}

var table = []Unit{
	{Symbol: "MeV", Factor: MeV, Dimension: Energy},
	{Symbol: "GeV", Factor: GeV, Dimension: Energy},
	{Symbol: "keV", Factor: KeV, Dimension: Energy},
	{Symbol: "cm", Factor: Centimetre, Dimension: Length},
	{Symbol: "mm", Factor: Millimetre, Dimension: Length},
	{Symbol: "m", Factor: Metre, Dimension: Length},
}

// bySuffixLength holds the table ordered longest symbol first.
var bySuffixLength = func() []Unit {
	out := make([]Unit, len(table))
	copy(out, table)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Symbol) > len(out[j].Symbol)
	})
	return out
}()

// Units returns the supported suffixes in declaration order.
func Units() []Unit {
	out := make([]Unit, len(table))
	copy(out, table)
	return out
}

// Base returns the symbol of the base unit for d.
func (d Dimension) Base() string {
	switch d {
	case Length:
		return "mm"
	case Energy:
		return "MeV"
	}
	return ""
}

// Suffix returns the unit Parse applies to s: the longest symbol s ends
// with. A bare number has no unit.
func Suffix(s string) (Unit, bool) {
	text := strings.TrimSpace(s)
	for _, u := range bySuffixLength {
		if strings.HasSuffix(text, u.Symbol) {
			return u, true
		}
	}
	return Unit{}, false
}

// Parse converts a single textual token into base units.
func Parse(s string) (float64, error) {
	u, ok := Suffix(s)
	if !ok {
		f, err := parseFloat(strings.TrimSpace(s))
		if err != nil {
			return 0, &MalformedUnitError{Token: s, Err: err}
		}
		return f, nil
	}
	magnitude := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), u.Symbol))
	f, err := parseFloat(magnitude)
	if err != nil {
		return 0, &MalformedUnitError{Token: s, Suffix: u.Symbol, Err: err}
	}
	return f * u.Factor, nil
}

// ParseAll parses tokens element-wise, preserving order.
func ParseAll(tokens []Token) ([]float64, error) {
	out := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := t.Float()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}
