package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/palette"
	"github.com/san-kum/g4basic/internal/units"
)

// Hex converts a colour to #rrggbb, dropping alpha.
func Hex(c palette.RGBA) string {
	scale := func(f float64) int { return int(math.Round(f * 255)) }
	return hexColor(scale(c.R), scale(c.G), scale(c.B))
}

// Swatch renders a two-cell block in the given colour.
func Swatch(c palette.RGBA) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(c))).Render("██")
}

// Length formats a base-unit length with the largest unit that keeps the
// magnitude at or above one.
func Length(mm float64) string {
	switch a := math.Abs(mm); {
	case a >= 1000:
		return fmt.Sprintf("%.6gm", mm/units.Metre)
	case a >= 10:
		return fmt.Sprintf("%.6gcm", mm/units.Centimetre)
	default:
		return fmt.Sprintf("%.6gmm", mm)
	}
}

// Energy formats a base-unit energy the same way Length does.
func Energy(mev float64) string {
	switch a := math.Abs(mev); {
	case a >= 1000:
		return fmt.Sprintf("%.6gGeV", mev/units.GeV)
	case a >= 1 || a == 0:
		return fmt.Sprintf("%.6gMeV", mev)
	default:
		return fmt.Sprintf("%.6gkeV", mev/units.KeV)
	}
}

func vector(v geometry.Vector) string {
	return fmt.Sprintf("(%s, %s, %s)", Length(v.X), Length(v.Y), Length(v.Z))
}

func kv(label, value string) string {
	return Label.Render(fmt.Sprintf("%-10s", label)) + " " + Value.Render(value)
}

// World describes the world volume on one line.
func World(w geometry.World) string {
	return kv("world", fmt.Sprintf("%s %s", w.Material, vector(w.Size)))
}

// Volumes renders one line per volume: swatch, name, solid, material and
// position.
func Volumes(vols []geometry.Volume) string {
	if len(vols) == 0 {
		return Subtle.Render("no volumes")
	}
	width := 0
	for _, v := range vols {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	lines := make([]string, len(vols))
	for i, v := range vols {
		params := make([]string, 0, len(v.Shape.Params()))
		for _, p := range v.Shape.Params() {
			params = append(params, fmt.Sprintf("%g", p))
		}
		lines[i] = fmt.Sprintf("%s %s %s %s %s",
			Swatch(v.Colour),
			Value.Render(fmt.Sprintf("%-*s", width, v.Name)),
			fmt.Sprintf("%s(%s)", v.Shape.Kind(), strings.Join(params, ", ")),
			Label.Render(v.Material),
			Subtle.Render("at "+vector(v.Position)),
		)
	}
	return strings.Join(lines, "\n")
}

// Gun describes the particle source on one line.
func Gun(g gun.Gun) string {
	desc := fmt.Sprintf("%s from %s ", g.Particle, vector(g.Position))
	if g.Mode == gun.ModeMomentum {
		desc += fmt.Sprintf("p=(%s, %s, %s)", Energy(g.Momentum.X), Energy(g.Momentum.Y), Energy(g.Momentum.Z))
	} else {
		desc += fmt.Sprintf("E=%s dir=(%g, %g, %g)", Energy(g.Energy), g.Direction.X, g.Direction.Y, g.Direction.Z)
	}
	return kv("gun", desc)
}

// Plan numbers the UI commands a run will issue.
func Plan(cmds []engine.Command) string {
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = Subtle.Render(fmt.Sprintf("%2d ", i+1)) + Command.Render(c.String())
	}
	return strings.Join(lines, "\n")
}

// Section renders a header above a body.
func Section(title, body string) string {
	return Header.Render(title) + "\n" + body
}
