package storage

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/palette"
	"github.com/san-kum/g4basic/internal/session"
)

type RunMetadata struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Timestamp   time.Time      `json:"timestamp"`
	PhysicsList string         `json:"physics_list"`
	World       WorldRecord    `json:"world"`
	Volumes     []VolumeRecord `json:"volumes"`
	Gun         *GunRecord     `json:"gun,omitempty"`
	Events      int            `json:"events"`
	Viewer      string         `json:"viewer"`
	Files       []string       `json:"files"`
}

type WorldRecord struct {
	Material string          `json:"material"`
	Size     geometry.Vector `json:"size"`
}

type VolumeRecord struct {
	Name     string          `json:"name"`
	Kind     geometry.Kind   `json:"kind"`
	Params   []float64       `json:"params"`
	Material string          `json:"material"`
	Position geometry.Vector `json:"position"`
	Colour   palette.RGBA    `json:"colour"`
}

type GunRecord struct {
	Particle  string           `json:"particle"`
	Mode      string           `json:"mode"`
	Position  geometry.Vector  `json:"position"`
	Momentum  *geometry.Vector `json:"momentum,omitempty"`
	Energy    float64          `json:"energy,omitempty"`
	Direction *geometry.Vector `json:"direction,omitempty"`
}

// Describe captures the built state of a session and the run options used
// to drive it.
func Describe(name string, s *session.Session, opts session.RunOptions) RunMetadata {
	w := s.World()
	meta := RunMetadata{
		Name:        name,
		PhysicsList: s.PhysicsList(),
		World:       WorldRecord{Material: w.Material, Size: w.Size},
		Volumes:     []VolumeRecord{},
		Events:      opts.Events,
		Viewer:      opts.Viewer,
	}
	for _, v := range s.Volumes() {
		meta.Volumes = append(meta.Volumes, VolumeRecord{
			Name:     v.Name,
			Kind:     v.Shape.Kind(),
			Params:   v.Shape.Params(),
			Material: v.Material,
			Position: v.Position,
			Colour:   v.Colour,
		})
	}
	if g, ok := s.Gun(); ok {
		rec := &GunRecord{Particle: g.Particle, Mode: g.Mode.String(), Position: g.Position}
		switch g.Mode {
		case gun.ModeMomentum:
			p := g.Momentum
			rec.Momentum = &p
		default:
			d := g.Direction
			rec.Energy = g.Energy
			rec.Direction = &d
		}
		meta.Gun = rec
	}
	return meta
}

func ExportJSON(w io.Writer, meta RunMetadata) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(meta)
}

func ExportJSONFile(path string, meta RunMetadata) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportJSON(file, meta); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
