package config

import (
	"errors"
	"fmt"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/nist"
)

// ErrWorldMismatch indicates two sessions built in different world
// materials.
var ErrWorldMismatch = errors.New("config: world materials do not match")

// Merge returns a new config holding the volumes of c and o. Volumes in o
// replace volumes of c with the same name. Both worlds must be made of the
// same material. Physics list, world size and run options come from c
// unless c leaves them unset; the gun comes from o when o has one.
func (c *Config) Merge(o *Config) (*Config, error) {
	first, second := worldMaterial(c.World), worldMaterial(o.World)
	if first != second {
		return nil, fmt.Errorf("%w: %s vs %s", ErrWorldMismatch, first, second)
	}

	merged := &Config{
		PhysicsList: c.PhysicsList,
		World:       c.World,
		Volumes:     make(map[string]geometry.VolumeSpec, len(c.Volumes)+len(o.Volumes)),
		Gun:         c.Gun,
		Run:         c.Run,
	}
	if merged.PhysicsList == "" {
		merged.PhysicsList = o.PhysicsList
	}
	if len(merged.World.Dimensions) == 0 {
		merged.World.Dimensions = o.World.Dimensions
	}
	for name, v := range c.Volumes {
		merged.Volumes[name] = v
	}
	for name, v := range o.Volumes {
		merged.Volumes[name] = v
	}
	if o.Gun != nil {
		merged.Gun = o.Gun
	}
	return merged, nil
}

func worldMaterial(w geometry.WorldSpec) string {
	if w.Material == "" {
		return nist.Canonical(geometry.DefaultWorldMaterial)
	}
	return nist.Canonical(w.Material)
}
