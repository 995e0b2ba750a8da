package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/gun"
	"github.com/san-kum/g4basic/internal/physics"
	"github.com/san-kum/g4basic/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultViewer = "OGL"
	DefaultTheta  = 80.0
	DefaultPhi    = 20.0
	DefaultStyle  = session.StyleWireframe
)

type Config struct {
	PhysicsList string                         `yaml:"physics_list" toml:"physics_list"`
	World       geometry.WorldSpec             `yaml:"world,omitempty" toml:"world"`
	Volumes     map[string]geometry.VolumeSpec `yaml:"volumes,omitempty" toml:"volumes"`
	Gun         *gun.Spec                      `yaml:"gun,omitempty" toml:"gun"`
	Run         RunConfig                      `yaml:"run" toml:"run"`
}

type RunConfig struct {
	Events       int       `yaml:"events" toml:"events"`
	Verbose      int       `yaml:"verbose" toml:"verbose"`
	Viewer       string    `yaml:"viewer" toml:"viewer"`
	ThetaPhi     []float64 `yaml:"theta_phi,flow" toml:"theta_phi"`
	Style        string    `yaml:"style" toml:"style"`
	Hits         bool      `yaml:"hits" toml:"hits"`
	Trajectories bool      `yaml:"trajectories" toml:"trajectories"`
	Logo         bool      `yaml:"logo" toml:"logo"`
}

func DefaultConfig() *Config {
	return &Config{
		PhysicsList: physics.Default,
		Volumes:     map[string]geometry.VolumeSpec{},
		Run: RunConfig{
			Viewer:   DefaultViewer,
			ThetaPhi: []float64{DefaultTheta, DefaultPhi},
			Style:    DefaultStyle,
		},
	}
}

// Load reads a YAML or TOML session file, chosen by extension, on top of
// DefaultConfig. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isTOML(path) {
		return ParseTOML(data)
	}
	return ParseYAML(data)
}

func ParseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func ParseTOML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	if isTOML(path) {
		return fmt.Errorf("config: saving TOML is not supported, use .yaml")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func (c *Config) SessionConfig() session.Config {
	return session.Config{
		PhysicsList: c.PhysicsList,
		World:       c.World,
		Volumes:     c.Volumes,
		Gun:         c.Gun,
	}
}

func (c *Config) RunOptions() (session.RunOptions, error) {
	opts := session.RunOptions{
		Events:       c.Run.Events,
		Verbose:      c.Run.Verbose,
		Viewer:       c.Run.Viewer,
		Theta:        DefaultTheta,
		Phi:          DefaultPhi,
		Style:        c.Run.Style,
		Hits:         c.Run.Hits,
		Trajectories: c.Run.Trajectories,
		Logo:         c.Run.Logo,
	}
	switch len(c.Run.ThetaPhi) {
	case 0:
	case 2:
		opts.Theta, opts.Phi = c.Run.ThetaPhi[0], c.Run.ThetaPhi[1]
	default:
		return session.RunOptions{}, fmt.Errorf("config: theta_phi needs 2 values, got %d", len(c.Run.ThetaPhi))
	}
	if opts.Viewer == "" {
		opts.Viewer = DefaultViewer
	}
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	return opts, nil
}
