package gun

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/san-kum/g4basic/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func energy(v any) *units.Token {
	t := units.Of(v)
	return &t
}

func TestNormalizeEnergyDirection(t *testing.T) {
	g, err := Normalize(Spec{
		Particle:  "proton",
		Energy:    energy("50GeV"),
		Direction: units.Tokens(0, 0, 1),
		Position:  units.Tokens(0, 0, "-5m"),
	})
	require.NoError(t, err)
	assert.Equal(t, ModeEnergy, g.Mode)
	assert.Equal(t, 50000.0, g.Energy)
	assert.Equal(t, geometry.Vector{Z: 1}, g.Direction)
	assert.Equal(t, geometry.Vector{Z: -5000}, g.Position)
	assert.Empty(t, g.Ignored)
}

func TestNormalizeMomentumWins(t *testing.T) {
	g, err := Normalize(Spec{
		Particle:  "e-",
		Energy:    energy("100GeV"),
		Direction: units.Tokens(1, 0, 0),
		Momentum:  units.Tokens(0, 0, "100GeV"),
		Position:  units.Tokens(0, 0, "-1m"),
	})
	require.NoError(t, err)
	assert.Equal(t, ModeMomentum, g.Mode)
	assert.Equal(t, geometry.Vector{Z: 100000}, g.Momentum)
	assert.Zero(t, g.Energy)
	assert.Equal(t, geometry.Vector{}, g.Direction)
	assert.Equal(t, []string{"energy", "direction"}, g.Ignored)
}

func TestNormalizeIncomplete(t *testing.T) {
	cases := map[string]Spec{
		"no kinematics":  {Particle: "proton"},
		"energy only":    {Particle: "proton", Energy: energy("1GeV")},
		"no particle":    {Momentum: units.Tokens(0, 0, 1)},
		"blank particle": {Particle: "  ", Momentum: units.Tokens(0, 0, 1)},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(spec)
			var incomplete *IncompleteGunSpecError
			assert.True(t, errors.As(err, &incomplete))
		})
	}
}

func TestNormalizeBadVectors(t *testing.T) {
	_, err := Normalize(Spec{Particle: "mu-", Momentum: units.Tokens(0, 1)})
	var arity *geometry.ArityError
	assert.True(t, errors.As(err, &arity))

	_, err = Normalize(Spec{Particle: "mu-", Energy: energy("lots"), Direction: units.Tokens(0, 0, 1)})
	var malformed *units.MalformedUnitError
	assert.True(t, errors.As(err, &malformed))
}

func TestSpecJSON(t *testing.T) {
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(`{
		"particle": "proton",
		"position": [0, 0, "-5m"],
		"energy": "50GeV",
		"direction": [0, 0, 1]
	}`), &spec))

	g, err := Normalize(spec)
	require.NoError(t, err)
	assert.Equal(t, ModeEnergy, g.Mode)
	assert.Equal(t, 50000.0, g.Energy)
	assert.Equal(t, geometry.Vector{Z: -5000}, g.Position)

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"energy":"50GeV"`)
	assert.Contains(t, string(data), `"position":[0,0,"-5m"]`)
}
