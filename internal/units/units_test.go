package units

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseBareNumberIsIdentity(t *testing.T) {
	for _, x := range []float64{0, 1, -20, 0.1, 3.75e4, -1e-3} {
		got, err := Parse(strconv.FormatFloat(x, 'g', -1, 64))
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}

func TestParseSuffixes(t *testing.T) {
	cases := []struct {
		token string
		want  float64
	}{
		{"5m", 5000},
		{"-20m", -20000},
		{"2.5cm", 25},
		{"7mm", 7},
		{"100GeV", 100000},
		{"50MeV", 50},
		{"3keV", 0.003},
		{" 4 m ", 4000},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := Parse(tc.token)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseEverySuffixScales(t *testing.T) {
	for _, u := range Units() {
		for _, x := range []float64{1, -3, 0.25} {
			got, err := Parse(strconv.FormatFloat(x, 'g', -1, 64) + u.Symbol)
			require.NoError(t, err)
			assert.InDelta(t, x*u.Factor, got, 1e-9, u.Symbol)
		}
	}
}

func TestParseLongestSuffixWins(t *testing.T) {
	mm, err := Parse("5mm")
	require.NoError(t, err)
	m, err := Parse("5m")
	require.NoError(t, err)
	one, err := Parse("1m")
	require.NoError(t, err)

	assert.NotEqual(t, m, mm)
	assert.InDelta(t, 0.005*one, mm, 1e-9)

	mev, err := Parse("1MeV")
	require.NoError(t, err)
	assert.Equal(t, MeV, mev)
}

func TestSuffix(t *testing.T) {
	cases := []struct {
		token  string
		symbol string
		dim    Dimension
	}{
		{"5mm", "mm", Length},
		{"5m", "m", Length},
		{" 2.5cm ", "cm", Length},
		{"100GeV", "GeV", Energy},
		{"3keV", "keV", Energy},
	}
	for _, tc := range cases {
		u, ok := Suffix(tc.token)
		require.True(t, ok, tc.token)
		assert.Equal(t, tc.symbol, u.Symbol, tc.token)
		assert.Equal(t, tc.dim, u.Dimension, tc.token)
	}

	_, ok := Suffix("42")
	assert.False(t, ok)
}

func TestDimensionBase(t *testing.T) {
	assert.Equal(t, "mm", Length.Base())
	assert.Equal(t, "MeV", Energy.Base())
	assert.Equal(t, "", Dimension("time").Base())
	for _, u := range Units() {
		if u.Factor == 1 {
			assert.Equal(t, u.Dimension.Base(), u.Symbol)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, token := range []string{"m", "GeV", "abc", "5 furlongs", "", "NaN", "1e400m"} {
		_, err := Parse(token)
		var malformed *MalformedUnitError
		assert.True(t, errors.As(err, &malformed), "token %q", token)
	}
}

func TestParseAllPreservesOrder(t *testing.T) {
	got, err := ParseAll(Tokens(0.1, "2.5m", "4m", 7))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 2500, 4000, 7}, got)

	_, err = ParseAll(Tokens(1, "x"))
	assert.Error(t, err)
}

func TestTokenYAML(t *testing.T) {
	var doc struct {
		Position []Token `yaml:"position"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("position: [0, 1.5, '-5m']"), &doc))
	require.Len(t, doc.Position, 3)
	assert.True(t, doc.Position[0].IsNumeric())
	assert.False(t, doc.Position[2].IsNumeric())

	got, err := ParseAll(doc.Position)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, -5000}, got)
}

func TestTokenTOML(t *testing.T) {
	var tok Token
	require.NoError(t, tok.UnmarshalTOML(int64(3)))
	v, err := tok.Float()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	require.NoError(t, tok.UnmarshalTOML("3cm"))
	v, err = tok.Float()
	require.NoError(t, err)
	assert.Equal(t, 30.0, v)

	assert.Error(t, tok.UnmarshalTOML(true))
}

func TestTokenJSON(t *testing.T) {
	data, err := json.Marshal(Tokens(0.1, "2.5m", -4))
	require.NoError(t, err)
	assert.JSONEq(t, `[0.1, "2.5m", -4]`, string(data))

	var back []Token
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 3)
	assert.True(t, back[0].IsNumeric())
	assert.Equal(t, "2.5m", back[1].String())
	got, err := ParseAll(back)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 2500, -4}, got)

	var tok Token
	assert.Error(t, json.Unmarshal([]byte(`true`), &tok))
	assert.Error(t, json.Unmarshal([]byte(`{"x": 1}`), &tok))
}
