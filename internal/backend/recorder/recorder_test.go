package recorder

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/g4basic/internal/engine"
	"github.com/san-kum/g4basic/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderLogsInOrder(t *testing.T) {
	r := New()
	m, err := r.LookupMaterial("G4_Si")
	require.NoError(t, err)
	v, err := r.CreateVolume("BB", geometry.Box{DX: 1, DY: 2, DZ: 3}, m)
	require.NoError(t, err)
	require.NoError(t, r.Place(v, geometry.Vector{Z: 1}))
	require.NoError(t, r.ApplyCommand(engine.Cmd("/vis/drawVolume")))
	require.NoError(t, r.BeamOn(context.Background(), 10))

	ops := []string{}
	for _, c := range r.Calls() {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []string{OpMaterial, OpVolume, OpPlace, OpCommand, OpBeamOn}, ops)
	assert.Equal(t, []string{"/vis/drawVolume"}, r.Commands())
}

func TestRecorderUnknownMaterial(t *testing.T) {
	r := New()
	_, err := r.LookupMaterial("G4_Unobtainium")
	var unknown *engine.UnknownMaterialError
	assert.True(t, errors.As(err, &unknown))
	assert.Empty(t, r.Calls())

	_, err = r.WithMaterials("G4_Unobtainium").LookupMaterial("G4_Unobtainium")
	assert.NoError(t, err)
}

func TestRecorderReject(t *testing.T) {
	boom := errors.New("boom")
	r := New().RejectWith(func(op, target string) error {
		if op == OpVolume && target == "bad" {
			return boom
		}
		return nil
	})
	m, _ := r.LookupMaterial("G4_Si")
	_, err := r.CreateVolume("bad", geometry.Orb{R: 1}, m)
	assert.ErrorIs(t, err, boom)
	_, err = r.CreateVolume("good", geometry.Orb{R: 1}, m)
	assert.NoError(t, err)
	assert.Len(t, r.CallsTo(OpVolume), 1)
}

func TestRecorderBeamOnCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New().BeamOn(ctx, 1), context.Canceled)
}
