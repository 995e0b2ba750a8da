package physics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDefault(t *testing.T) {
	l, err := Lookup(Default)
	require.NoError(t, err)
	assert.Equal(t, "FTFP_BERT", l.Name)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("ftfp_bert")
	var unknown *UnknownPhysicsListError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ftfp_bert", unknown.Name)
	assert.Contains(t, err.Error(), "QGSP_BIC")
}

func TestAllOrdered(t *testing.T) {
	all := All()
	require.Len(t, all, len(Names()))
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}
}
