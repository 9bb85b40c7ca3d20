package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceRoundTripThroughDriver(t *testing.T) {
	in := StringSlice{"parcel-tracking.operator.full-permit", "any"}
	v, err := in.Value()
	require.NoError(t, err)

	var out StringSlice
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
	assert.True(t, out.Has("any"))
	assert.False(t, out.Has("admin"))

	require.NoError(t, out.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringSlice{"x"}, out)
}

func TestStringSliceNil(t *testing.T) {
	var ss StringSlice
	v, err := ss.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, ss.Scan(nil))
	assert.Nil(t, ss)
	assert.Error(t, ss.Scan(42))
}
