package dynamo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rigidsim/internal/vecmath"
)

func TestForceConstructors(t *testing.T) {
	v := vecmath.New(4.0, 0.0)

	imp := Impulse(v)
	assert.Equal(t, uint64(1), imp.Ticks)
	assert.False(t, imp.Enabled)
	assert.True(t, imp.Active())

	uni := Uniform(v, 30)
	assert.Equal(t, uint64(30), uni.Ticks)
	assert.False(t, uni.Enabled)

	cont := Continuous(v)
	assert.True(t, cont.Enabled)
	assert.True(t, cont.Active())

	assert.False(t, Uniform(v, 0).Active())
}

func TestAge(t *testing.T) {
	forces := []Force[float64]{
		Impulse(vecmath.New(1.0)),
		Uniform(vecmath.New(2.0), 3),
		Continuous(vecmath.New(3.0)),
	}

	aged := Age(forces)
	require.Len(t, aged, 2, "impulse should expire after one tick")
	assert.Equal(t, uint64(2), aged[0].Ticks)
	assert.True(t, aged[1].Enabled)

	assert.Equal(t, uint64(1), forces[0].Ticks, "input slice must not change")

	for i := 0; i < 2; i++ {
		aged = Age(aged)
	}
	require.Len(t, aged, 1)
	assert.True(t, aged[0].Enabled, "continuous force outlives uniform ones")

	for i := 0; i < 100; i++ {
		aged = Age(aged)
	}
	assert.Len(t, aged, 1)
}

func TestForceClone(t *testing.T) {
	f := Impulse(vecmath.New(1.0, 2.0))
	c := f.Clone()
	c.Vector[0] = 9

	assert.Equal(t, 1.0, f.Vector[0])
}
