package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_AbsentKeys(t *testing.T) {
	o := New()

	_, ok := o.TryGetString("missing")
	assert.False(t, ok)
	assert.Equal(t, 0, o.GetInt("missing"))
	assert.False(t, o.GetBool("missing"))
	_, ok = o.TryGetObject("missing")
	assert.False(t, ok)
}

func TestObject_TypeMismatch(t *testing.T) {
	o := New()
	o.SetString("k", "v")

	_, ok := o.TryGetInt("k")
	assert.False(t, ok)
	_, ok = o.TryGetObject("k")
	assert.False(t, ok)

	o.SetInt("n", 4)
	f, ok := o.TryGetFloat("n")
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)
}

func TestObject_Nested(t *testing.T) {
	o := New()
	unit := o.GetOrCreateObject("creeps").GetOrCreateObject("alpha")
	unit.SetString(KeyJob, "miner")

	again := o.GetOrCreateObject("creeps").GetOrCreateObject("alpha")
	assert.Equal(t, "miner", again.GetString(KeyJob))

	o.SetString("scalar", "x")
	replaced := o.GetOrCreateObject("scalar")
	assert.Equal(t, 0, replaced.Len())
}

func TestObject_JSONRoundTrip(t *testing.T) {
	o := New()
	o.SetInt("tick", 12)
	o.SetFloat("ratio", 0.5)
	o.SetBool("flag", true)
	o.GetOrCreateObject("rooms").GetOrCreateObject("W1N1").SetInt("additionalExtensions", 2)

	raw, err := o.MarshalJSON()
	require.NoError(t, err)

	back, err := FromJSON(raw)
	require.NoError(t, err)

	tick, ok := back.TryGetInt("tick")
	require.True(t, ok)
	assert.Equal(t, 12, tick)
	assert.Equal(t, 0.5, back.(*node).data["ratio"])
	assert.True(t, back.GetBool("flag"))

	rooms, ok := back.TryGetObject("rooms")
	require.True(t, ok)
	room, ok := rooms.TryGetObject("W1N1")
	require.True(t, ok)
	assert.Equal(t, 2, room.GetInt("additionalExtensions"))
}

func TestObject_UnmarshalRejectsArrays(t *testing.T) {
	_, err := FromJSON([]byte(`{"a":[1,2]}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = FromJSON([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestClone_IsDetached(t *testing.T) {
	o := New()
	o.GetOrCreateObject("a").SetInt("b", 1)

	c, err := Clone(o)
	require.NoError(t, err)
	o.GetOrCreateObject("a").SetInt("b", 2)

	a, _ := c.TryGetObject("a")
	assert.Equal(t, 1, a.GetInt("b"))
}

func TestObject_DeleteAndClear(t *testing.T) {
	o := New()
	o.SetInt("a", 1)
	o.SetInt("b", 2)
	assert.Equal(t, []string{"a", "b"}, o.Keys())

	o.Delete("a")
	assert.False(t, o.Has("a"))
	o.Clear()
	assert.Equal(t, 0, o.Len())
}
