package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := NewMap[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 30)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, []int{30, 1, 2}, m.Values())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 30, v)
}

func TestMap_Delete(t *testing.T) {
	m := NewMap[string, int]()
	for i, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, i)
	}

	assert.True(t, m.Delete("b"))
	assert.False(t, m.Delete("b"))
	assert.False(t, m.Has("b"))
	assert.Equal(t, []string{"a", "c", "d"}, m.Keys())

	m.Set("b", 9)
	assert.Equal(t, []string{"a", "c", "d", "b"}, m.Keys())
	assert.True(t, m.Delete("c"))
	assert.Equal(t, []string{"a", "d", "b"}, m.Keys())
}

func TestMap_AllStopsEarly(t *testing.T) {
	m := NewMap[int, string]()
	m.Set(1, "x")
	m.Set(2, "y")
	m.Set(3, "z")

	var seen []int
	for k := range m.All() {
		seen = append(seen, k)
		if k == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
}
