package circular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_PushGet(t *testing.T) {
	b := NewBuffer[int](3)

	assert.Equal(t, uint(3), b.Capacity())
	assert.Equal(t, uint(0), b.Size())
	assert.False(t, b.IsFull())

	b.Push(1)
	b.Push(2)

	assert.Equal(t, uint(2), b.Size())
	assert.Equal(t, 2, b.Get(0))
	assert.Equal(t, 1, b.Get(1))
}

func TestBuffer_Eviction(t *testing.T) {
	b := NewBuffer[int](3)

	for i := 1; i <= 5; i++ {
		b.Push(i)
	}

	assert.True(t, b.IsFull())
	assert.Equal(t, uint(3), b.Size())
	assert.Equal(t, 5, b.Get(0))
	assert.Equal(t, 4, b.Get(1))
	assert.Equal(t, 3, b.Get(2))
}

func TestBuffer_Values(t *testing.T) {
	b := NewBuffer[int](3)

	assert.Empty(t, b.Values())

	b.Push(1)
	b.Push(2)
	assert.Equal(t, []int{1, 2}, b.Values())

	b.Push(3)
	b.Push(4)
	assert.Equal(t, []int{2, 3, 4}, b.Values())
}

func TestBuffer_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuffer[int](0)
	})

	b := NewBuffer[int](2)
	b.Push(1)
	assert.Panics(t, func() {
		b.Get(1)
	})
}
