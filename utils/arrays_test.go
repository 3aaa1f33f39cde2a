package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray4(t *testing.T) {
	// Layout, axis 0 slowest, axis 3 fastest
	{
		A := NewArray4[int](2, 3, 4, 5)
		assert.Equal(t, 120, A.Len())
		assert.Equal(t, 0, A.Offset(0, 0, 0, 0))
		assert.Equal(t, 1, A.Offset(0, 0, 0, 1))
		assert.Equal(t, 5, A.Offset(0, 0, 1, 0))
		assert.Equal(t, 20, A.Offset(0, 1, 0, 0))
		assert.Equal(t, 60, A.Offset(1, 0, 0, 0))
		A.Set(1, 2, 3, 4, 42)
		assert.Equal(t, 42, A.At(1, 2, 3, 4))
		assert.Equal(t, 42, A.DataP[119])
	}
	// Every axis is checked on every access
	{
		A := NewArray4[float64](2, 2, 2, 2)
		assert.Panics(t, func() { A.At(2, 0, 0, 0) })
		assert.Panics(t, func() { A.At(0, -1, 0, 0) })
		assert.Panics(t, func() { A.Set(0, 0, 2, 0, 1.) })
		assert.Panics(t, func() { A.Offset(0, 0, 0, 2) })
		assert.Panics(t, func() { NewArray4[int](0, 1, 1, 1) })
	}
	// Dims round trip
	{
		A := NewArray4[byte](4, 1, 2, 3)
		n0, n1, n2, n3 := A.Dims()
		assert.Equal(t, [4]int{4, 1, 2, 3}, [4]int{n0, n1, n2, n3})
	}
}
