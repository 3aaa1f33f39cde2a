package utils

import "fmt"

// Array4 is a dense rank-4 container with explicit per-axis bounds checks on
// every access. Storage is row-major with axis 0 slowest; DataP exposes the
// backing slice for sequential sweeps that have already validated bounds.
type Array4[T any] struct {
	DataP          []T
	N0, N1, N2, N3 int
}

func NewArray4[T any](n0, n1, n2, n3 int) (R *Array4[T]) {
	if n0 < 1 || n1 < 1 || n2 < 1 || n3 < 1 {
		err := fmt.Errorf("mismatch in allocation: NewArray4 dims = %v,%v,%v,%v", n0, n1, n2, n3)
		panic(err)
	}
	R = &Array4[T]{
		DataP: make([]T, n0*n1*n2*n3),
		N0:    n0,
		N1:    n1,
		N2:    n2,
		N3:    n3,
	}
	return
}

func (a *Array4[T]) Dims() (n0, n1, n2, n3 int) { return a.N0, a.N1, a.N2, a.N3 }

func (a *Array4[T]) Len() int { return len(a.DataP) }

// Offset linearizes (i0,i1,i2,i3), checking each index against its axis.
func (a *Array4[T]) Offset(i0, i1, i2, i3 int) int {
	checkAxis(0, i0, a.N0)
	checkAxis(1, i1, a.N1)
	checkAxis(2, i2, a.N2)
	checkAxis(3, i3, a.N3)
	return ((i0*a.N1+i1)*a.N2+i2)*a.N3 + i3
}

func (a *Array4[T]) At(i0, i1, i2, i3 int) T {
	return a.DataP[a.Offset(i0, i1, i2, i3)]
}

func (a *Array4[T]) Set(i0, i1, i2, i3 int, val T) {
	a.DataP[a.Offset(i0, i1, i2, i3)] = val
}

func checkAxis(axis, i, n int) {
	if i < 0 || i >= n {
		err := fmt.Errorf("index out of bounds on axis %d: index = %d, max_bounds = %d", axis, i, n-1)
		panic(err)
	}
}
