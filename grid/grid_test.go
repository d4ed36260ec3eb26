package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmaglic/ballpit/grid"
)

func TestSetAndAt(t *testing.T) {
	g := grid.New[int](2, 3, 4)
	g.Set(1, 2, 3, 42)
	require.Equal(t, 42, g.At(1, 2, 3))
	require.Equal(t, 0, g.At(0, 0, 0))
}

func TestDimsAndLen(t *testing.T) {
	g := grid.New[int](2, 3, 4)
	nx, ny, nz := g.Dims()
	require.Equal(t, 2, nx)
	require.Equal(t, 3, ny)
	require.Equal(t, 4, nz)
	require.Equal(t, 24, g.Len())
}

func TestInBounds(t *testing.T) {
	g := grid.New[int](2, 2, 2)
	require.True(t, g.InBounds(0, 0, 0))
	require.True(t, g.InBounds(1, 1, 1))
	require.False(t, g.InBounds(2, 0, 0))
	require.False(t, g.InBounds(-1, 0, 0))
}

func TestAtPanicsOutOfBounds(t *testing.T) {
	g := grid.New[int](1, 1, 1)
	require.Panics(t, func() { g.At(5, 0, 0) })
}

func TestFill(t *testing.T) {
	g := grid.New[int](2, 2, 2)
	g.Fill(7)
	g.Each(func(x, y, z int, v int) {
		require.Equal(t, 7, v)
	})
}
