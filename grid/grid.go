// Package grid provides a dense, row-major 3D container, one instance of
// which backs each octree refinement level in package space.
package grid

import "fmt"

// Grid3D is a dense 3D array of cells, flattened row-major with x varying
// slowest — matching the nested-loop order package space uses when
// classifying top-level voxels (spec.md §4.3: "the outer (i,j,k) loop
// visits x-slowest").
type Grid3D[T any] struct {
	nx, ny, nz int
	cells      []T
}

// New allocates a Grid3D of the given dimensions, zero-valued.
func New[T any](nx, ny, nz int) *Grid3D[T] {
	return &Grid3D[T]{
		nx: nx, ny: ny, nz: nz,
		cells: make([]T, nx*ny*nz),
	}
}

// Dims returns the grid's dimensions.
func (g *Grid3D[T]) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// Len returns the total number of cells.
func (g *Grid3D[T]) Len() int { return len(g.cells) }

// index converts a 3D coordinate into a flat index. x varies slowest and
// z fastest, matching package space's x-outer, z-inner traversal, so cells
// consecutive in z (the innermost loop body in pass 1/2) are contiguous in
// memory.
func (g *Grid3D[T]) index(x, y, z int) int {
	return x*g.ny*g.nz + y*g.nz + z
}

// InBounds reports whether (x, y, z) is a valid cell coordinate.
func (g *Grid3D[T]) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny && z >= 0 && z < g.nz
}

// At returns the cell at (x, y, z). It panics if out of bounds, with a
// message identifying the offending coordinate (Space.coordInBounds in the
// original silently returned false instead; this module prefers to fail
// loudly on programmer error, per spec.md §7's "programmer errors...must
// abort the process with diagnostic").
func (g *Grid3D[T]) At(x, y, z int) T {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("grid: coordinate (%d,%d,%d) out of bounds (%d,%d,%d)", x, y, z, g.nx, g.ny, g.nz))
	}
	return g.cells[g.index(x, y, z)]
}

// Set assigns the cell at (x, y, z). It panics if out of bounds.
func (g *Grid3D[T]) Set(x, y, z int, v T) {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("grid: coordinate (%d,%d,%d) out of bounds (%d,%d,%d)", x, y, z, g.nx, g.ny, g.nz))
	}
	g.cells[g.index(x, y, z)] = v
}

// Fill sets every cell to v.
func (g *Grid3D[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// Each calls f for every cell coordinate, x-slowest, z-fastest.
func (g *Grid3D[T]) Each(f func(x, y, z int, v T)) {
	for x := 0; x < g.nx; x++ {
		for y := 0; y < g.ny; y++ {
			for z := 0; z < g.nz; z++ {
				f(x, y, z, g.cells[g.index(x, y, z)])
			}
		}
	}
}
