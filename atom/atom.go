// Package atom provides the flat collection of atoms that every other
// package in this module builds on: a position, a van der Waals radius,
// and an element symbol, plus a few read-only queries over the collection.
package atom

import "math"

// Atom is an immutable point in space with a van der Waals radius.
//
// Position and radius are in ångström.
type Atom struct {
	// Pos is the atom's center, (x, y, z).
	Pos [3]float64
	// Rad is the van der Waals radius. Must be > 0 for a valid structure,
	// but a missing radius assignment is represented as 0 rather than an
	// error (see engine.Engine.Run step 2).
	Rad float64
	// Symbol is the element symbol, e.g. "C", "Na", "Fe".
	Symbol string
}

// Dist returns the Euclidean distance between the centers of a and b.
func (a Atom) Dist(b Atom) float64 {
	dx := a.Pos[0] - b.Pos[0]
	dy := a.Pos[1] - b.Pos[1]
	dz := a.Pos[2] - b.Pos[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Coord returns the coordinate of the atom along axis d (0=x, 1=y, 2=z).
func (a Atom) Coord(d int) float64 {
	return a.Pos[d]
}

// Store is a flat, ordered collection of atoms.
//
// Store is built once per calculation from parsed input and is treated as
// opaque (its order may be permuted) once passed to atomtree.Build.
type Store []Atom

// Bounds returns the axis-wise minimum and maximum atom center, and the
// maximum radius among all atoms. It panics if the store is empty; callers
// must check Store's length first, matching the original's convention of
// only calling setBoundaries on a non-empty structure.
func (s Store) Bounds() (min, max [3]float64, maxRad float64) {
	min = s[0].Pos
	max = s[0].Pos
	maxRad = s[0].Rad
	for _, a := range s[1:] {
		for d := 0; d < 3; d++ {
			if a.Pos[d] < min[d] {
				min[d] = a.Pos[d]
			}
			if a.Pos[d] > max[d] {
				max[d] = a.Pos[d]
			}
		}
		if a.Rad > maxRad {
			maxRad = a.Rad
		}
	}
	return min, max, maxRad
}

// ChemicalFormula returns the multiset of element symbols over the store,
// keyed by symbol.
func (s Store) ChemicalFormula() map[string]int {
	formula := make(map[string]int)
	for _, a := range s {
		formula[a.Symbol]++
	}
	return formula
}
