// Package atomtree provides a 3-d k-d tree over an atom.Store for bounded-
// radius neighbor queries.
//
// Build partitions the underlying atom.Store in place; once a Tree has
// been built, the store's order is considered opaque — callers must treat
// it as belonging to the tree until the tree is discarded.
package atomtree

import "github.com/jmaglic/ballpit/atom"

// Node is a single k-d tree node. It references an atom by index into the
// atom.Store the tree was built from, never a copy of the atom itself,
// so that the tree stays cheap to build and never outlives its store.
type Node struct {
	// AtomIdx is the index, into the builder's atom.Store, of the atom
	// this node represents.
	AtomIdx int
	// Left holds atoms whose coordinate on this node's axis is <= the
	// node's coordinate; Right holds strictly greater values.
	Left, Right *Node
}

// Tree is a k-d tree over an atom.Store, splitting x, y, z cyclically by
// depth, plus the cached maximum radius across all stored atoms.
//
// A Tree holds only indices into the atom.Store it was built from and must
// not outlive that store.
type Tree struct {
	root   *Node
	maxRad float64
}

// Build constructs a k-d tree over atoms, reordering atoms in place.
//
// Time complexity: average O(N log² N), since every level of the recursion
// fully sorts its slice.
func Build(atoms atom.Store) *Tree {
	t := &Tree{}
	t.root = buildNode(atoms, 0, len(atoms), 0)
	for _, a := range atoms {
		if a.Rad > t.maxRad {
			t.maxRad = a.Rad
		}
	}
	return t
}

// buildNode recursively builds a subtree over atoms[lo:hi], splitting on
// axis dim. The slice is partitioned in place: quicksortAxis fully orders
// atoms[lo:hi] by coordinate dim, and the middle element (or, when later
// atoms share its coordinate, the last of them) becomes this node's
// atom — this mirrors the original's buildTree/quicksort pair,
// trading a full sort for simplicity over a linear-time median select.
func buildNode(atoms atom.Store, lo, hi int, dim int) *Node {
	switch hi - lo {
	case 0:
		return nil
	case 1:
		return &Node{AtomIdx: lo}
	default:
		quicksortAxis(atoms, lo, hi, dim)
		median := lo + (hi-lo)/2
		// Atoms tied with the median's coordinate stay on the left, so the
		// right subtree holds only strictly greater coordinates.
		for median+1 < hi && atoms[median+1].Coord(dim) == atoms[median].Coord(dim) {
			median++
		}
		next := (dim + 1) % 3
		return &Node{
			AtomIdx: median,
			Left:    buildNode(atoms, lo, median, next),
			Right:   buildNode(atoms, median+1, hi, next),
		}
	}
}

// quicksortAxis sorts atoms[lo:hi] by coordinate dim using a Lomuto
// partition around the last element, exactly as the original AtomTree's
// quicksort does. This is intentionally a full sort, not a quickselect:
// see the package doc and DESIGN.md for why the O(N log N)-average /
// O(N²)-worst trade-off is kept rather than tightened.
func quicksortAxis(atoms atom.Store, lo, hi int, dim int) {
	if hi-lo <= 1 {
		return
	}
	pivot := atoms[hi-1].Coord(dim)
	cursor := lo
	for i := lo; i < hi; i++ {
		if atoms[i].Coord(dim) <= pivot {
			atoms[cursor], atoms[i] = atoms[i], atoms[cursor]
			cursor++
		}
	}
	quicksortAxis(atoms, lo, cursor-1, dim)
	quicksortAxis(atoms, cursor, hi, dim)
}

// MaxRad returns the maximum radius among all atoms used to build the
// tree, used to bound neighbor searches.
func (t *Tree) MaxRad() float64 {
	return t.maxRad
}

// FindAdjacent returns the indices, into the builder's atom.Store, of
// every atom B != a with |B.Pos - a.Pos| <= a.Rad + B.Rad + delta.
//
// a need not itself be a member of the tree's store (the query is by
// value); when it is, its own index is excluded by value comparison, not
// by index, so a caller may also query with an atom equal in value to one
// in the tree without false self-matches being a concern beyond that atom
// itself.
//
// Time complexity: O(log N) in the well-balanced, well-separated case;
// O(N) worst case (dense/clustered structures).
func (t *Tree) FindAdjacent(atoms atom.Store, a atom.Atom, delta float64) []int {
	var result []int
	minDistance := a.Rad + t.maxRad + delta
	findAdjacentRecursive(&result, atoms, a, delta, minDistance, t.root, 0)
	return result
}

func findAdjacentRecursive(result *[]int, atoms atom.Store, a atom.Atom, delta, minDistance float64, node *Node, dim int) {
	if node == nil {
		return
	}
	test := atoms[node.AtomIdx]
	dist1D := test.Coord(dim) - a.Coord(dim)

	if abs(dist1D) > minDistance {
		// a is far enough from the splitting plane that only the near
		// side of the tree can contain an adjacent atom.
		child := node.Left
		if dist1D < 0 {
			child = node.Right
		}
		findAdjacentRecursive(result, atoms, a, delta, minDistance, child, (dim+1)%3)
		return
	}

	if test != a && test.Dist(a) <= a.Rad+test.Rad+delta {
		*result = append(*result, node.AtomIdx)
	}
	next := (dim + 1) % 3
	findAdjacentRecursive(result, atoms, a, delta, minDistance, node.Left, next)
	findAdjacentRecursive(result, atoms, a, delta, minDistance, node.Right, next)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
