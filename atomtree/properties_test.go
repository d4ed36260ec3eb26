package atomtree_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/atomtree"
)

// FindAdjacent must be symmetric: B is adjacent to A iff A is adjacent to B
// (spec.md §8, invariant 5), for any set of randomly generated atoms.
func TestFindAdjacentIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "n").(int)
		delta := rapid.Float64Range(0, 2).Draw(t, "delta").(float64)

		atoms := make(atom.Store, n)
		for i := range atoms {
			atoms[i] = atom.Atom{
				Pos: [3]float64{
					rapid.Float64Range(-5, 5).Draw(t, "x").(float64),
					rapid.Float64Range(-5, 5).Draw(t, "y").(float64),
					rapid.Float64Range(-5, 5).Draw(t, "z").(float64),
				},
				Rad:    rapid.Float64Range(0.1, 2).Draw(t, "rad").(float64),
				Symbol: "X",
			}
		}
		// Build reorders the store in place; the indices below all refer
		// to the post-build order.
		tree := atomtree.Build(atoms)

		for i, a := range atoms {
			for _, j := range tree.FindAdjacent(atoms, a, delta) {
				b := atoms[j]
				found := false
				for _, k := range tree.FindAdjacent(atoms, b, delta) {
					if k == i {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("asymmetric adjacency: %d is adjacent to %d but not vice versa", i, j)
				}
			}
		}
	})
}
