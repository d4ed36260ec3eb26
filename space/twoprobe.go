package space

import (
	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/atomtree"
	"github.com/jmaglic/ballpit/voxel"
)

// ClassifyTwoProbe augments every non-atom bottom-level voxel with a
// large-probe bit (spec.md §4.5's two-probe mode), conceptually repeating
// the small-probe containment test with the larger probe radius. Exterior
// reachability is topology-only (atom vs. non-atom 6-connectivity) and
// was already computed by ClassifyShellVsVoid, so no second flood fill is
// needed here — only the dilated-sphere containment test changes.
//
// Must run after ClassifyShellVsVoid.
func (s *Space) ClassifyTwoProbe(tree *atomtree.Tree, atoms atom.Store, rProbeLarge float64) {
	nx, ny, nz := s.Levels[0].Dims()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				t := s.Levels[0].At(x, y, z)
				if t == voxel.Unassigned || t.IsAtom() {
					continue
				}
				center := s.cellCenter(0, x, y, z)
				candidates := candidateAtoms(tree, atoms, center, s.GridSize/2, rProbeLarge)
				inDilated := false
				for _, ai := range candidates {
					a := atoms[ai]
					if a.Dist(atom.Atom{Pos: center}) <= a.Rad+rProbeLarge {
						inDilated = true
						break
					}
				}
				if inDilated {
					s.Levels[0].Set(x, y, z, t|voxel.LargeProbeShell)
				} else {
					s.Levels[0].Set(x, y, z, t|voxel.LargeProbeCore)
				}
			}
		}
	}
}
