// Package space implements the octree forest and per-level dense grids
// that classify a molecular structure's surrounding volume into atom
// interior, probe-excluded shell, and probe-accessible core, segmenting
// interior cavities along the way.
package space

import (
	"context"
	"math"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/atomtree"
	"github.com/jmaglic/ballpit/grid"
	"github.com/jmaglic/ballpit/voxel"
)

// Space owns the octree forest (one root Voxel per top-level cell) plus a
// dense per-level type grid materialized by UpdateGrid, and the parallel
// cavity-label plane at the bottom level.
type Space struct {
	CartMin, CartMax [3]float64
	GridSize         float64
	Depth            int
	NGridSteps       [3]int

	// TopVoxels holds the octree roots, dims NGridSteps, one per
	// top-level cell.
	TopVoxels *grid.Grid3D[voxel.Voxel]

	// Levels[l] is the dense materialized type grid for octree level l
	// (0 = bottom, Depth = top), populated by UpdateGrid.
	Levels []*grid.Grid3D[voxel.Type]

	// CavityLabels is the bottom-level cavity-component label plane: 0
	// means "not part of a cavity", 1-255 identify a connected component.
	CavityLabels *grid.Grid3D[uint8]
}

// New constructs an empty Space with the given bottom voxel edge length
// and octree depth. Call SetBoundaries then InitGrid before classifying.
func New(gridSize float64, depth int) *Space {
	return &Space{GridSize: gridSize, Depth: depth}
}

// DefaultAddSpace returns the default boundary padding, per spec.md §4.2:
// enough room for the probe to reach the outermost atoms plus two bottom
// voxel widths of margin.
func DefaultAddSpace(rProbe, gridSize float64) float64 {
	return rProbe + 2*gridSize
}

// SetBoundaries computes cart_min/cart_max as the axis-wise extrema of
// atom centers, expanded by addSpace plus the largest atom radius on
// every side (spec.md §4.2).
func (s *Space) SetBoundaries(atoms atom.Store, addSpace float64) {
	min, max, maxRad := atoms.Bounds()
	pad := addSpace + maxRad
	for d := 0; d < 3; d++ {
		s.CartMin[d] = min[d] - pad
		s.CartMax[d] = max[d] + pad
	}
}

// InitGrid computes n_gridsteps and allocates the top-level voxel forest
// plus one dense type grid per octree level (spec.md §4.2).
func (s *Space) InitGrid() {
	topSide := s.GridSize * math.Pow(2, float64(s.Depth))
	for d := 0; d < 3; d++ {
		size := s.CartMax[d] - s.CartMin[d]
		s.NGridSteps[d] = int(math.Ceil(size / topSide))
	}

	s.TopVoxels = grid.New[voxel.Voxel](s.NGridSteps[0], s.NGridSteps[1], s.NGridSteps[2])

	s.Levels = make([]*grid.Grid3D[voxel.Type], s.Depth+1)
	for l := 0; l <= s.Depth; l++ {
		scale := 1 << uint(s.Depth-l)
		s.Levels[l] = grid.New[voxel.Type](s.NGridSteps[0]*scale, s.NGridSteps[1]*scale, s.NGridSteps[2]*scale)
	}

	bnx, bny, bnz := s.Levels[0].Dims()
	s.CavityLabels = grid.New[uint8](bnx, bny, bnz)
}

// cellCenter returns the cartesian center of the cell at (x, y, z) in
// octree level l's coordinate system.
func (s *Space) cellCenter(l, x, y, z int) [3]float64 {
	side := s.GridSize * math.Pow(2, float64(l))
	return [3]float64{
		s.CartMin[0] + side*(0.5+float64(x)),
		s.CartMin[1] + side*(0.5+float64(y)),
		s.CartMin[2] + side*(0.5+float64(z)),
	}
}

// ClassifyAtomVsCore runs pass 1 (spec.md §4.3): for every top-level
// voxel, recursively subdivide until each leaf can be classified as atom,
// small-probe core, or small-probe shell candidate. Progress is reported
// after each x-slab; ctx is polled between top-level voxels.
func (s *Space) ClassifyAtomVsCore(ctx context.Context, tree *atomtree.Tree, atoms atom.Store, rProbeSmall float64, n Notifier) error {
	nx, ny, nz := s.TopVoxels.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				center := s.cellCenter(s.Depth, i, j, k)
				root := s.TopVoxels.At(i, j, k)
				classifyNode(&root, center, s.Depth, s.GridSize, tree, atoms, rProbeSmall)
				s.TopVoxels.Set(i, j, k, root)
			}
		}
		if n != nil {
			n.Progress(int(100 * float64(i+1) / float64(nx)))
		}
	}
	return nil
}

// candidateAtoms returns a broad-phase superset of the atoms that could
// influence a voxel centered at p with the given level's half-side,
// found by querying the k-d tree with padding generous enough (tree max
// radius, rather than each atom's own radius) to never miss a true
// candidate (spec.md §4.3 step 1).
func candidateAtoms(tree *atomtree.Tree, atoms atom.Store, p [3]float64, halfSide, rProbe float64) []int {
	pseudo := atom.Atom{Pos: p, Rad: tree.MaxRad()}
	delta := halfSide*math.Sqrt(3) + rProbe
	return tree.FindAdjacent(atoms, pseudo, delta)
}

// classifyNode implements spec.md §4.3 steps 2-3 for one octree node.
func classifyNode(v *voxel.Voxel, center [3]float64, lvl int, gridSize float64, tree *atomtree.Tree, atoms atom.Store, rProbe float64) {
	side := gridSize * math.Pow(2, float64(lvl))
	halfSide := side / 2
	candidates := candidateAtoms(tree, atoms, center, halfSide, rProbe)

	if lvl == 0 {
		v.Type = classifyPoint(center, candidates, atoms, rProbe)
		return
	}

	corners := make([][3]float64, 8)
	idx := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corners[idx] = voxel.Corner(center, halfSide, i, j, k)
				idx++
			}
		}
	}

	allInAtom, allInDilated, noneInDilated, anyInAtom := true, true, true, false
	for _, c := range corners {
		inAtom, inDilated := false, false
		for _, ai := range candidates {
			a := atoms[ai]
			d := a.Dist(atom.Atom{Pos: c})
			if d <= a.Rad {
				inAtom = true
			}
			if d <= a.Rad+rProbe {
				inDilated = true
			}
		}
		if !inAtom {
			allInAtom = false
		} else {
			anyInAtom = true
		}
		if !inDilated {
			allInDilated = false
		} else {
			noneInDilated = false
		}
	}

	switch {
	case allInAtom:
		v.Type = voxel.Atom
	case allInDilated && !anyInAtom:
		v.Type = voxel.SmallProbeShellOuter
	case noneInDilated:
		v.Type = voxel.SmallProbeCore
	default:
		v.Subdivide()
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					childCenter := voxel.Corner(center, halfSide/2, i, j, k)
					child := v.Child(i, j, k)
					classifyNode(child, childCenter, lvl-1, gridSize, tree, atoms, rProbe)
				}
			}
		}
	}
}

// classifyPoint resolves a bottom-level voxel by the relation of its
// center alone, per spec.md §4.3 step 3's "single-point decision".
func classifyPoint(center [3]float64, candidates []int, atoms atom.Store, rProbe float64) voxel.Type {
	inDilated := false
	for _, ai := range candidates {
		a := atoms[ai]
		d := a.Dist(atom.Atom{Pos: center})
		if d <= a.Rad {
			return voxel.Atom
		}
		if d <= a.Rad+rProbe {
			inDilated = true
		}
	}
	if inDilated {
		return voxel.SmallProbeShellOuter
	}
	return voxel.SmallProbeCore
}

// UpdateGrid materializes the octree forest into the dense per-level
// grids, so that any level's lookups resolve in O(1) (spec.md §4.4).
func (s *Space) UpdateGrid() {
	nx, ny, nz := s.TopVoxels.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				root := s.TopVoxels.At(i, j, k)
				s.fillLevels(&root, s.Depth, i, j, k)
			}
		}
	}
}

func (s *Space) fillLevels(v *voxel.Voxel, lvl, x, y, z int) {
	if v.Mixed() {
		s.Levels[lvl].Set(x, y, z, voxel.Unassigned)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					s.fillLevels(v.Child(i, j, k), lvl-1, 2*x+i, 2*y+j, 2*z+k)
				}
			}
		}
		return
	}
	s.fillPureFootprint(v.Type, lvl, x, y, z)
}

func (s *Space) fillPureFootprint(t voxel.Type, lvl, x, y, z int) {
	s.Levels[lvl].Set(x, y, z, t)
	if lvl == 0 {
		return
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				s.fillPureFootprint(t, lvl-1, 2*x+i, 2*y+j, 2*z+k)
			}
		}
	}
}

// Notifier is the subset of notifier.Notifier that package space needs;
// declared locally to avoid importing package notifier from the core
// geometry layer (engine wires the two together).
type Notifier interface {
	Progress(percent int)
}
