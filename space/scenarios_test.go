package space_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/ballpiterr"
	"github.com/jmaglic/ballpit/grid"
	"github.com/jmaglic/ballpit/space"
	"github.com/jmaglic/ballpit/voxel"
)

// indexAt returns the bottom-level grid index of the voxel containing p.
func indexAt(s *space.Space, p [3]float64) (int, int, int) {
	x := int(math.Floor((p[0] - s.CartMin[0]) / s.GridSize))
	y := int(math.Floor((p[1] - s.CartMin[1]) / s.GridSize))
	z := int(math.Floor((p[2] - s.CartMin[2]) / s.GridSize))
	return x, y, z
}

func sumCavityVolume(s *space.Space) float64 {
	var total float64
	for _, c := range s.Cavities() {
		total += c.Volume
	}
	return total
}

// Scenario 2 (spec.md §8): two atoms placed close enough that the small
// probe cannot fit in the gap between them. The original probetest_pair.xyz
// fixture isn't present in this corpus, so exact reproduction of the
// documented 1.399 Å³ figure isn't attempted here; instead this exercises
// the same "probe excluded from a narrow gap" geometry analytically: with
// r_atom=1.0, r_probe=1.2 and a 0.6 Å gap between the two atom surfaces,
// the midpoint is within r_atom+r_probe=2.2 Å of both atom centers (at
// distance 1.3 each), so it must classify as shell, never core.
func TestPairNarrowGapStaysShell(t *testing.T) {
	atoms := atom.Store{
		{Pos: [3]float64{-1.3, 0, 0}, Rad: 1.0},
		{Pos: [3]float64{1.3, 0, 0}, Rad: 1.0},
	}
	s := buildClassified(t, atoms, 0.1, 4, 1.2)

	x, y, z := indexAt(s, [3]float64{0, 0, 0})
	typ := s.Levels[0].At(x, y, z)
	require.True(t, typ.IsSmallProbeShell(), "midpoint between close atoms should be shell: a 1.2 Å probe cannot fit in a 0.6 Å gap")
	require.False(t, typ.IsSmallProbeCore())
}

// Scenario 3 (spec.md §8): triplet and quadruplet probe tests. The original
// probetest_triplet.xyz/probetest_quadruplet.xyz fixtures aren't present in
// this corpus, so exact reproduction of the documented 4.393/9.054 Å³
// figures isn't attempted; instead this builds an equilateral triangle and
// a regular tetrahedron of atoms (edge length 4.2 Å, r_atom=1.0,
// r_probe=1.2) sharing the same pairwise gap (2.2 Å, narrower than the
// probe's 2.4 Å diameter) and centroid, and checks the two properties the
// spec's scenario actually exercises: the centroid is far enough from every
// atom (circumradius > r_atom+r_probe for both shapes, with margin well
// clear of grid discretization error at grid_step=0.1) to classify as core,
// and the tetrahedron — enclosing the centroid more completely — traps at
// least as much cavity volume as the triangle.
func TestTripletQuadrupletCentroidCoreAndCavityOrdering(t *testing.T) {
	const r0 = 1.0
	const rp = 1.2
	const d = 4.2

	rTri := d / math.Sqrt(3)
	var triangle atom.Store
	for i := 0; i < 3; i++ {
		theta := math.Pi/2 + float64(i)*2*math.Pi/3
		triangle = append(triangle, atom.Atom{
			Pos: [3]float64{rTri * math.Cos(theta), rTri * math.Sin(theta), 0},
			Rad: r0,
		})
	}

	k := d * math.Sqrt2 / 4
	signs := [4][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
	var tetrahedron atom.Store
	for _, sgn := range signs {
		tetrahedron = append(tetrahedron, atom.Atom{
			Pos: [3]float64{k * sgn[0], k * sgn[1], k * sgn[2]},
			Rad: r0,
		})
	}

	s3 := buildClassified(t, triangle, 0.1, 4, rp)
	s4 := buildClassified(t, tetrahedron, 0.1, 4, rp)

	x3, y3, z3 := indexAt(s3, [3]float64{0, 0, 0})
	require.True(t, s3.Levels[0].At(x3, y3, z3).IsSmallProbeCore(), "triangle centroid should be core")

	x4, y4, z4 := indexAt(s4, [3]float64{0, 0, 0})
	require.True(t, s4.Levels[0].At(x4, y4, z4).IsSmallProbeCore(), "tetrahedron centroid should be core")

	vol3 := sumCavityVolume(s3)
	vol4 := sumCavityVolume(s4)
	require.GreaterOrEqual(t, vol4, vol3-1e-9, "tetrahedron should trap at least as much cavity volume as the triangle, matching the documented 4.393 < 9.054 ordering")
}

// Scenario 6 (spec.md §8): a synthetic input of 300 mutually isolated
// single-voxel cavities drives segmentCavities past its 255-label cap.
// Built directly against Levels[0]/CavityLabels (bypassing atom
// classification) so the component count and placement are exact.
func TestCavityLabelOverflow(t *testing.T) {
	const n = 300
	nx, ny, nz := 2*n+2, 3, 3

	s := &space.Space{GridSize: 0.1, Depth: 0}
	s.Levels = []*grid.Grid3D[voxel.Type]{grid.New[voxel.Type](nx, ny, nz)}
	s.Levels[0].Fill(voxel.Atom)
	s.CavityLabels = grid.New[uint8](nx, ny, nz)

	for i := 1; i <= n; i++ {
		s.Levels[0].Set(2*i, 1, 1, voxel.SmallProbeCore)
	}

	var warnedCode ballpiterr.Code
	var warnCount int
	warn := func(code ballpiterr.Code, msg string) {
		warnCount++
		warnedCode = code
	}

	err := s.ClassifyShellVsVoid(context.Background(), warn)
	require.NoError(t, err)

	counts := make(map[uint8]int)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				label := s.CavityLabels.At(x, y, z)
				if label != 0 {
					counts[label]++
				}
			}
		}
	}

	require.Len(t, counts, 255, "label space must be capped at 255 distinct components")
	require.Equal(t, n-254, counts[255], "overflow components (256..300) all merge into label 255")
	for l := uint8(1); l < 255; l++ {
		require.Equal(t, 1, counts[l], "non-overflow label %d should tag exactly one voxel", l)
	}

	require.Equal(t, 1, warnCount, "overflow warning should fire exactly once")
	require.Equal(t, ballpiterr.CodeCavityOverflow, warnedCode)
}
