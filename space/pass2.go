package space

import (
	"context"

	"github.com/jmaglic/ballpit/ballpiterr"
	"github.com/jmaglic/ballpit/grid"
	"github.com/jmaglic/ballpit/voxel"
)

// neighbor6 lists the six axis-aligned unit offsets used by the
// 6-connected flood fill and face-counting passes.
var neighbor6 = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// WarnFunc reports a non-fatal condition during classification; engine
// wires this to notifier.Notifier.Warn.
type WarnFunc func(code ballpiterr.Code, msg string)

// ClassifyShellVsVoid runs pass 2 (spec.md §4.5): a 6-connected flood
// fill from the grid's outer face resolves every small-probe-shell
// candidate into its final confirmed-shell type, then connected-component
// labeling over the unreached (cavity) region assigns cavity IDs.
//
// Seed set resolution (spec.md §9 open question): every bottom-level
// voxel on the outer face of the grid whose type is not atom.
func (s *Space) ClassifyShellVsVoid(ctx context.Context, warn WarnFunc) error {
	nx, ny, nz := s.Levels[0].Dims()
	visited := grid.New[bool](nx, ny, nz)

	queue := make([][3]int, 0, nx*ny)
	push := func(x, y, z int) {
		if visited.At(x, y, z) {
			return
		}
		t := s.Levels[0].At(x, y, z)
		if t == voxel.Unassigned || t.IsAtom() {
			return
		}
		visited.Set(x, y, z, true)
		queue = append(queue, [3]int{x, y, z})
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				onFace := x == 0 || x == nx-1 || y == 0 || y == ny-1 || z == 0 || z == nz-1
				if onFace {
					push(x, y, z)
				}
			}
		}
	}

	processed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		processed++
		if processed%nz == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, d := range neighbor6 {
			nxp, nyp, nzp := cur[0]+d[0], cur[1]+d[1], cur[2]+d[2]
			if nxp < 0 || nxp >= nx || nyp < 0 || nyp >= ny || nzp < 0 || nzp >= nz {
				continue
			}
			push(nxp, nyp, nzp)
		}
	}

	// Every small-probe-shell candidate is now definitively classified as
	// shell, whether or not the flood fill reached it; unreached ones are
	// tagged as cavity material below instead of getting a distinct type.
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				if s.Levels[0].At(x, y, z) == voxel.SmallProbeShellOuter {
					s.Levels[0].Set(x, y, z, voxel.SmallProbeShellInner)
				}
			}
		}
	}

	return s.segmentCavities(ctx, visited, warn)
}

// segmentCavities runs 6-connected component labeling over every
// bottom-level non-atom voxel the flood fill did not reach, capping the
// label space at 255 (spec.md §4.5); beyond that, remaining components
// are merged into label 255 and warn reports error 201.
func (s *Space) segmentCavities(ctx context.Context, visited *grid.Grid3D[bool], warn WarnFunc) error {
	nx, ny, nz := s.Levels[0].Dims()
	labeled := grid.New[bool](nx, ny, nz)

	var label int
	overflowed := false

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				t := s.Levels[0].At(x, y, z)
				if visited.At(x, y, z) || t == voxel.Unassigned || t.IsAtom() || labeled.At(x, y, z) {
					continue
				}
				if err := ctx.Err(); err != nil {
					return err
				}

				label++
				effective := label
				if label > 255 {
					effective = 255
					if !overflowed {
						overflowed = true
						if warn != nil {
							warn(ballpiterr.CodeCavityOverflow, ballpiterr.Message(ballpiterr.CodeCavityOverflow))
						}
					}
				}

				queue := [][3]int{{x, y, z}}
				labeled.Set(x, y, z, true)
				for len(queue) > 0 {
					cur := queue[0]
					queue = queue[1:]
					s.CavityLabels.Set(cur[0], cur[1], cur[2], uint8(effective))
					for _, d := range neighbor6 {
						nxp, nyp, nzp := cur[0]+d[0], cur[1]+d[1], cur[2]+d[2]
						if nxp < 0 || nxp >= nx || nyp < 0 || nyp >= ny || nzp < 0 || nzp >= nz {
							continue
						}
						if visited.At(nxp, nyp, nzp) || labeled.At(nxp, nyp, nzp) {
							continue
						}
						nt := s.Levels[0].At(nxp, nyp, nzp)
						if nt == voxel.Unassigned || nt.IsAtom() {
							continue
						}
						labeled.Set(nxp, nyp, nzp, true)
						queue = append(queue, [3]int{nxp, nyp, nzp})
					}
				}
			}
		}
	}
	return nil
}
