package space

import (
	"github.com/jmaglic/ballpit/voxel"
)

// matchesMask reports whether t should be tallied under the canonical type
// mask. It checks the mask's classification bit rather than comparing
// bytes outright: two-probe mode (space.ClassifyTwoProbe) ORs its
// large-probe bits onto whatever small-probe bits a voxel already carries
// (spec.md §4.5), so an exact byte comparison would silently tally zero
// voxels for every two-probe mask.
func matchesMask(t, mask voxel.Type) bool {
	switch mask {
	case voxel.Atom:
		return t.IsAtom()
	case voxel.SmallProbeCore:
		return t.IsSmallProbeCore()
	case voxel.SmallProbeShellInner:
		return t.IsSmallProbeShellInner()
	case voxel.SmallProbeShellOuter:
		return t.IsSmallProbeShellOuter()
	case voxel.LargeProbeCore:
		return t.IsLargeProbeCore()
	case voxel.LargeProbeShell:
		return t.IsLargeProbeShell()
	default:
		return t == mask
	}
}

// Volume counts bottom-level voxels matching mask and multiplies by
// grid_size³ (spec.md §4.6). It reads the materialized bottom-level grid
// rather than the octree forest, so it must run after UpdateGrid, and it
// picks up anything pass 2 (ClassifyShellVsVoid) or two-probe
// classification (ClassifyTwoProbe) wrote into Levels[0] afterward — the
// octree forest itself is never updated past the initial atom/core pass.
func (s *Space) Volume(mask voxel.Type) float64 {
	nx, ny, nz := s.Levels[0].Dims()
	var total uint64
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				if matchesMask(s.Levels[0].At(x, y, z), mask) {
					total++
				}
			}
		}
	}
	return float64(total) * s.GridSize * s.GridSize * s.GridSize
}

// SurfaceAreas reports the four grid-aligned interface counts of
// spec.md §4.6, each multiplied by grid_size².
type SurfaceAreas struct {
	VdW             float64
	ProbeExcluded   float64
	ProbeAccessible float64
	Molecular       float64
}

// SurfaceAreas counts, over every pair of 6-adjacent bottom-level voxels,
// the four boundary classes named in spec.md §4.6, derived from the
// materialized bottom-level grid (so it must run after UpdateGrid and
// ClassifyShellVsVoid).
func (s *Space) SurfaceAreas() SurfaceAreas {
	nx, ny, nz := s.Levels[0].Dims()
	area := s.GridSize * s.GridSize

	var vdw, excluded, accessible, molecular int

	visit := func(x, y, z, dx, dy, dz int) {
		nxp, nyp, nzp := x+dx, y+dy, z+dz
		if nxp < 0 || nxp >= nx || nyp < 0 || nyp >= ny || nzp < 0 || nzp >= nz {
			return
		}
		a := s.Levels[0].At(x, y, z)
		b := s.Levels[0].At(nxp, nyp, nzp)
		if a == voxel.Unassigned || b == voxel.Unassigned {
			return
		}
		if a.IsAtom() != b.IsAtom() {
			vdw++
		}
		aShell, bShell := a.IsSmallProbeShell(), b.IsSmallProbeShell()
		aCore, bCore := a.IsSmallProbeCore() || a.IsLargeProbeCore(), b.IsSmallProbeCore() || b.IsLargeProbeCore()
		if aShell != bShell && (aCore || bCore) {
			excluded++
			accessible++
		}
		aAccessible, bAccessible := a.IsSmallProbeCore(), b.IsSmallProbeCore()
		aLargeShell, bLargeShell := a.IsLargeProbeShell(), b.IsLargeProbeShell()
		if (aAccessible && bLargeShell) || (bAccessible && aLargeShell) {
			molecular++
		}
	}

	// Only the +x, +y, +z neighbor is visited from each cell, so every
	// pair of adjacent voxels is counted exactly once.
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				visit(x, y, z, 1, 0, 0)
				visit(x, y, z, 0, 1, 0)
				visit(x, y, z, 0, 0, 1)
			}
		}
	}

	return SurfaceAreas{
		VdW:             float64(vdw) * area,
		ProbeExcluded:   float64(excluded) * area,
		ProbeAccessible: float64(accessible) * area,
		Molecular:       float64(molecular) * area,
	}
}

// Cavity summarizes one connected component of the cavity-label plane:
// volume, the core- and shell-type surface within the cavity, and its
// geometric center (spec.md §4.7 step 4; center is a SPEC_FULL.md §11
// supplement).
type Cavity struct {
	Label     uint8
	Volume    float64
	SurfCore  float64
	SurfShell float64
	Center    [3]float64
}

// Cavities scans CavityLabels and returns one Cavity per distinct label
// present, in ascending label order. SurfCore and SurfShell are boundary
// face counts (same 6-connected face-crossing approach as SurfaceAreas),
// not raw voxel tallies, so they scale with the cavity's actual wall
// area rather than its volume.
func (s *Space) Cavities() []Cavity {
	nx, ny, nz := s.CavityLabels.Dims()
	cellVol := s.GridSize * s.GridSize * s.GridSize
	area := s.GridSize * s.GridSize

	type accum struct {
		count                 int
		coreFaces, shellFaces int
		sumX, sumY, sumZ      float64
	}
	byLabel := make(map[uint8]*accum)
	get := func(label uint8) *accum {
		acc, ok := byLabel[label]
		if !ok {
			acc = &accum{}
			byLabel[label] = acc
		}
		return acc
	}

	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				la := s.CavityLabels.At(x, y, z)
				if la == 0 {
					continue
				}
				acc := get(la)
				acc.count++
				center := s.cellCenter(0, x, y, z)
				acc.sumX += center[0]
				acc.sumY += center[1]
				acc.sumZ += center[2]

				a := s.Levels[0].At(x, y, z)

				// A connected component never face-touches a different
				// nonzero label (segmentCavities would have merged them),
				// so the neighbor either belongs to the same cavity or
				// lies outside it entirely (atom, reached exterior
				// material, or the grid edge).
				for _, d := range neighbor6 {
					nxp, nyp, nzp := x+d[0], y+d[1], z+d[2]
					if nxp < 0 || nxp >= nx || nyp < 0 || nyp >= ny || nzp < 0 || nzp >= nz {
						if a.IsSmallProbeCore() {
							acc.coreFaces++
						}
						if a.IsSmallProbeShell() {
							acc.shellFaces++
						}
						continue
					}
					lb := s.CavityLabels.At(nxp, nyp, nzp)
					b := s.Levels[0].At(nxp, nyp, nzp)
					if lb == la && a.IsSmallProbeCore() == b.IsSmallProbeCore() && a.IsSmallProbeShell() == b.IsSmallProbeShell() {
						continue // interior face, not a boundary
					}
					if a.IsSmallProbeCore() {
						acc.coreFaces++
					}
					if a.IsSmallProbeShell() {
						acc.shellFaces++
					}
				}
			}
		}
	}

	labels := make([]uint8, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j-1] > labels[j]; j-- {
			labels[j-1], labels[j] = labels[j], labels[j-1]
		}
	}

	cavities := make([]Cavity, 0, len(labels))
	for _, l := range labels {
		acc := byLabel[l]
		n := float64(acc.count)
		cavities = append(cavities, Cavity{
			Label:     l,
			Volume:    n * cellVol,
			SurfCore:  float64(acc.coreFaces) * area,
			SurfShell: float64(acc.shellFaces) * area,
			Center:    [3]float64{acc.sumX / n, acc.sumY / n, acc.sumZ / n},
		})
	}
	return cavities
}
