// Package voxel provides the octree node used by package space: a cube
// that is either a pure leaf (fully classified) or a mixed node owning
// eight children.
package voxel

import "math"

// Type is the 8-bit classification byte of a voxel. Bit 0 marks "fully
// assigned" (a mixed node, not yet subdivided further, always has Type 0);
// bits 1-6 mark the geometric category, per spec.md §3.
type Type uint8

// Canonical type constants, per spec.md §3. Each is "assigned" (bit 0 set)
// plus exactly one category bit, except the atom type, which additionally
// implies "inside the small-probe core" is meaningless (an atom voxel is
// never also core/shell).
const (
	Unassigned     Type = 0b0000000
	Atom           Type = 0b0000011
	SmallProbeCore Type = 0b0000101
	// SmallProbeShellInner is the pass-2 shell type. Pass 2 gives it to
	// every shell candidate, reachable from the exterior or not; cavity
	// membership is recorded separately, in space.Space.CavityLabels.
	SmallProbeShellInner Type = 0b0001001
	// SmallProbeShellOuter is the pass-1 "shell candidate" type: within
	// probe range of an atom, not yet resolved by pass 2. Pass 2 replaces
	// every instance of this type with SmallProbeShellInner.
	SmallProbeShellOuter Type = 0b0010001
	LargeProbeCore       Type = 0b0100001
	LargeProbeShell      Type = 0b1000001
)

// bit indices, per spec.md §3's bit table. The two shell variants occupy
// distinct bits (3 and 4): they are both "shell", but pass 1 and pass 2
// need to tell candidate shell from confirmed shell apart.
const (
	bitAssigned         = 0
	bitAtom             = 1
	bitSmallCore        = 2
	bitSmallShellInner  = 3
	bitSmallShellOuter  = 4
	bitLargeCore        = 5
	bitLargeShell       = 6
)

// HasBit reports whether bit i is set in t.
func (t Type) HasBit(i int) bool {
	return t&(1<<uint(i)) != 0
}

// Assigned reports whether t has been fully classified (bit 0 set). A
// voxel that is mixed (has children) always has Type() == Unassigned,
// which is not Assigned.
func (t Type) Assigned() bool { return t.HasBit(bitAssigned) }

// IsAtom reports whether t is the atom-interior type.
func (t Type) IsAtom() bool { return t.HasBit(bitAtom) }

// IsSmallProbeCore reports whether t is probe-accessible, small-probe
// variant.
func (t Type) IsSmallProbeCore() bool { return t.HasBit(bitSmallCore) }

// IsSmallProbeShell reports whether t is either small-probe shell variant
// (the unresolved pass-1 candidate, or the pass-2 shell).
func (t Type) IsSmallProbeShell() bool {
	return t.HasBit(bitSmallShellInner) || t.HasBit(bitSmallShellOuter)
}

// IsSmallProbeShellInner reports whether t carries the pass-2 shell bit.
func (t Type) IsSmallProbeShellInner() bool { return t.HasBit(bitSmallShellInner) }

// IsSmallProbeShellOuter reports whether t carries the pass-1 shell
// candidate bit.
func (t Type) IsSmallProbeShellOuter() bool { return t.HasBit(bitSmallShellOuter) }

// IsLargeProbeCore reports whether t is the large-probe core type
// (two-probe mode only).
func (t Type) IsLargeProbeCore() bool { return t.HasBit(bitLargeCore) }

// IsLargeProbeShell reports whether t is the large-probe shell type
// (two-probe mode only).
func (t Type) IsLargeProbeShell() bool { return t.HasBit(bitLargeShell) }

// Voxel is a node of the octree: a pure leaf carrying a Type, or a mixed
// node owning eight children, per spec.md §3.
//
// Invariant: Children == nil xor Type == Unassigned always holds in a
// reachable post-classification tree: a pure leaf has Children == nil and
// Type != Unassigned; a mixed node has Children != nil and Type ==
// Unassigned.
type Voxel struct {
	Type     Type
	Children *[8]Voxel
}

// Mixed reports whether v has been subdivided into eight children.
func (v *Voxel) Mixed() bool { return v.Children != nil }

// Subdivide replaces v with a mixed node of eight Unassigned children,
// clearing v's own Type, the only transition from pure to mixed (spec.md
// §4.3).
func (v *Voxel) Subdivide() {
	v.Type = Unassigned
	v.Children = &[8]Voxel{}
}

// Child returns the child at octant (i, j, k), each 0 or 1, following the
// same ordering convention used throughout package space: x varies
// slowest.
func (v *Voxel) Child(i, j, k int) *Voxel {
	return &v.Children[i*4+j*2+k]
}

// Corner computes the position of voxel corner (i, j, k) (each 0 or 1)
// given the voxel's center and half its side length.
func Corner(center [3]float64, halfSide float64, i, j, k int) [3]float64 {
	sign := func(b int) float64 {
		if b == 0 {
			return -1
		}
		return 1
	}
	return [3]float64{
		center[0] + sign(i)*halfSide,
		center[1] + sign(j)*halfSide,
		center[2] + sign(k)*halfSide,
	}
}

// TallyOfType returns the number of bottom-level voxels of exactly the
// given type contained in the subtree rooted at v, which sits at octree
// level lvl (0 = bottom level). A pure leaf contributes 8^lvl bottom
// voxels if its type matches mask; a mixed node recurses into children
// (spec.md §4.6).
func (v *Voxel) TallyOfType(mask Type, lvl int) uint64 {
	if !v.Mixed() {
		if v.Type == mask {
			return uint64(math.Pow(8, float64(lvl)))
		}
		return 0
	}
	childLvl := lvl - 1
	if childLvl < 0 {
		childLvl = 0
	}
	var total uint64
	for i := range v.Children {
		total += v.Children[i].TallyOfType(mask, childLvl)
	}
	return total
}

// DXValue maps a classification byte and cavity label to the OpenDX
// density value used by the (external) surface-map writer, per
// SPEC_FULL.md §6. The per-type values reproduce the original writer's
// literal byte-to-density table, but are tested bit by bit rather than by
// exact equality: two-probe mode (spec.md §4.5) sets the large-probe bits
// alongside whatever small-probe bits a voxel already carries, so a
// two-probe run's voxels rarely match one of the six canonical values
// exactly. Large-probe bits take priority since they're the finer,
// later-computed classification; cavityLabel is a supplemented override
// for single-probe runs, where no LargeProbeShell type exists to carry
// the 3.3 "cavity" marker.
func DXValue(t Type, cavityLabel uint8) float64 {
	switch {
	case t.IsAtom():
		return 0
	case t.IsLargeProbeCore():
		return 8
	case t.IsLargeProbeShell():
		return 3.3
	case cavityLabel > 0:
		return 3.3
	case t.IsSmallProbeCore():
		return 2
	case t.IsSmallProbeShellInner():
		return 6
	case t.IsSmallProbeShellOuter():
		return 4
	default:
		return -2
	}
}
