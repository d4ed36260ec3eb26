// Package engine orchestrates a single spatial-analysis run: building the
// k-d tree and octree, running the two classification passes, and
// assembling the result bundle a caller reports or exports.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/atomtree"
	"github.com/jmaglic/ballpit/ballpiterr"
	"github.com/jmaglic/ballpit/notifier"
	"github.com/jmaglic/ballpit/space"
	"github.com/jmaglic/ballpit/voxel"
)

// Parameters mirrors spec.md §6's "Input — parameters" table.
type Parameters struct {
	GridStep float64
	MaxDepth int

	ProbeMode   bool
	RProbeSmall float64
	RProbeLarge float64

	// IncludeHetatm and AnalyzeUnitCell govern upstream pdb parsing and
	// are carried here only as a pass-through echo of the caller's
	// request; the core never reads them.
	IncludeHetatm   bool
	AnalyzeUnitCell bool

	CalcSurfaceAreas bool

	// MakeReport, MakeFullMap, and MakeCavMaps govern post-run export by
	// the (out-of-scope) external writer; the core never reads them.
	MakeReport  bool
	MakeFullMap bool
	MakeCavMaps bool
}

// Validate checks Parameters against spec.md §4.7 step 1. Malformed
// numeric preconditions that a caller should never be able to trigger
// through ordinary input (non-positive grid step, depth outside its
// documented range, a non-positive small probe radius) are programmer
// errors and panic; inverted two-probe radii is user-triggerable invalid
// input and returns ballpiterr.CodeInvalidProbeRadius (104).
func (p Parameters) Validate() error {
	if p.GridStep <= 0 {
		panic(fmt.Sprintf("engine: grid_step must be > 0, got %v", p.GridStep))
	}
	if p.MaxDepth < 0 || p.MaxDepth > 20 {
		panic(fmt.Sprintf("engine: max_depth must be in [0, 20], got %v", p.MaxDepth))
	}
	if p.RProbeSmall <= 0 {
		panic(fmt.Sprintf("engine: r_probe1 must be > 0, got %v", p.RProbeSmall))
	}
	if p.ProbeMode && p.RProbeLarge <= p.RProbeSmall {
		return ballpiterr.New(ballpiterr.CodeInvalidProbeRadius)
	}
	return nil
}

// RadiusTable maps an element symbol to its van der Waals radius in
// ångström. Keys must be lowercase; Lookup lowercases the query symbol
// to match, making lookups effectively case-insensitive per spec.md §6.
type RadiusTable map[string]float64

// Lookup returns the radius for symbol, case-insensitively, and whether
// it was found.
func (t RadiusTable) Lookup(symbol string) (float64, bool) {
	r, ok := t[strings.ToLower(symbol)]
	return r, ok
}

// Cavity mirrors space.Cavity in the units of the external interface
// (spec.md §6's cavities list schema, plus the SPEC_FULL.md §11
// geometric-center supplement).
type Cavity struct {
	Volume    float64
	SurfCore  float64
	SurfShell float64
	Center    [3]float64
}

// ResultBundle is the output of a single Engine.Run call (spec.md §6).
type ResultBundle struct {
	Success        bool
	Status         string
	RunID          uuid.UUID
	ElapsedSeconds float64

	ChemicalFormula map[string]int
	Volumes         map[voxel.Type]float64
	Surfaces        space.SurfaceAreas
	Cavities        []Cavity

	// TypeTensor is the materialized bottom-level classification grid,
	// exposed for surface-map export; nil on a failed or empty run.
	TypeTensor *space.Space
}

// Engine runs spatial-analysis calculations. It holds no state between
// Run calls (spec.md §1's "no persistent state between calculations").
type Engine struct{}

// Run executes one full calculation: radius assignment, AtomTree build,
// Space build, pass 1, updateGrid, pass 2, tallying, and result assembly
// (spec.md §4.7). Cancellation is cooperative via ctx, polled at the
// suspension points documented in SPEC_FULL.md §5.
func (Engine) Run(ctx context.Context, params Parameters, atoms atom.Store, radii RadiusTable, n notifier.Notifier) (ResultBundle, error) {
	runID := uuid.New()

	if n == nil {
		n = notifier.Discard{}
	}

	if err := params.Validate(); err != nil {
		return ResultBundle{Success: false, Status: "Invalid parameters.", RunID: runID}, err
	}

	if len(atoms) == 0 {
		return ResultBundle{
			Success:         true,
			Status:          "Calculation done.",
			RunID:           runID,
			ChemicalFormula: map[string]int{},
			Volumes:         map[voxel.Type]float64{},
		}, nil
	}

	resolved := make(atom.Store, len(atoms))
	copy(resolved, atoms)
	for i := range resolved {
		r, ok := radii.Lookup(resolved[i].Symbol)
		if !ok {
			n.Warn(ballpiterr.CodeInvalidRadiusValue, fmt.Sprintf("no radius for element %q; assigned 0", resolved[i].Symbol))
			r = 0
		}
		resolved[i].Rad = r
	}

	formula := resolved.ChemicalFormula()

	tree := atomtree.Build(resolved)

	sp := space.New(params.GridStep, params.MaxDepth)
	sp.SetBoundaries(resolved, space.DefaultAddSpace(params.RProbeSmall, params.GridStep))
	sp.InitGrid()

	n.Log("classifying atom vs. core")
	if err := sp.ClassifyAtomVsCore(ctx, tree, resolved, params.RProbeSmall, n); err != nil {
		return abortedBundle(runID), nil
	}

	sp.UpdateGrid()

	n.Log("classifying shell vs. void")
	warn := func(code ballpiterr.Code, msg string) { n.Warn(code, msg) }
	if err := sp.ClassifyShellVsVoid(ctx, warn); err != nil {
		return abortedBundle(runID), nil
	}

	if params.ProbeMode {
		sp.ClassifyTwoProbe(tree, resolved, params.RProbeLarge)
	}

	volumes := map[voxel.Type]float64{
		voxel.Atom:                 sp.Volume(voxel.Atom),
		voxel.SmallProbeCore:       sp.Volume(voxel.SmallProbeCore),
		voxel.SmallProbeShellInner: sp.Volume(voxel.SmallProbeShellInner),
	}
	if params.ProbeMode {
		volumes[voxel.LargeProbeCore] = sp.Volume(voxel.LargeProbeCore)
		volumes[voxel.LargeProbeShell] = sp.Volume(voxel.LargeProbeShell)
	}

	var surfaces space.SurfaceAreas
	if params.CalcSurfaceAreas {
		surfaces = sp.SurfaceAreas()
	}

	spCavities := sp.Cavities()
	cavities := make([]Cavity, len(spCavities))
	for i, c := range spCavities {
		cavities[i] = Cavity{Volume: c.Volume, SurfCore: c.SurfCore, SurfShell: c.SurfShell, Center: c.Center}
	}

	return ResultBundle{
		Success:         true,
		Status:          "Calculation done.",
		RunID:           runID,
		ChemicalFormula: formula,
		Volumes:         volumes,
		Surfaces:        surfaces,
		Cavities:        cavities,
		TypeTensor:      sp,
	}, nil
}

func abortedBundle(runID uuid.UUID) ResultBundle {
	return ResultBundle{Success: false, Status: "Calculation aborted.", RunID: runID}
}
