// Command ballpit is a minimal demonstration entry point: it builds a
// small synthetic structure, runs the spatial-analysis engine, and
// prints the result bundle. A full CLI (argument parsing, file import,
// report/map export) is out of scope for this module (spec.md §1); this
// binary exists only to exercise engine.Engine end to end.
package main

import (
	"context"
	"fmt"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/engine"
	"github.com/jmaglic/ballpit/notifier"
	"github.com/jmaglic/ballpit/voxel"
)

func main() {
	atoms := atom.Store{
		{Pos: [3]float64{0, 0, 0}, Symbol: "O"},
		{Pos: [3]float64{0.96, 0, 0}, Symbol: "H"},
		{Pos: [3]float64{-0.24, 0.93, 0}, Symbol: "H"},
	}
	radii := engine.RadiusTable{"o": 1.52, "h": 1.2}

	params := engine.Parameters{
		GridStep:         0.1,
		MaxDepth:         4,
		RProbeSmall:      1.4,
		CalcSurfaceAreas: true,
	}

	n := notifier.Stdout{}
	bundle, err := engine.Engine{}.Run(context.Background(), params, atoms, radii, n)
	if err != nil {
		fmt.Println("run failed:", err)
		return
	}

	fmt.Println("status:", bundle.Status)
	fmt.Println("run id:", bundle.RunID)
	fmt.Println("chemical formula:", bundle.ChemicalFormula)
	fmt.Printf("atom volume: %.3f A^3\n", bundle.Volumes[voxel.Atom])
	fmt.Printf("probe-excluded shell volume: %.3f A^3\n", bundle.Volumes[voxel.SmallProbeShellInner])
	fmt.Printf("probe-accessible core volume: %.3f A^3\n", bundle.Volumes[voxel.SmallProbeCore])
	fmt.Printf("van der Waals surface: %.3f A^2\n", bundle.Surfaces.VdW)
	fmt.Println("cavities:", len(bundle.Cavities))
}
