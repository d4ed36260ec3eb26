package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jmaglic/ballpit/atom"
	"github.com/jmaglic/ballpit/ballpiterr"
	"github.com/jmaglic/ballpit/engine"
	"github.com/jmaglic/ballpit/notifier"
	"github.com/jmaglic/ballpit/voxel"
)

var radii = engine.RadiusTable{"h": 1.2, "c": 1.7, "n": 1.55, "o": 1.52}

// Scenario 1: single hydrogen atom, expected van-der-Waals volume
// (4/3)π(1.2)^3 = 7.238 Å³ ± 1%.
func TestSingleHydrogenAtom(t *testing.T) {
	atoms := atom.Store{{Pos: [3]float64{0, 0, 0}, Symbol: "H"}}
	// r_probe=0 per spec.md §8 scenario 1; RProbeSmall must be > 0 per
	// Validate, so a negligible value stands in for it.
	params := engine.Parameters{GridStep: 0.1, MaxDepth: 4, RProbeSmall: 1e-9}

	bundle, err := engine.Engine{}.Run(context.Background(), params, atoms, radii, notifier.Discard{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bundle.Success {
		t.Fatalf("expected success, got status %q", bundle.Status)
	}

	expected := 4.0 / 3.0 * math.Pi * 1.2 * 1.2 * 1.2
	got := bundle.Volumes[voxel.Atom]
	if diff := cmp.Diff(expected, got, cmpopts.EquateApprox(0, expected*0.01)); diff != "" {
		t.Fatalf("van der Waals volume mismatch (-want +got):\n%s", diff)
	}
}

// Scenario 4: empty run. Invoked directly (no upstream parser), the
// Engine reports success with zero volumes rather than error 102, per
// spec.md §8 scenario 4's second accepted outcome.
func TestEmptyRun(t *testing.T) {
	params := engine.Parameters{GridStep: 0.1, MaxDepth: 4, RProbeSmall: 1.2}
	bundle, err := engine.Engine{}.Run(context.Background(), params, atom.Store{}, radii, notifier.Discard{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bundle.Success {
		t.Fatalf("expected success on empty run, got status %q", bundle.Status)
	}
	if len(bundle.Volumes) != 0 {
		t.Fatalf("expected no volumes on empty run, got %v", bundle.Volumes)
	}
}

// Scenario 5: inverted probes. Expected success=false, error 104.
func TestInvertedProbes(t *testing.T) {
	atoms := atom.Store{{Pos: [3]float64{0, 0, 0}, Symbol: "H"}}
	params := engine.Parameters{
		GridStep: 0.1, MaxDepth: 4,
		ProbeMode: true, RProbeSmall: 2.0, RProbeLarge: 1.5,
	}
	bundle, err := engine.Engine{}.Run(context.Background(), params, atoms, radii, notifier.Discard{})
	if err == nil {
		t.Fatalf("expected error for inverted probe radii")
	}
	if bundle.Success {
		t.Fatalf("expected success=false for inverted probe radii")
	}
}

// Scenario: cooperative cancellation returns success=false, status
// "Calculation aborted."
func TestCancellation(t *testing.T) {
	atoms := atom.Store{{Pos: [3]float64{0, 0, 0}, Symbol: "H"}}
	params := engine.Parameters{GridStep: 0.1, MaxDepth: 4, RProbeSmall: 1.2}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bundle, err := engine.Engine{}.Run(ctx, params, atoms, radii, notifier.Discard{})
	if err != nil {
		t.Fatalf("Run should not return an error on cancellation: %v", err)
	}
	if bundle.Success {
		t.Fatalf("expected success=false on cancellation")
	}
	if bundle.Status != "Calculation aborted." {
		t.Fatalf("expected aborted status, got %q", bundle.Status)
	}
}

// Missing radii produce a soft warning rather than a fatal error.
func TestMissingRadiusWarns(t *testing.T) {
	atoms := atom.Store{{Pos: [3]float64{0, 0, 0}, Symbol: "Xx"}}
	params := engine.Parameters{GridStep: 0.2, MaxDepth: 3, RProbeSmall: 1.2}

	var warned bool
	rec := recorderNotifier{warn: func() { warned = true }}
	bundle, err := engine.Engine{}.Run(context.Background(), params, atoms, radii, rec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bundle.Success {
		t.Fatalf("expected success even with a missing radius")
	}
	if !warned {
		t.Fatalf("expected a soft warning for the missing radius")
	}
}

type recorderNotifier struct {
	warn func()
}

func (recorderNotifier) Progress(int) {}
func (recorderNotifier) Log(string)   {}
func (r recorderNotifier) Warn(code ballpiterr.Code, msg string) { r.warn() }
