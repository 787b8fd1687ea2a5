package testutil

import "testing"

// RunConfig configures a convergence run.
type RunConfig struct {
	// MaxOps is the number of operations to execute, split across both
	// sites by an alternating/random picker.
	MaxOps int

	// CompareEveryN asserts convergence after every N operations, not
	// just at the end, so a divergence is caught near where it was
	// introduced instead of after thousands more ops have piled up.
	// 0 disables the periodic check.
	CompareEveryN int
}

// DefaultRunConfig returns the configuration used for scenario S5 (the
// spec's 5,000-op long random stream).
func DefaultRunConfig() RunConfig {
	return RunConfig{MaxOps: 5000, CompareEveryN: 250}
}

// RunConvergence drives MaxOps operations from seed across two replicas,
// picking which site acts next from the same byte stream (the "opposite
// pickers" of spec scenario S5), and asserts the two converge to the
// same sequence at the end (and periodically, per cfg.CompareEveryN).
func RunConvergence(tb testing.TB, seed []byte, cfg RunConfig) *Harness {
	tb.Helper()

	h := NewHarness(tb, 1)
	picker := NewByteStream(seed)
	genCfg := DefaultOpGenConfig()
	gen := NewOpGenerator(seed, genCfg)

	for i := 1; i <= cfg.MaxOps && gen.HasMore(); i++ {
		originIsA := picker.NextBool()

		curLen := h.A.Len()
		if !originIsA {
			curLen = h.B.Len()
		}

		op := gen.NextOp(curLen)
		h.StepLocal(op, originIsA)

		if cfg.CompareEveryN > 0 && i%cfg.CompareEveryN == 0 {
			h.AssertConverged()
		}
	}

	h.AssertConverged()

	return h
}
