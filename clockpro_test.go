package clockpro

import (
	"errors"
	"testing"
)

// scenarioConfig matches the concrete scenarios: maxSize=3, minCold=1,
// maxCold=2, lowerBoundCold=1.
func scenarioConfig() Config {
	return Config{
		MaximumSize:    3,
		PercentMinCold: 1.0 / 3.0,
		PercentMaxCold: 2.0 / 3.0,
		LowerBoundCold: 1,
	}
}

// newEngines builds one of each variant over the same config and stats
// sink, so a single scenario can drive both without duplication.
func newEngines(t *testing.T, cfg Config) (*ThreeHand[int], *Epoch[int]) {
	t.Helper()
	th, err := NewThreeHand[int](cfg, &CountingStats{})
	if err != nil {
		t.Fatalf("NewThreeHand: %v", err)
	}
	ep, err := NewEpoch[int](cfg, &CountingStats{})
	if err != nil {
		t.Fatalf("NewEpoch: %v", err)
	}
	return th, ep
}

func recordAll[K comparable](e Engine[K], keys []K) {
	for _, k := range keys {
		e.Record(k)
	}
}

func counting(t *testing.T, e Engine[int]) *CountingStats {
	t.Helper()
	cs, ok := e.Stats().(*CountingStats)
	if !ok {
		t.Fatalf("expected *CountingStats, got %T", e.Stats())
	}
	return cs
}

func TestWarmUp(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)
	keys := []int{1, 2, 3}

	for _, e := range []Engine[int]{th, ep} {
		recordAll[int](e, keys)
		cs := counting(t, e)
		if cs.Misses != 3 || cs.Hits != 0 {
			t.Errorf("%T: got misses=%d hits=%d, want 3/0", e, cs.Misses, cs.Hits)
		}
		e.Finished()
	}
}

func TestPureLRUWorkload(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)
	keys := []int{1, 2, 3, 4, 1, 2, 3, 4}

	for _, e := range []Engine[int]{th, ep} {
		recordAll[int](e, keys)
		cs := counting(t, e)
		if cs.Misses != 8 || cs.Hits != 0 {
			t.Errorf("%T: got misses=%d hits=%d, want 8/0", e, cs.Misses, cs.Hits)
		}
		e.Finished()
	}
}

func TestHotPromotion(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)
	keys := []int{1, 2, 3, 1, 1, 1}

	for _, e := range []Engine[int]{th, ep} {
		recordAll[int](e, keys)
		cs := counting(t, e)
		if cs.Misses != 3 || cs.Hits != 3 {
			t.Errorf("%T: got misses=%d hits=%d, want 3/3", e, cs.Misses, cs.Hits)
		}
		e.Finished()
	}
}

func TestScanResistance(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)

	for _, e := range []Engine[int]{th, ep} {
		for _, k := range []int{1, 2, 3, 1} {
			e.Record(k)
		}
		cs := counting(t, e)
		before := cs.Hits
		for _, k := range []int{4, 5, 6, 7} {
			e.Record(k)
		}
		e.Record(1)
		if cs.Hits != before+1 {
			t.Errorf("%T: key 1 should survive the scan and hit; hits before=%d after=%d", e, before, cs.Hits)
		}
		e.Finished()
	}
}

func TestRefaultAdaptation(t *testing.T) {
	cfg := Config{MaximumSize: 2, PercentMinCold: 0.5, PercentMaxCold: 1, LowerBoundCold: 1}
	th, ep := newEngines(t, cfg)

	for _, e := range []Engine[int]{th, ep} {
		// Warm up (key 1 lands hot, key 2 cold), then keys 3 and 4 push
		// keys 2 and 3 out to non-resident; key 1 stays hot, so its last
		// access is a hit. This sequence does not re-fault a ghost or
		// destroy a cold descriptor; the test only checks that the
		// invariants hold afterwards.
		for _, k := range []int{1, 2, 3, 4, 1} {
			e.Record(k)
		}
		e.Finished()
	}
}

func TestGhostCapEnforcement(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)

	seq := make([]int, 0, 64)
	for i := range 40 {
		seq = append(seq, i%9)
	}

	for _, e := range []Engine[int]{th, ep} {
		for _, k := range seq {
			e.Record(k)
			e.Finished()
		}
	}
}

func TestHitBitIdempotence(t *testing.T) {
	cfg := scenarioConfig()
	th, ep := newEngines(t, cfg)

	for _, e := range []Engine[int]{th, ep} {
		e.Record(1)
		e.Finished()
		cs := counting(t, e)
		before := *cs
		for range 5 {
			e.Record(1)
		}
		if cs.Hits != before.Hits+5 || cs.Misses != before.Misses || cs.Evictions != before.Evictions {
			t.Errorf("%T: repeated hit changed non-hit counters: before=%+v after=%+v", e, before, cs)
		}
		e.Finished()
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"valid", DefaultConfig(16), nil},
		{"zero size", Config{MaximumSize: 0, PercentMinCold: 0.1, PercentMaxCold: 0.5, LowerBoundCold: 1}, ErrInvalidMaximumSize},
		{"negative size", Config{MaximumSize: -1, PercentMinCold: 0.1, PercentMaxCold: 0.5, LowerBoundCold: 1}, ErrInvalidMaximumSize},
		{"min cold zero", Config{MaximumSize: 16, PercentMinCold: 0, PercentMaxCold: 0.5, LowerBoundCold: 1}, ErrInvalidPercentMinCold},
		{"min cold over one", Config{MaximumSize: 16, PercentMinCold: 1.1, PercentMaxCold: 0.5, LowerBoundCold: 1}, ErrInvalidPercentMinCold},
		{"max cold below min cold", Config{MaximumSize: 16, PercentMinCold: 0.5, PercentMaxCold: 0.25, LowerBoundCold: 1}, ErrInvalidPercentMaxCold},
		{"lower bound cold zero", Config{MaximumSize: 16, PercentMinCold: 0.1, PercentMaxCold: 0.5, LowerBoundCold: 0}, ErrInvalidLowerBoundCold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error wrapping %v", tt.want)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want error wrapping %v", err, tt.want)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := Config{MaximumSize: 0}
	if _, err := NewThreeHand[int](bad, nil); err == nil {
		t.Error("NewThreeHand accepted an invalid config")
	}
	if _, err := NewEpoch[int](bad, nil); err == nil {
		t.Error("NewEpoch accepted an invalid config")
	}
}

func TestNilStatsDefaultsToNoop(t *testing.T) {
	cfg := scenarioConfig()
	th, err := NewThreeHand[int](cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := th.Stats().(NoopStats); !ok {
		t.Errorf("NewThreeHand(nil stats) = %T, want NoopStats", th.Stats())
	}
	th.Record(1)
}
