// Command clockprobench replays a synthetic access trace against both
// replacement-engine variants and prints their hit and miss counts and
// hit rate. It exists to give the core something outside of the test
// suite to run against; the trace generator and reporting live here
// rather than in package clockpro itself, matching
// the boundary the design draws around the engine.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/keyclock/clockpro"
)

func main() {
	var (
		size     = flag.Int("size", 1024, "maximum resident size")
		universe = flag.Int("universe", 8192, "distinct key count in the synthetic trace")
		accesses = flag.Int("accesses", 200_000, "number of accesses to replay")
		skew     = flag.Float64("skew", 1.1, "Zipf skew parameter (>1)")
		seed     = flag.Int64("seed", 1, "PRNG seed")
	)
	flag.Parse()

	trace := generateZipfTrace(*universe, *accesses, *skew, *seed)
	cfg := clockpro.DefaultConfig(*size)

	if err := run("ThreeHand", cfg, trace, func(stats clockpro.Stats) (clockpro.Engine[int], error) {
		return clockpro.NewThreeHand[int](cfg, stats)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run("Epoch", cfg, trace, func(stats clockpro.Stats) (clockpro.Engine[int], error) {
		return clockpro.NewEpoch[int](cfg, stats)
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(name string, cfg clockpro.Config, trace []int, newEngine func(clockpro.Stats) (clockpro.Engine[int], error)) error {
	stats := &clockpro.CountingStats{}
	engine, err := newEngine(stats)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, key := range trace {
		engine.Record(key)
	}
	engine.Finished()

	total := stats.Hits + stats.Misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(stats.Hits) / float64(total) * 100
	}
	fmt.Printf("%-9s size=%-6d accesses=%-8d hits=%-8d misses=%-8d hit_rate=%.2f%%\n",
		name, cfg.MaximumSize, total, stats.Hits, stats.Misses, hitRate)
	return nil
}

func generateZipfTrace(universe, accesses int, skew float64, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	zipf := rand.NewZipf(rng, skew, 1.0, uint64(universe-1))
	trace := make([]int, accesses)
	for i := range trace {
		trace[i] = int(zipf.Uint64())
	}
	return trace
}
