package clockpro_test

import (
	"fmt"

	"github.com/keyclock/clockpro"
)

func ExampleEpoch_Record() {
	cfg := clockpro.DefaultConfig(3)
	stats := &clockpro.CountingStats{}
	engine, err := clockpro.NewEpoch[string](cfg, stats)
	if err != nil {
		panic(err)
	}

	for _, key := range []string{"a", "b", "c", "a", "a"} {
		engine.Record(key)
	}

	fmt.Println("operations:", stats.Operations)
	fmt.Println("hits:", stats.Hits)
	fmt.Println("misses:", stats.Misses)

	// Output:
	// operations: 5
	// hits: 2
	// misses: 3
}

func ExampleThreeHand_Record() {
	cfg := clockpro.DefaultConfig(3)
	stats := &clockpro.CountingStats{}
	engine, err := clockpro.NewThreeHand[string](cfg, stats)
	if err != nil {
		panic(err)
	}

	for _, key := range []string{"a", "b", "c", "a", "a"} {
		engine.Record(key)
	}

	fmt.Println("operations:", stats.Operations)
	fmt.Println("hits:", stats.Hits)
	fmt.Println("misses:", stats.Misses)

	// Output:
	// operations: 5
	// hits: 2
	// misses: 3
}

func ExampleConfig_Validate() {
	cfg := clockpro.Config{MaximumSize: 0, PercentMinCold: 0.1, PercentMaxCold: 0.5, LowerBoundCold: 1}
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// clockpro: invalid maximum size: field MaximumSize = 0
}
