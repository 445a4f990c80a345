// Package clockpro implements the CLOCK-Pro cache replacement policy as
// a fixed-capacity, key-only admission/eviction engine: it decides which
// keys are worth keeping resident, not where their values live.
//
// CLOCK-Pro is an adaptive, scan-resistant policy that balances recency
// and frequency without the bookkeeping of a full LRU stack, by keeping
// a circular list of descriptors partitioned into hot (long-lived),
// cold (recently admitted or demoted) and non-resident ("ghost")
// entries, plus an adaptive split — coldTarget — between the hot and
// cold resident populations.
//
// Two variants are provided, algorithmically equivalent but structured
// differently:
//
//   - [ThreeHand] keeps one ring and three scanning cursors (handHot,
//     handCold, handTest), matching the algorithm as originally published.
//   - [Epoch] keeps three separate rings (hot, cold, non-resident) and
//     replaces handTest and its per-descriptor in-test flag with a
//     monotonic epoch counter compared against the oldest hot
//     descriptor's epoch. It is simpler to reason about and is the
//     variant recommended for new call sites.
//
// Both satisfy [Engine] and, given the same access sequence, produce
// identical hit/miss/coldTarget trajectories.
//
// Glossary:
//
//   - Descriptor: the only state this package keeps per key — no value,
//     no weight, no TTL.
//
//   - Hot / cold: a resident descriptor's status. Hot descriptors are
//     protected from eviction until the hot ring itself grows past
//     maxSize-coldTarget; cold descriptors are the immediate eviction
//     candidates.
//
//   - Non-resident (ghost): a descriptor retained only for its access
//     history, consuming no slot against MaximumSize but capped at
//     MaximumSize of its own.
//
//   - Test period: the probationary window during which a re-access to
//     a cold or non-resident descriptor earns it promotion to hot.
//
//   - Referenced: a single bit set on every hit and cleared the next
//     time a hand inspects the descriptor — the sole per-access cost on
//     the fast path.
//
//   - coldTarget: the adaptive split maintained by internal/adaptive's
//     Controller, nudged up on a promising re-fault and down when a
//     ghost's test period lapses unclaimed.
//
// This package intentionally omits everything treated as an external
// collaborator: trace replay, configuration loading from a file or
// environment, statistics reporting/analysis, and any variant layering
// a decaying admission filter on top of the core.
package clockpro
