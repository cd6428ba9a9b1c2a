// Package cache provides a bounded, generic memoization cache with LRU
// eviction, hit/miss statistics, and collision-free structural key
// construction.
//
// # Cache
//
// [Cache] is a fixed-capacity map from keys to values. When an insert
// would push the cache past its configured maximum size, the least
// recently accessed entry is evicted first. Both [Cache.Get] and
// [Cache.Set] refresh an entry's recency, so a key that is read often
// survives longer than one written once and forgotten.
//
// The capacity is validated at construction: a maximum size of zero or
// less is a programming error and [New] returns an error wrapping
// [ErrInvalidConfig] rather than clamping to some arbitrary floor.
// Silent clamping hides misconfiguration until cache behavior diverges
// from what the caller believes it configured.
//
// # Keys
//
// Correct memoization lives or dies on key construction. A cache key
// must be a pure, collision-free encoding of the logical input: two
// inputs denoting the same entity always produce the same key, and two
// inputs denoting different entities never share one. Relying on a
// generic textual rendering of an input is not enough — distinct
// entities can stringify identically (same symbol path, different
// package) and would then silently share a cache slot, returning the
// wrong entity's cached result.
//
// [StructuralKey] builds such an encoding from the ordered canonical
// fields of an input. It fails loudly (wrapping [ErrKey]) when a field
// cannot be encoded; callers must propagate that error instead of
// substituting an under-discriminating placeholder key.
//
// # Statistics
//
// [Cache.Stats] returns a point-in-time [Statistics] snapshot — size,
// capacity, hit and miss counts, and the derived hit rate. Counter
// tracking can be disabled with [WithStats] for callers that want the
// cheapest possible lookups.
package cache
