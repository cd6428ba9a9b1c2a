// Package resolver resolves declaration references to concrete symbols
// through an external symbol table, memoizing each (reference, context)
// pair so the table is consulted at most once per warm cache key.
//
// Cache keys are derived structurally from the reference's symbol path,
// its package name, and the context symbol's canonical identity — never
// from a textual rendering of the reference, which can coincide for
// distinct symbols. Failed lookups are cached too, as ResolvedSymbol
// values carrying an error message; [Resolver.InvalidateFailures] is the
// manual hook for retrying them after external state changes.
package resolver
