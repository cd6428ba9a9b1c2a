// Package typetree expands type signatures produced by a source-analysis
// toolchain into bounded, cycle-safe trees of named properties for
// nested-type rendering.
//
// [Decomposer] does the expansion. Shape classification is delegated to a
// [ShapeParser]; [NewSignatureParser] provides a default for the
// analyzer's textual signature grammar. Decomposition is memoized on a
// normalized form of the signature, so syntactically different but
// semantically identical signatures share one cached tree.
//
// Two independent guards bound the recursion: a depth guard that marks
// nodes past the configured maximum depth as truncated, and an explicit
// path-set cycle guard that marks self- or mutually-referential shapes as
// cyclic instead of recursing into them. Malformed signature text never
// produces an error — it yields a leaf node flagged ParseFailed so the
// rendering layer can show an unknown type without aborting the run.
package typetree
