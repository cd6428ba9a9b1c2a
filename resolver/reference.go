package resolver

import "strings"

// DeclarationReference is the structural identity of a symbol: the path
// of names leading to it and, optionally, the package it lives in. It
// is independent of any textual rendering of the reference.
type DeclarationReference struct {
	SymbolPath  []string
	PackageName string
}

// String renders the reference for display. Two distinct references can
// render identically; the rendering is never used as a cache key.
func (r DeclarationReference) String() string {
	path := strings.Join(r.SymbolPath, ".")
	if r.PackageName == "" {
		return path
	}
	return r.PackageName + "!" + path
}

// ContextSymbol narrows the scope a reference is resolved in. The
// interface names exactly the fields key construction needs, so a key
// can never depend on an unconstrained shape or a default rendering.
type ContextSymbol interface {
	CanonicalName() string
	PackageName() string
	MemberCount() int
}

// APIItem is a handle to an externally owned documentation item. The
// resolver never owns the item's lifetime, only the lookup result.
type APIItem interface {
	CanonicalName() string
}

// ResolvedSymbol is the outcome of a lookup: either a handle to an
// external item, or a failure carrying ErrorMessage. Failures are data,
// not errors — the rendering layer shows a broken link and the run
// continues.
type ResolvedSymbol struct {
	Item         APIItem
	ErrorMessage string
}

// Resolved reports whether the lookup found a symbol.
func (r ResolvedSymbol) Resolved() bool {
	return r.ErrorMessage == "" && r.Item != nil
}

// SymbolTable is the external collaborator performing actual lookups.
// Resolve is treated as opaque and potentially expensive; a failed
// lookup is reported through the returned ResolvedSymbol, not an error.
type SymbolTable interface {
	Resolve(ref DeclarationReference, context ContextSymbol) ResolvedSymbol
}
