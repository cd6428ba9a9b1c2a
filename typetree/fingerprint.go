package typetree

import (
	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Fingerprint returns a stable 64-bit identity for a decomposed tree,
// computed over a canonical msgpack encoding of every node. Renderers
// use it for anchors and change detection: structurally equal trees
// always share a fingerprint, and any difference in a name, annotation,
// flag or child order produces a different one.
func Fingerprint(n *PropertyNode) uint64 {
	if n == nil {
		return 0
	}
	// PropertyNode is all plain exported values; encoding cannot fail.
	buf, err := msgpack.Marshal(n)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(buf)
}
