package cache

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrKey marks a failure to construct a collision-free cache key from
// an input's canonical fields. Callers must propagate it; substituting
// a constant or under-discriminating placeholder key would let two
// distinct entities share a cache slot.
var ErrKey = errors.New("cache: key construction failed")

// StructuralKey encodes the ordered parts into a single key string.
// The encoding is injective over distinct part tuples: each part is
// msgpack-encoded inside a length-prefixed array, so ["a.b"] and
// ["a","b"], or the same parts in a different order, never collide.
// Two calls with equal parts always produce the same key.
func StructuralKey(parts ...any) (string, error) {
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no key parts", ErrKey)
	}
	buf, err := msgpack.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKey, err)
	}
	return string(buf), nil
}

// KeyDigest returns a compact 64-bit digest of a structural key, for
// logging and anchor generation. The digest is not a substitute for
// the key itself: cache slots are addressed by the full encoding.
func KeyDigest(key string) uint64 {
	return xxhash.Sum64String(key)
}
