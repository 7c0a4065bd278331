// Package dedup implements a generic first-seen-wins deduplication pass
// over any canonically-keyable payload, backed by internal/intmap's
// open-addressed table.
//
// It is deliberately generic over the payload type rather than importing
// internal/group directly, so that group's Enumerate can call this package
// to merge per-worker buffers without the two packages forming an import
// cycle.
package dedup

import "afkfinder/internal/intmap"

// Dedupe returns items in their original relative order, keeping only the
// first occurrence of each canonicalKey(item) value. Subsequent items
// sharing a key are dropped.
func Dedupe[T any](items []T, canonicalKey func(T) uint64) []T {
	seen := intmap.New[struct{}](len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if seen.PutIfAbsent(canonicalKey(item), struct{}{}) {
			out = append(out, item)
		}
	}
	return out
}
