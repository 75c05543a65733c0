package utils

import "hash/fnv"

// U64 hashes s with FNV-1a.
func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// FingerprintString returns the statement-cache key for a compiled SQL text.
func FingerprintString(s string) uint64 {
	return U64(s)
}
