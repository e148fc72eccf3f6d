// Package datrie provides a compact static dictionary mapping byte-string
// keys to integer values, backed by a double-array trie.
//
// The double array encodes a trie in two parallel integer fields (BASE and
// CHECK) per cell, giving O(1) per-byte transitions without pointer-chasing
// node objects. Lookups cost O(len(key)) regardless of dictionary size.
//
// The structure is built once from the full key set and is immutable
// afterwards; it supports exact lookup, common-prefix enumeration, and
// resumable byte-at-a-time traversal, and it serializes to a flat binary
// blob that can be memory-mapped back in with zero deserialization cost.
//
// # Quick Start
//
//	keys := [][]byte{[]byte("A"), []byte("TO"), []byte("TOTAL")}
//	da, _ := datrie.Build[int32](keys)
//
//	r, err := da.ExactMatch([]byte("TOTAL"))    // r.Value == 2
//	matches := da.CommonPrefixSearch([]byte("TOTALLY"))
//
// # Persistence
//
//	_ = da.SaveToFile("keys.dic")
//	da2, _ := datrie.LoadFromFile[int32]("keys.dic")
//	da3, _ := datrie.Open[int32]("keys.dic") // zero-copy, memory-mapped
//	defer da3.Close()
//
// Dictionaries can also live in object storage via the blobstore package
// (local filesystem, in-memory, MinIO, S3).
//
// # Concurrency
//
// A built or loaded DoubleArray is safe for unlimited concurrent readers.
// Construction is not concurrent with anything: build, then share.
package datrie
