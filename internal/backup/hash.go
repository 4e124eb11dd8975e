package backup

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// HashFactory produces a fresh streaming hasher. The selector constructs one
// hasher per file; tests substitute a counting factory to prove the
// no-hashing fast path.
type HashFactory func() hash.Hash

// algorithms is the closed set of supported checksum algorithms.
// The manifest format stores 2x digest-size hex characters, so the digest
// size of the chosen algorithm fixes the checksum width for a manifest.
var algorithms = map[string]HashFactory{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"xxh64":  func() hash.Hash { return xxhash.New() },
}

// DefaultHashName is used when no algorithm is configured or requested.
const DefaultHashName = "sha1"

// LookupHash returns the factory for a named algorithm, failing fast on
// unsupported names so a bad --hash-algo aborts before any file is touched.
func LookupHash(name string) (HashFactory, error) {
	f, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm %q (supported: %v)", name, HashNames())
	}
	return f, nil
}

// HashNames returns the supported algorithm names, sorted.
func HashNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
