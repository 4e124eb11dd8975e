package backup

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Checksum is the digest of a file's content. Equality is byte-wise.
type Checksum []byte

// Equal reports whether two checksums are byte-for-byte identical.
func (c Checksum) Equal(other Checksum) bool {
	return bytes.Equal(c, other)
}

// Hex returns the checksum as a lowercase hex string, the form used in
// manifest files.
func (c Checksum) Hex() string {
	return hex.EncodeToString(c)
}

// Manifest maps file paths to content checksums, preserving the order in
// which entries were first inserted. The serialized form is written in walk
// order, not sorted, so insertion order is part of the contract.
type Manifest struct {
	entries map[string]Checksum
	order   []string
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: make(map[string]Checksum)}
}

// Set records the checksum for path. A repeated path keeps its original
// position but takes the new checksum (last write wins).
func (m *Manifest) Set(path string, sum Checksum) {
	if _, ok := m.entries[path]; !ok {
		m.order = append(m.order, path)
	}
	m.entries[path] = sum
}

// Get returns the checksum recorded for path.
func (m *Manifest) Get(path string) (Checksum, bool) {
	sum, ok := m.entries[path]
	return sum, ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Paths returns all paths in insertion order. The returned slice is shared;
// callers must not modify it.
func (m *Manifest) Paths() []string {
	return m.order
}

// DecodeManifest parses a manifest from its on-disk text form: one
// `<checksum-hex><whitespace><path>` record per line. Parsing is strict: a
// line without exactly two whitespace-separated tokens, or whose first token
// is not even-length hex, fails with a *ParseError rather than being skipped.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	m := NewManifest()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("expected 2 fields, found %d", len(fields)),
			}
		}
		if len(fields[0])%2 != 0 {
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("odd-length checksum %q", fields[0]),
			}
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil {
			return nil, &ParseError{
				Line:   line,
				Reason: fmt.Sprintf("invalid checksum %q: %v", fields[0], err),
			}
		}
		m.Set(fields[1], sum)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return m, nil
}

// EncodeManifest writes the manifest in its on-disk text form, one
// `<checksum-hex>\t<path>\n` record per entry, in insertion order.
func EncodeManifest(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)
	for _, path := range m.Paths() {
		sum, _ := m.Get(path)
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", sum.Hex(), path); err != nil {
			return fmt.Errorf("writing manifest entry for %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing manifest: %w", err)
	}
	return nil
}
