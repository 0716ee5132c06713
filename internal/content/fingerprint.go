package content

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"
)

// Fingerprint is a content hash used for cheap dirty checks: two blocks (or
// trees) with equal fingerprints render identically, so incremental
// re-render can skip them without deep comparison.
type Fingerprint [32]byte

// String returns the fingerprint as lowercase hex.
func (f Fingerprint) String() string { return fmt.Sprintf("%x", f[:]) }

func writeField(h *blake3.Hasher, s string) {
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(s)))
	h.Write(n[:])
	h.Write([]byte(s))
}

// Fingerprint returns a hash over the block's full observable contents.
func (b *ContentBlock) Fingerprint() Fingerprint {
	h := blake3.New()
	writeField(h, b.key)
	writeField(h, b.parentKey)
	writeField(h, string(b.typ))
	writeField(h, fmt.Sprintf("%d", b.depth))
	writeField(h, b.text)
	for _, c := range b.chars {
		writeField(h, c.styles.key())
		writeField(h, c.entity)
	}
	if len(b.data) > 0 {
		keys := make([]string, 0, len(b.data))
		for k := range b.data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeField(h, k)
			writeField(h, fmt.Sprintf("%v", b.data[k]))
		}
	}
	var f Fingerprint
	h.Sum(f[:0])
	return f
}

// Fingerprint returns a hash over all blocks in document order.
func (m *BlockMap) Fingerprint() Fingerprint {
	h := blake3.New()
	for _, b := range m.BlocksInOrder() {
		f := b.Fingerprint()
		h.Write(f[:])
	}
	var f Fingerprint
	h.Sum(f[:0])
	return f
}
