package harness

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Digest is an order-independent fingerprint of a multiset of items: the
// lane-wise sum, mod 2^64, of each item's SHA3-256 hash split into four
// words. Two sides that saw the same items in any order agree.
type Digest [4]uint64

// Add folds it into the digest.
func (d *Digest) Add(it Item) {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(it.Producer))
	binary.LittleEndian.PutUint64(buf[8:], uint64(it.Seq))
	h := sha3.Sum256(buf[:])
	for i := range d {
		d[i] += binary.LittleEndian.Uint64(h[i*8:])
	}
}

// Merge folds every item of o into d.
func (d *Digest) Merge(o Digest) {
	for i := range d {
		d[i] += o[i]
	}
}

func (d Digest) String() string {
	return fmt.Sprintf("%016x%016x%016x%016x", d[0], d[1], d[2], d[3])
}
