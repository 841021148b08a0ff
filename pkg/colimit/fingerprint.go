package colimit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// CanonicalString renders a morphism in a stable textual form: the
// endpoint classes followed by one line per bead with every field
// spelled out. Two morphisms render identically exactly when they are
// structurally equal.
func CanonicalString(m *Mor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %s\n", m.SrcRep, m.DstRep)
	for _, d := range m.Chain {
		fmt.Fprintf(&b, "lr %q %q %q %q %q %q %q %q %q %q\n",
			d.LeftArrow, d.RightArrow, d.I, d.K, d.J, d.A, d.A1, d.B, d.F0, d.F1)
	}
	return b.String()
}

// Fingerprint computes the SHA-256 digest of a morphism's canonical
// form under a "mor len\x00content" envelope. Equal fingerprints of
// normalized morphisms make a stable cache key; the digest is not an
// equality oracle for un-normalized chains.
func Fingerprint(m *Mor) string {
	content := CanonicalString(m)
	h := sha256.New()
	fmt.Fprintf(h, "mor %d\x00", len(content))
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
