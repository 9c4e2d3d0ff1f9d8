package patternpack

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest identifies content by algorithm and hex-encoded hash, mirroring
// the registry's "sha256:<hex>" artifact-digest format.
type Digest struct {
	Algorithm string
	Hex       string
}

// String returns the canonical "algorithm:hex" form.
func (d Digest) String() string {
	return d.Algorithm + ":" + d.Hex
}

// ParseDigest parses a digest string of the form "sha256:<hex>".
func ParseDigest(s string) (Digest, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Digest{}, fmt.Errorf("invalid digest %q: expected algorithm:hex", s)
	}
	if parts[0] != "sha256" {
		return Digest{}, fmt.Errorf("unsupported digest algorithm %q", parts[0])
	}
	if _, err := hex.DecodeString(parts[1]); err != nil {
		return Digest{}, fmt.Errorf("invalid digest hex %q: %w", parts[1], err)
	}
	return Digest{Algorithm: parts[0], Hex: parts[1]}, nil
}

// ComputeDigest returns the sha256 digest of data.
func ComputeDigest(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest{Algorithm: "sha256", Hex: hex.EncodeToString(sum[:])}
}

// VerifyDigest reports whether data matches want.
func VerifyDigest(data []byte, want Digest) bool {
	return ComputeDigest(data) == want
}
