package patternpack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/filmlane/classifier/core/arabic"
)

// Manifest describes a pattern pack's identity and content, independent of
// how it was transported or signed.
type Manifest struct {
	Name                    string   `json:"name"`
	Version                 Version  `json:"version"`
	AdditionalPlaceNames    []string `json:"additionalPlaceNames,omitempty"`
	AdditionalInvalidTokens []string `json:"additionalInvalidTokens,omitempty"`
}

// manifestWire is Manifest's JSON shape, with Version as a plain string.
type manifestWire struct {
	Name                    string   `json:"name"`
	Version                 string   `json:"version"`
	AdditionalPlaceNames    []string `json:"additionalPlaceNames,omitempty"`
	AdditionalInvalidTokens []string `json:"additionalInvalidTokens,omitempty"`
}

// Bundle is a pattern pack read from disk: its manifest, the raw manifest
// bytes the digest and signature were computed over, and the signature.
type Bundle struct {
	Manifest     Manifest
	RawManifest  []byte
	Digest       Digest
	Signature    []byte
	SignerPubKey []byte // PEM, empty if unsigned
}

// ErrDigestMismatch is returned when a bundle's content does not hash to
// its declared digest.
var ErrDigestMismatch = fmt.Errorf("pattern pack digest mismatch")

// LoadBundle reads a pattern pack directory containing manifest.json,
// manifest.sig (optional, raw Ed25519 signature bytes), and
// manifest.pub (optional, PEM public key of the signer).
func LoadBundle(dir string) (Bundle, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return Bundle{}, fmt.Errorf("reading manifest: %w", err)
	}

	var wire manifestWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Bundle{}, fmt.Errorf("parsing manifest: %w", err)
	}
	version, err := ParseVersion(wire.Version)
	if err != nil {
		return Bundle{}, fmt.Errorf("parsing manifest version: %w", err)
	}

	b := Bundle{
		Manifest: Manifest{
			Name:                    wire.Name,
			Version:                 version,
			AdditionalPlaceNames:    wire.AdditionalPlaceNames,
			AdditionalInvalidTokens: wire.AdditionalInvalidTokens,
		},
		RawManifest: raw,
		Digest:      ComputeDigest(raw),
	}

	if sig, err := os.ReadFile(filepath.Join(dir, "manifest.sig")); err == nil {
		b.Signature = sig
		if pub, err := os.ReadFile(filepath.Join(dir, "manifest.pub")); err == nil {
			b.SignerPubKey = pub
		}
	}

	return b, nil
}

// Verify checks b's digest against want (if non-zero) and, if b carries a
// signature, checks it against keyring. It returns the trust level reached:
// TrustStudio for a signature from a keyring key, TrustCommunity for a
// valid signature from an unknown key, TrustUnverified otherwise.
func Verify(b Bundle, want Digest, keyring *Keyring) (TrustLevel, error) {
	if want != (Digest{}) && !VerifyDigest(b.RawManifest, want) {
		return TrustUnverified, ErrDigestMismatch
	}

	if len(b.Signature) == 0 || len(b.SignerPubKey) == 0 {
		return TrustUnverified, nil
	}

	ok, err := VerifySignature(b.RawManifest, b.Signature, b.SignerPubKey)
	if err != nil {
		return TrustUnverified, fmt.Errorf("verifying signature: %w", err)
	}
	if !ok {
		return TrustUnverified, fmt.Errorf("signature does not verify")
	}

	pub, err := ParsePublicKey(b.SignerPubKey)
	if err != nil {
		return TrustUnverified, err
	}
	if keyring != nil && keyring.Find(KeyFingerprint(pub)) != nil {
		return TrustStudio, nil
	}
	return TrustCommunity, nil
}

// Apply merges a bundle's manifest into the running process's classification
// lexicon. Callers should only apply bundles that have reached at least
// TrustCommunity; Apply itself does not check trust.
func Apply(m Manifest) {
	arabic.PlaceNamePrefixes = appendNewStrings(arabic.PlaceNamePrefixes, m.AdditionalPlaceNames)
	for _, tok := range m.AdditionalInvalidTokens {
		arabic.MEMORY_INVALID_SINGLE_TOKENS[tok] = struct{}{}
	}
}

func appendNewStrings(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			existing = append(existing, s)
			seen[s] = true
		}
	}
	return existing
}
