package patternpack

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TrustLevel classifies the confidence established for a loaded bundle.
// Higher ordinal values indicate stronger guarantees.
type TrustLevel int

const (
	// TrustUnverified means no valid signature was found.
	TrustUnverified TrustLevel = iota
	// TrustCommunity means a valid signature from a key not in the keyring.
	TrustCommunity
	// TrustStudio means a valid signature from a key in the keyring.
	TrustStudio
)

// String returns the human-readable name of the trust level.
func (t TrustLevel) String() string {
	switch t {
	case TrustUnverified:
		return "unverified"
	case TrustCommunity:
		return "community"
	case TrustStudio:
		return "studio"
	default:
		return fmt.Sprintf("TrustLevel(%d)", int(t))
	}
}

// Key is a trusted Ed25519 public key kept in a studio keyring.
type Key struct {
	Name         string `json:"name"`
	Fingerprint  string `json:"fingerprint"`
	PublicKeyPEM string `json:"publicKeyPem"`
}

// Keyring holds the set of keys a studio trusts to sign its own pattern
// packs.
type Keyring struct {
	Keys []Key `json:"keys"`
}

// NewKeyring returns an empty keyring.
func NewKeyring() *Keyring { return &Keyring{} }

// Add appends k, silently skipping a duplicate fingerprint.
func (kr *Keyring) Add(k Key) {
	for _, existing := range kr.Keys {
		if existing.Fingerprint == k.Fingerprint {
			return
		}
	}
	kr.Keys = append(kr.Keys, k)
}

// Find returns the key with the given fingerprint, or nil.
func (kr *Keyring) Find(fingerprint string) *Key {
	for i := range kr.Keys {
		if kr.Keys[i].Fingerprint == fingerprint {
			return &kr.Keys[i]
		}
	}
	return nil
}

// NewKey derives a Key's fingerprint from a PEM-encoded Ed25519 public key.
func NewKey(name string, publicKeyPEM []byte) (Key, error) {
	pub, err := ParsePublicKey(publicKeyPEM)
	if err != nil {
		return Key{}, fmt.Errorf("parsing public key: %w", err)
	}
	return Key{Name: name, Fingerprint: KeyFingerprint(pub), PublicKeyPEM: string(publicKeyPEM)}, nil
}

// KeyFingerprint returns the SHA-256 fingerprint of a raw public key.
func KeyFingerprint(pub ed25519.PublicKey) string {
	h := sha256.Sum256(pub)
	return hex.EncodeToString(h[:])
}

// LoadKeyring reads a keyring from a JSON file, returning an empty keyring
// (not an error) if the file does not exist yet.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewKeyring(), nil
		}
		return nil, err
	}
	var kr Keyring
	if err := json.Unmarshal(data, &kr); err != nil {
		return nil, fmt.Errorf("corrupt keyring at %q: %w", path, err)
	}
	return &kr, nil
}

// SaveKeyring writes kr to path atomically, creating parent directories.
func SaveKeyring(path string, kr *Keyring) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating keyring dir: %w", err)
	}
	data, err := json.MarshalIndent(kr, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling keyring: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp keyring file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming keyring file: %w", err)
	}
	return nil
}

// DefaultKeyringPath returns ~/.filmlane/trust/keyring.json.
func DefaultKeyringPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".filmlane", "trust", "keyring.json")
}

// ed25519PKIXPrefix is the ASN.1 DER prefix for an Ed25519 public key
// encoded as a PKIX SubjectPublicKeyInfo (OID 1.3.101.112), used to avoid
// pulling in crypto/x509 for one well-known prefix.
var ed25519PKIXPrefix = []byte{0x30, 0x2a, 0x30, 0x05, 0x06, 0x03, 0x2b, 0x65, 0x70, 0x03, 0x21, 0x00}

// ParsePublicKey parses a PEM-encoded Ed25519 public key, accepting either
// a raw 32-byte key ("ED25519 PUBLIC KEY") or a PKIX/DER key ("PUBLIC KEY").
func ParsePublicKey(pemData []byte) (ed25519.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	switch block.Type {
	case "ED25519 PUBLIC KEY":
		if len(block.Bytes) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("raw Ed25519 key: got %d bytes, want %d", len(block.Bytes), ed25519.PublicKeySize)
		}
		return ed25519.PublicKey(block.Bytes), nil
	case "PUBLIC KEY":
		return parsePKIXEd25519(block.Bytes)
	default:
		return nil, fmt.Errorf("unsupported PEM block type: %q", block.Type)
	}
}

func parsePKIXEd25519(der []byte) (ed25519.PublicKey, error) {
	prefixLen := len(ed25519PKIXPrefix)
	want := prefixLen + ed25519.PublicKeySize
	if len(der) != want {
		return nil, fmt.Errorf("PKIX Ed25519 key: got %d bytes, want %d", len(der), want)
	}
	for i := 0; i < prefixLen; i++ {
		if der[i] != ed25519PKIXPrefix[i] {
			return nil, errors.New("PKIX Ed25519 key: invalid ASN.1 prefix")
		}
	}
	return ed25519.PublicKey(der[prefixLen:]), nil
}

// VerifySignature verifies an Ed25519 signature over content with a
// PEM-encoded public key.
func VerifySignature(content, signature, publicKeyPEM []byte) (bool, error) {
	pub, err := ParsePublicKey(publicKeyPEM)
	if err != nil {
		return false, fmt.Errorf("parsing public key: %w", err)
	}
	if len(signature) != ed25519.SignatureSize {
		return false, fmt.Errorf("invalid signature length: got %d, want %d", len(signature), ed25519.SignatureSize)
	}
	return ed25519.Verify(pub, content, signature), nil
}
