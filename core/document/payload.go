package document

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by DecodePayload.
var (
	ErrInvalidPayload     = errors.New("document: invalid payload marker")
	ErrChecksumMismatch   = errors.New("document: payload checksum mismatch")
	ErrUnsupportedVersion = errors.New("document: unsupported payload version")
)

// fnvOffset32 and fnvPrime32 are the FNV-1a 32-bit constants. They are
// spelled out rather than imported from hash/fnv because the checksum is
// part of the wire contract with the editor's own client-side verifier,
// which computes it byte-for-byte the same way.
const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// fnv1a32 computes the FNV-1a 32-bit hash of s.
func fnv1a32(s string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return h
}

// payloadMarkerPrefix and payloadMarkerSuffix bracket the base64 payload
// embedded in a document's stored content.
const (
	payloadVersion      = "V1"
	payloadMarkerPrefix = "[[FILMLANE_PAYLOAD_" + payloadVersion + ":"
	payloadMarkerSuffix = "]]"
)

// payloadSchemaVersion is the only payload record version this codec
// understands; DecodePayload rejects anything else.
const payloadSchemaVersion = 1

// Payload is the document payload record: the exchange format a document's
// stored content embeds, in the field order version, blocks, font, size,
// createdAt, checksum.
type Payload struct {
	Version   int
	Blocks    []Block
	Font      string
	Size      float64
	CreatedAt string // ISO-8601
}

// payloadFields is the subset of the wire record the checksum is computed
// over: every field except the checksum itself, in wire order.
type payloadFields struct {
	Version   int     `json:"version"`
	Blocks    []Block `json:"blocks"`
	Font      string  `json:"font"`
	Size      float64 `json:"size"`
	CreatedAt string  `json:"createdAt"`
}

// payloadWire is the full JSON shape encoded inside the marker, in the
// field order version, blocks, font, size, createdAt, checksum.
type payloadWire struct {
	Version   int     `json:"version"`
	Blocks    []Block `json:"blocks"`
	Font      string  `json:"font"`
	Size      float64 `json:"size"`
	CreatedAt string  `json:"createdAt"`
	Checksum  string  `json:"checksum"`
}

// checksumHex computes the FNV-1a 32-bit checksum of f's JSON serialization,
// formatted as 8 lowercase, zero-padded hex digits.
func checksumHex(f payloadFields) (string, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%08x", fnv1a32(string(body))), nil
}

// normalizeBlocksForEncode repairs any surviving scene-header-top-line
// wrapper and normalizes each block's text (NBSP to space, CR removed)
// before it is hashed and serialized.
func normalizeBlocksForEncode(blocks []Block) []Block {
	repaired := repairLegacyTopLine(blocks)
	out := make([]Block, len(repaired))
	for i, b := range repaired {
		text := strings.ReplaceAll(b.Text, " ", " ")
		text = strings.ReplaceAll(text, "\r", "")
		out[i] = Block{FormatID: b.FormatID, Text: text}
	}
	return out
}

// EncodePayload serializes p into a checksummed, base64-encoded
// "[[FILMLANE_PAYLOAD_V1:...]]" marker suitable for embedding at the end of
// a document's stored content. p.Version is ignored; the encoded record
// always carries payloadSchemaVersion.
func EncodePayload(p Payload) (string, error) {
	fields := payloadFields{
		Version:   payloadSchemaVersion,
		Blocks:    normalizeBlocksForEncode(p.Blocks),
		Font:      p.Font,
		Size:      p.Size,
		CreatedAt: p.CreatedAt,
	}
	checksum, err := checksumHex(fields)
	if err != nil {
		return "", fmt.Errorf("document: computing payload checksum: %w", err)
	}

	wire := payloadWire{
		Version:   fields.Version,
		Blocks:    fields.Blocks,
		Font:      fields.Font,
		Size:      fields.Size,
		CreatedAt: fields.CreatedAt,
		Checksum:  checksum,
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("document: marshal payload wire: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	return payloadMarkerPrefix + encoded + payloadMarkerSuffix, nil
}

// ExtractPayloadMarker finds and returns the marker substring within
// content, if one is present.
func ExtractPayloadMarker(content string) (string, bool) {
	start := strings.Index(content, payloadMarkerPrefix)
	if start == -1 {
		return "", false
	}
	end := strings.Index(content[start:], payloadMarkerSuffix)
	if end == -1 {
		return "", false
	}
	return content[start : start+end+len(payloadMarkerSuffix)], true
}

// DecodePayload parses a "[[FILMLANE_PAYLOAD_V1:...]]" marker back into a
// Payload. The checksum is verified against the record exactly as stored,
// before any repair — a scene-header-top-line block surviving from a
// legacy payload, written before the wrapper became split-only, was hashed
// in its unsplit form by the client that wrote it. Once the checksum is
// accepted, any such block is repaired in place into its scene-header-1 and
// scene-header-2 constituents by splitting its text on the first newline.
func DecodePayload(marker string) (Payload, error) {
	if !strings.HasPrefix(marker, payloadMarkerPrefix) || !strings.HasSuffix(marker, payloadMarkerSuffix) {
		return Payload{}, ErrInvalidPayload
	}
	encoded := strings.TrimSuffix(strings.TrimPrefix(marker, payloadMarkerPrefix), payloadMarkerSuffix)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var wire payloadWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if wire.Version != payloadSchemaVersion {
		return Payload{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, wire.Version)
	}

	fields := payloadFields{
		Version:   wire.Version,
		Blocks:    wire.Blocks,
		Font:      wire.Font,
		Size:      wire.Size,
		CreatedAt: wire.CreatedAt,
	}
	want, err := checksumHex(fields)
	if err != nil {
		return Payload{}, fmt.Errorf("document: remarshal payload fields: %w", err)
	}
	if want != wire.Checksum {
		return Payload{}, fmt.Errorf("%w: got %s want %s", ErrChecksumMismatch, wire.Checksum, want)
	}

	return Payload{
		Version:   wire.Version,
		Blocks:    repairLegacyTopLine(wire.Blocks),
		Font:      wire.Font,
		Size:      wire.Size,
		CreatedAt: wire.CreatedAt,
	}, nil
}

// repairLegacyTopLine splits any scene-header-top-line block surviving from
// a legacy payload into its scene-header-1/scene-header-2 constituents. The
// two lines are separated by the first newline in the stored text; if no
// newline is present the whole text becomes the scene-header-1 half and
// scene-header-2 is left empty-bodied with a single space placeholder,
// since Block.Validate rejects empty text.
func repairLegacyTopLine(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.FormatID != SceneHeaderTopLine {
			out = append(out, b)
			continue
		}
		first, second, found := strings.Cut(b.Text, "\n")
		if !found {
			first, second = b.Text, " "
		}
		out = append(out, Block{FormatID: SceneHeader1, Text: first})
		out = append(out, Block{FormatID: SceneHeader2, Text: second})
	}
	return out
}
