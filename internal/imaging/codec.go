// Package imaging handles the transport encoding of captured images:
// zstd compression, base64 framing and content hashing. The content hash
// is always taken over the decompressed bytes so identical captures
// collapse to one stored blob regardless of compression settings.
package imaging

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// HashHex returns the hex-encoded SHA-256 digest of data.
func HashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// EncodeTransport compresses data with zstd and base64-encodes the
// result, yielding the image string carried in a log_event payload.
func EncodeTransport(data []byte) string {
	compressed := encoder.EncodeAll(data, nil)
	return base64.StdEncoding.EncodeToString(compressed)
}

// DecodeTransport reverses EncodeTransport: base64 decode, then zstd
// decompress. Either step failing fails the whole decode.
func DecodeTransport(encoded string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress image data: %w", err)
	}
	return data, nil
}
