package persistence

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

// ErrCorruptSnapshot is returned when a stored snapshot does not match its
// digest.
var ErrCorruptSnapshot = errors.New("snapshot digest mismatch")

// EncodeSnapshot compresses an engine snapshot.
func EncodeSnapshot(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lz4.NewReader(bytes.NewReader(src))); err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest is the hex BLAKE3 hash of a snapshot. Two games in the same state
// have the same digest.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
