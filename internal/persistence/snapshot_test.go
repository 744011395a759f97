package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCompression(t *testing.T) {
	data := bytes.Repeat([]byte(`{"phase":"roundMove","players":[]}`), 200)

	packed, err := EncodeSnapshot(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))

	unpacked, err := DecodeSnapshot(packed)
	require.NoError(t, err)
	assert.Equal(t, data, unpacked)
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("state"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Digest([]byte("state")))
	assert.NotEqual(t, a, Digest([]byte("state2")))
}
