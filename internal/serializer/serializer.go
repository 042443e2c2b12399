// Package serializer implements the compiled-profile binary format: a
// compact, versioned encoding of a mapping.ConfigRoot suitable for caching a
// parsed profile so the daemon can skip re-parsing TOML on every reload.
// Framing is magic + version + payload length + CRC32 checksum, in that
// order; the payload itself is gob-encoded.
package serializer

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"hash/crc32"

	"github.com/bnema/keyrd/internal/mapping"
)

// magic identifies a compiled profile file. "KRXP" — keyrd compiled profile.
var magic = [4]byte{'K', 'R', 'X', 'P'}

// FormatVersion is incremented whenever the on-disk encoding changes
// incompatibly.
const FormatVersion uint32 = 1

// ErrBadMagic indicates the input does not start with the expected magic
// bytes — not a compiled profile file at all.
var ErrBadMagic = fmt.Errorf("serializer: bad magic")

// ErrVersionMismatch indicates the file was written by an incompatible
// format version.
type ErrVersionMismatch struct {
	Got uint32
}

func (e *ErrVersionMismatch) Error() string {
	return fmt.Sprintf("serializer: unsupported format version %d (want %d)", e.Got, FormatVersion)
}

// ErrChecksumMismatch indicates the payload was corrupted or truncated.
var ErrChecksumMismatch = fmt.Errorf("serializer: checksum mismatch")

// Encode serializes root into the compiled-profile binary format.
func Encode(root mapping.ConfigRoot) ([]byte, error) {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(root); err != nil {
		return nil, fmt.Errorf("serializer: encoding payload: %w", err)
	}

	checksum := crc32.ChecksumIEEE(payload.Bytes())

	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.BigEndian, FormatVersion)
	binary.Write(&buf, binary.BigEndian, uint64(payload.Len()))
	binary.Write(&buf, binary.BigEndian, checksum)
	buf.Write(payload.Bytes())

	return buf.Bytes(), nil
}

// Decode parses the compiled-profile binary format back into a ConfigRoot.
func Decode(data []byte) (mapping.ConfigRoot, error) {
	const headerLen = 4 + 4 + 8 + 4
	if len(data) < headerLen {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: truncated header (%d bytes)", len(data))
	}

	if !bytes.Equal(data[:4], magic[:]) {
		return mapping.ConfigRoot{}, ErrBadMagic
	}

	r := bytes.NewReader(data[4:])

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: reading version: %w", err)
	}
	if version != FormatVersion {
		return mapping.ConfigRoot{}, &ErrVersionMismatch{Got: version}
	}

	var size uint64
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: reading size: %w", err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: reading checksum: %w", err)
	}

	payload := data[headerLen:]
	if uint64(len(payload)) != size {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: payload length mismatch: header says %d, got %d", size, len(payload))
	}

	if crc32.ChecksumIEEE(payload) != checksum {
		return mapping.ConfigRoot{}, ErrChecksumMismatch
	}

	var root mapping.ConfigRoot
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&root); err != nil {
		return mapping.ConfigRoot{}, fmt.Errorf("serializer: decoding payload: %w", err)
	}

	return root, nil
}
