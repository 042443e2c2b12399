package serializer

import (
	"errors"
	"testing"

	"github.com/bnema/keyrd/internal/mapping"
)

func sampleRoot() mapping.ConfigRoot {
	return mapping.ConfigRoot{
		Version:                  "1",
		CompilationTimestampUnix: 1700000000,
		CompilerVersion:          "test",
		SourceHash:               "deadbeef",
		Devices: []mapping.DeviceConfig{
			{
				Identifier: "kbd0",
				Mappings: []mapping.KeyMapping{
					mapping.NewBase(mapping.NewSimple(1, 2)),
					mapping.NewConditional(mapping.ModifierActiveCondition(1), mapping.NewSimple(3, 4)),
				},
			},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := sampleRoot()
	data, err := Encode(root)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != root.Version || got.SourceHash != root.SourceHash ||
		len(got.Devices) != len(root.Devices) || got.Devices[0].Identifier != root.Devices[0].Identifier {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, root)
	}
	if len(got.Devices[0].Mappings) != 2 {
		t.Errorf("expected 2 mappings to survive round trip, got %d", len(got.Devices[0].Mappings))
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data, _ := Encode(sampleRoot())
	data[0] = 'X'
	_, err := Decode(data)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("Decode with corrupted magic: err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeVersionMismatch(t *testing.T) {
	data, _ := Encode(sampleRoot())
	data[4] = 0xFF // high byte of the big-endian version field
	_, err := Decode(data)
	var verErr *ErrVersionMismatch
	if !errors.As(err, &verErr) {
		t.Errorf("Decode with bumped version: err = %v, want *ErrVersionMismatch", err)
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	data, _ := Encode(sampleRoot())
	data[len(data)-1] ^= 0xFF // flip a payload byte, past the header
	_, err := Decode(data)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Decode with corrupted payload: err = %v, want ErrChecksumMismatch", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := Decode([]byte{'K', 'R'})
	if err == nil {
		t.Error("expected an error decoding a truncated header")
	}
}

func TestDecodePayloadLengthMismatch(t *testing.T) {
	data, _ := Encode(sampleRoot())
	// Append a stray trailing byte after the gob payload so the header's
	// recorded size no longer matches the remaining data.
	data = append(data, 0x00)
	_, err := Decode(data)
	if err == nil {
		t.Error("expected an error decoding data with a payload-length mismatch")
	}
}
