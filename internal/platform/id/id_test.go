package id

import (
	"bytes"
	"encoding/base32"
	"strings"
	"testing"
)

func decodeID(t *testing.T, id string) []byte {
	t.Helper()
	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if len(decoded) != 16 {
		t.Fatalf("expected 16 decoded bytes, got %d", len(decoded))
	}
	return decoded
}

func TestNewIDFormat(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(id) != 26 {
		t.Fatalf("expected 26-character id, got %d", len(id))
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}
	decoded := decodeID(t, id)
	if version := decoded[6] >> 4; version != 4 {
		t.Fatalf("expected version 4, got %d", version)
	}
	if variant := decoded[8] & 0xC0; variant != 0x80 {
		t.Fatalf("expected variant 0x80, got 0x%X", variant)
	}
}

func TestNewIDFromReaderIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0xAB}, 16)
	first, err := NewIDFromReader(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := NewIDFromReader(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first != second {
		t.Fatalf("expected equal ids, got %q and %q", first, second)
	}
	decodeID(t, first)
}

func TestNewIDFromReaderShortRead(t *testing.T) {
	if _, err := NewIDFromReader(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("expected short read error")
	}
}
