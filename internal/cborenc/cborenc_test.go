package cborenc

import (
	"bytes"
	"testing"
	"time"
)

func TestEncModeKeepsNanoseconds(t *testing.T) {
	in := time.Date(2026, 3, 4, 5, 6, 7, 123456789, time.UTC)

	data, err := EncMode.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out time.Time
	if err := DecMode.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("got %v, want %v", out, in)
	}
}

func TestEncModeIsDeterministic(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b", 10: "j"}

	first, err := EncMode.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := EncMode.Marshal(m)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding differs: %x vs %x", first, again)
		}
	}
}

func TestDuplicateMapKeys(t *testing.T) {
	// {1: 1, 1: 2}
	data := []byte{0xa2, 0x01, 0x01, 0x01, 0x02}

	var lenient map[int]int
	if err := DecMode.Unmarshal(data, &lenient); err != nil {
		t.Errorf("DecMode rejected duplicate keys: %v", err)
	}

	var strict map[int]int
	if err := StrictDecMode.Unmarshal(data, &strict); err == nil {
		t.Error("StrictDecMode accepted duplicate keys")
	}
}
