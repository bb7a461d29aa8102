package common

import (
	"encoding/hex"
	"testing"
)

func TestMakeRandHexString_Length(t *testing.T) {
	s, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("result is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_Unique(t *testing.T) {
	a, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("two generated tokens must not collide")
	}
}
