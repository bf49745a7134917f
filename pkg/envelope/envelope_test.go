package envelope

import (
	"encoding/base64"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple message", plaintext: "hey, are we still on for tonight?"},
		{name: "empty string", plaintext: ""},
		{name: "unicode", plaintext: "café ☕ — see you soon"},
		{name: "long message", plaintext: "I just wanted to say that I really appreciated how you handled that conversation yesterday, it meant a lot."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Seal(tt.plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			if got := Open(sealed); got != tt.plaintext {
				t.Errorf("Open(Seal(%q)) = %q, want %q", tt.plaintext, got, tt.plaintext)
			}
		})
	}
}

func TestSealProducesUniqueEnvelopes(t *testing.T) {
	a, err := Seal("same text")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	b, err := Seal("same text")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	// Random IV: two seals of the same plaintext must differ.
	if a == b {
		t.Errorf("Seal produced identical envelopes for the same plaintext")
	}
}

func TestOpenCorruptedEnvelope(t *testing.T) {
	sealed, err := Seal("original message")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xFF
	corrupted := base64.StdEncoding.EncodeToString(raw)

	if got := Open(corrupted); got != FailureMarker {
		t.Errorf("Open(corrupted) = %q, want %q", got, FailureMarker)
	}
}

func TestOpenGarbageInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not base64", input: "%%% definitely not base64 %%%"},
		{name: "empty", input: ""},
		{name: "too short for iv", input: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "plaintext passthrough attempt", input: "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Open(tt.input); got != FailureMarker {
				t.Errorf("Open(%q) = %q, want %q", tt.input, got, FailureMarker)
			}
		})
	}
}
