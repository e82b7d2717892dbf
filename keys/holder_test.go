package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/Pantheon-LadderWorks/glyph-forge/seal"
)

func TestHolderKeyBytes_Ed25519RoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	holder, err := HolderKeyFromPublicKey(pub)
	if err != nil {
		t.Fatalf("HolderKeyFromPublicKey: %v", err)
	}
	got, err := HolderKeyBytes(holder)
	if err != nil {
		t.Fatalf("HolderKeyBytes: %v", err)
	}
	if string(got) != string(pub) {
		t.Fatal("decoded key bytes differ from original")
	}
}

func TestHolderKeyBytes_Dilithium3RoundTrip(t *testing.T) {
	pub, _, err := GenerateDilithium3Keypair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateDilithium3Keypair: %v", err)
	}
	holder, err := HolderKeyFromDilithium3(pub)
	if err != nil {
		t.Fatalf("HolderKeyFromDilithium3: %v", err)
	}
	raw, err := HolderKeyBytes(holder)
	if err != nil {
		t.Fatalf("HolderKeyBytes: %v", err)
	}

	// The raw bytes feed key-derived minting; same key, same anchor.
	a, err := seal.MintFromKey("NODE", "PANTHEON", raw)
	if err != nil {
		t.Fatalf("MintFromKey: %v", err)
	}
	b, err := seal.MintFromKey("NODE", "PANTHEON", raw)
	if err != nil {
		t.Fatalf("MintFromKey: %v", err)
	}
	if a.BreathAnchor != b.BreathAnchor {
		t.Fatalf("dilithium fingerprint unstable: %q vs %q", a.BreathAnchor, b.BreathAnchor)
	}
}

func TestHolderKeyBytes_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		holder string
	}{
		{"no algorithm tag", "just-base64"},
		{"unknown algorithm", "rsa:AAAA"},
		{"bad base64", "ed25519:!!!"},
		{"wrong ed25519 length", "ed25519:AAAA"},
		{"malformed dilithium", "dilithium3:AAAA"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := HolderKeyBytes(tc.holder); err == nil {
				t.Fatalf("expected error for %q", tc.holder)
			}
		})
	}
}

func TestHolderKeyFromPublicKey_RejectsBadLength(t *testing.T) {
	if _, err := HolderKeyFromPublicKey(make([]byte, 16)); err == nil {
		t.Fatal("expected error for short public key")
	}
}
