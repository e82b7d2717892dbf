package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// HolderKeyFromPublicKey encodes an Ed25519 public key into the
// holder-key string consumed by the forge tooling.
func HolderKeyFromPublicKey(pub ed25519.PublicKey) (string, error) {
	if l := len(pub); l != ed25519.PublicKeySize {
		return "", fmt.Errorf("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, l)
	}
	return "ed25519:" + base64.StdEncoding.EncodeToString(pub), nil
}

// HolderKeyFromDilithium3 encodes a Dilithium3 public key into the
// holder-key string.
func HolderKeyFromDilithium3(pub *mode3.PublicKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("missing dilithium3 public key")
	}
	b, err := pub.MarshalBinary()
	if err != nil {
		return "", err
	}
	return "dilithium3:" + base64.StdEncoding.EncodeToString(b), nil
}

// HolderKeyBytes decodes a holder key string to raw public key bytes.
// Supported encodings:
// - ed25519:<base64>
// - dilithium3:<base64>
//
// The bytes are suitable for seal.MintFromKey; length and structure are
// validated per algorithm before any anchor is derived from them.
func HolderKeyBytes(holder string) ([]byte, error) {
	alg, enc, ok := strings.Cut(holder, ":")
	if !ok {
		return nil, fmt.Errorf("invalid holder key encoding")
	}
	pub, err := decodeBase64(enc)
	if err != nil {
		return nil, fmt.Errorf("invalid holder key base64: %w", err)
	}

	switch alg {
	case "ed25519":
		if len(pub) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("invalid ed25519 public key length: %d", len(pub))
		}
		return pub, nil
	case "dilithium3":
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return nil, fmt.Errorf("invalid dilithium3 public key: %w", err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported holder key algorithm %q", alg)
	}
}

// GenerateDilithium3Keypair returns a new Dilithium3 keypair for
// holders who want a post-quantum fingerprint.
func GenerateDilithium3Keypair(rand io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, error) {
	return mode3.GenerateKey(rand)
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
