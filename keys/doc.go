// Package keys manages the holder keys that feed key-derived seal minting.
//
// A holder key is an algorithm-tagged public key string
// ("ed25519:<base64>" or "dilithium3:<base64>"). The package decodes
// holder keys to the raw bytes consumed by seal.MintFromKey, derives
// role subkeys deterministically, and stores ed25519 seeds in a local
// filesystem keystore.
//
// Seals are fingerprints, not proofs of possession, so this package
// performs no signing or verification over seals.
package keys
