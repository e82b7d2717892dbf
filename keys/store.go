package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyStore is a local-first store of Ed25519 seeds for seal holders.
//
// Layout: <dir>/<name>/root.key holds the root seed, and
// <dir>/<name>/roles/<role>.key holds role-derived seeds. Seed files
// are hex-encoded and written 0600.
type KeyStore struct {
	Directory string
}

// HolderEntry describes one stored holder and its derived roles.
type HolderEntry struct {
	Name  string
	Roles []string
}

// DefaultDirectory is ~/.glyphforge/keys.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".glyphforge", "keys"), nil
}

// Open returns a KeyStore rooted at directory, falling back to
// DefaultDirectory when directory is empty.
func Open(directory string) (*KeyStore, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &KeyStore{Directory: directory}, nil
}

func (ks *KeyStore) rootKeyPath(name string) string {
	return filepath.Join(ks.Directory, name, "root.key")
}

func (ks *KeyStore) roleKeyPath(name, role string) string {
	return filepath.Join(ks.Directory, name, "roles", role+".key")
}

func checkToken(kind, token string) error {
	if token == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	for _, char := range token {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in %s", char, kind)
	}
	return nil
}

// CheckName validates a holder name for use as a directory component.
func CheckName(name string) error { return checkToken("name", name) }

// CheckRole validates a role label for use as a file component.
func CheckRole(role string) error { return checkToken("role", role) }

// ParseSeedHex decodes a 32-byte ed25519 seed from hex, tolerating a
// 0x prefix and surrounding whitespace.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (ks *KeyStore) saveSeed(path string, seed []byte, overwrite bool) error {
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return err
	}
	return file.Close()
}

func (ks *KeyStore) loadSeed(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSeedHex(strings.TrimSpace(string(data)))
}

// InitializeRoot stores a root seed under name and returns its holder key.
func (ks *KeyStore) InitializeRoot(name string, seed []byte, overwrite bool) (holderKey string, path string, err error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	path = ks.rootKeyPath(name)
	if err := ks.saveSeed(path, seed, overwrite); err != nil {
		return "", "", err
	}
	return GenerateHolderFromSeed(seed), path, nil
}

// DeriveRole derives and stores a role subkey from name's root seed.
func (ks *KeyStore) DeriveRole(name, role string, overwrite bool) (holderKey string, path string, err error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	if err := CheckRole(role); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.loadSeed(ks.rootKeyPath(name))
	if err != nil {
		return "", "", err
	}
	roleSeed, err := DeriveRoleSeed(rootSeed, role)
	if err != nil {
		return "", "", err
	}
	path = ks.roleKeyPath(name, role)
	if err := ks.saveSeed(path, roleSeed, overwrite); err != nil {
		return "", "", err
	}
	return GenerateHolderFromSeed(roleSeed), path, nil
}

// Export returns the holder key for a stored root or role seed.
func (ks *KeyStore) Export(name, role string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	var seed []byte
	var err error
	if role == "" {
		seed, err = ks.loadSeed(ks.rootKeyPath(name))
	} else {
		if err := CheckRole(role); err != nil {
			return "", err
		}
		seed, err = ks.loadSeed(ks.roleKeyPath(name, role))
	}
	if err != nil {
		return "", err
	}
	return GenerateHolderFromSeed(seed), nil
}

// PublicKeyBytes returns the raw ed25519 public key for a stored seed,
// ready for seal.MintFromKey.
func (ks *KeyStore) PublicKeyBytes(name, role string) ([]byte, error) {
	holder, err := ks.Export(name, role)
	if err != nil {
		return nil, err
	}
	return HolderKeyBytes(holder)
}

// LoadSeed resolves a seed from an explicit hex string, a key file, or
// a stored holder name/role, in that order of precedence.
func (ks *KeyStore) LoadSeed(seedHex, name, role, keyFile string) ([]byte, error) {
	if seedHex != "" {
		return ParseSeedHex(seedHex)
	}
	if keyFile != "" {
		return ks.loadSeed(keyFile)
	}
	if name != "" {
		if err := CheckName(name); err != nil {
			return nil, err
		}
		if role == "" {
			return ks.loadSeed(ks.rootKeyPath(name))
		}
		if err := CheckRole(role); err != nil {
			return nil, err
		}
		return ks.loadSeed(ks.roleKeyPath(name, role))
	}
	return nil, errors.New("no holder provided")
}

// List enumerates stored holders and their roles in sorted order.
func (ks *KeyStore) List() ([]HolderEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var result []HolderEntry
	for _, name := range names {
		rolesDir := filepath.Join(ks.Directory, name, "roles")
		roleEntries, rerr := os.ReadDir(rolesDir)
		var roles []string
		if rerr == nil {
			for _, roleEntry := range roleEntries {
				if roleEntry.IsDir() {
					continue
				}
				if strings.HasSuffix(roleEntry.Name(), ".key") {
					roles = append(roles, strings.TrimSuffix(roleEntry.Name(), ".key"))
				}
			}
			sort.Strings(roles)
		}
		result = append(result, HolderEntry{Name: name, Roles: roles})
	}
	return result, nil
}
