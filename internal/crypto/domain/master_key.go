package domain

import (
	"fmt"
	"os"
	"strings"
)

// MasterKey is the single static AES-256 key at the root of the envelope
// encryption hierarchy. It is loaded once at process startup from a file on
// disk and used only to seal and open per-secret data keys — never to
// encrypt client or user data directly.
type MasterKey struct {
	Aes256Key
}

// LoadMasterKeyFromPath reads a master key from the file at path. The file
// must contain a single URL-safe-no-pad base64-encoded 256-bit key,
// optionally followed by trailing whitespace.
func LoadMasterKeyFromPath(path string) (MasterKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MasterKey{}, fmt.Errorf("%w: %w", ErrEnv, err)
	}

	key, err := Aes256KeyFromString(strings.TrimSpace(string(raw)))
	if err != nil {
		return MasterKey{}, fmt.Errorf("%w: %w", ErrEnv, err)
	}

	return MasterKey{Aes256Key: key}, nil
}
