package source

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"zombiezen.com/go/nix/nixbase32"
)

// Verify checks the SHA-256 digest of the file at path. expected may carry a
// "sha256:" prefix and is either hex or Nix base32 encoded.
func Verify(path, expected string) error {
	want := strings.TrimPrefix(strings.TrimSpace(expected), "sha256:")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("computing hash: %w", err)
	}
	sum := hasher.Sum(nil)

	var got string
	switch len(want) {
	case hex.EncodedLen(sha256.Size):
		got = hex.EncodeToString(sum)
		want = strings.ToLower(want)
	case nixbase32.EncodedLen(sha256.Size):
		got = nixbase32.EncodeToString(sum)
	default:
		return fmt.Errorf("unrecognized sha256 digest %q", expected)
	}

	if got != want {
		return fmt.Errorf("hash mismatch: expected %s, got %s", want, got)
	}
	return nil
}
