// Package verify checks on-disk artifacts against the SHA-1 digests the
// version manifest publishes. A file is trusted only when the full digest
// matches; existence alone proves nothing.
package verify

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// ChunkSize bounds how much of a file is read per iteration while hashing.
const ChunkSize = 64 * 1024

// File reports whether the file at path hashes to expectedSHA1.
//
// An absent or unreadable file is simply not verified (false, never an
// error). The whole file is always hashed; there is no partial shortcut.
// Digest comparison is done on lowercase hex so mixed-case manifests verify.
func File(path string, expectedSHA1 string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return false
	}

	actual := hex.EncodeToString(h.Sum(nil))
	return actual == strings.ToLower(expectedSHA1)
}
