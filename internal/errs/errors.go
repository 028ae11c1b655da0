// Package errs defines the sentinel error kinds surfaced by the launcher
// pipeline. Callers branch on them with errors.Is; the wrapped message carries
// the specific resource that failed.
package errs

import "errors"

var (
	// Network errors 🌐
	ErrNetwork = errors.New("❌ network request failed")

	// Integrity errors 🔒
	ErrIntegrity = errors.New("❌ checksum mismatch")

	// Parse errors 📄
	ErrParse = errors.New("❌ malformed document")

	// Prerequisite errors 📦
	ErrMissingPrerequisite = errors.New("❌ missing prerequisite")
	ErrUnsupportedPlatform = errors.New("❌ unsupported platform or architecture")

	// Launch errors 🚀
	ErrLaunch = errors.New("❌ launch failed")
)
