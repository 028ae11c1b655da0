// Package platform describes the host to the rest of the launcher.
//
// Version manifests use their own OS vocabulary: macOS is "osx" in rule and
// native-classifier keys, while Go reports "darwin". Everything that touches
// manifest rules must go through RuleOSName so the mapping lives in one place.
package platform

import "runtime"

// RuleOSName returns the host OS name as spelled in manifest rules.
func RuleOSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	default:
		return runtime.GOOS
	}
}

// ArchBits returns the pointer-width token used to resolve the ${arch}
// placeholder in native-bundle classifiers ("64" or "32").
func ArchBits() string {
	switch runtime.GOARCH {
	case "386", "arm", "mips", "mipsle":
		return "32"
	default:
		return "64"
	}
}
