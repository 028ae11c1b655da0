package verify

import (
	"os"
	"path/filepath"
	"testing"
)

// SHA-1 of the ASCII bytes "hello world".
const helloWorldSHA1 = "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"

func writeTestFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.jar")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	return path
}

func TestFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if File(path, helloWorldSHA1) {
		t.Error("verification of a nonexistent file must be false")
	}
}

func TestFile_Match(t *testing.T) {
	path := writeTestFile(t, "hello world")
	if !File(path, helloWorldSHA1) {
		t.Error("expected digest to verify")
	}
}

func TestFile_MatchUppercaseDigest(t *testing.T) {
	path := writeTestFile(t, "hello world")
	if !File(path, "2AAE6C35C94FCFB415DBE95F408B9CE91EE846ED") {
		t.Error("uppercase expected digest must still verify")
	}
}

func TestFile_Mismatch(t *testing.T) {
	path := writeTestFile(t, "hello w0rld")
	if File(path, helloWorldSHA1) {
		t.Error("corrupted contents must not verify")
	}
}

func TestFile_Idempotent(t *testing.T) {
	path := writeTestFile(t, "hello world")
	for i := 0; i < 3; i++ {
		if !File(path, helloWorldSHA1) {
			t.Fatalf("call %d: expected digest to verify", i+1)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("re-reading file: %v", err)
	}
	if string(data) != "hello world" {
		t.Error("verification must not mutate the file")
	}
}
