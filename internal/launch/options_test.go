package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestRewriteOptions(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		noFile   bool
		expected []string
	}{
		{
			name:   "missing file created",
			noFile: true,
			expected: []string{
				"maxFps:60",
				"enableVsync:false",
			},
		},
		{
			name:     "existing keys overridden in place",
			existing: "lang:en_us\nmaxFps:260\nenableVsync:true\nfov:0.5\n",
			expected: []string{
				"lang:en_us",
				"maxFps:60",
				"enableVsync:false",
				"fov:0.5",
			},
		},
		{
			name:     "missing keys appended",
			existing: "lang:en_us\n",
			expected: []string{
				"lang:en_us",
				"maxFps:60",
				"enableVsync:false",
			},
		},
		{
			name:     "malformed lines dropped",
			existing: "lang:en_us\nnot a setting\n\nmaxFps:120\n",
			expected: []string{
				"lang:en_us",
				"maxFps:60",
				"enableVsync:false",
			},
		},
		{
			name:     "values containing delimiters survive",
			existing: "resourcePacks:[\"vanilla\"]\nkey_key.jump:key.keyboard.space\n",
			expected: []string{
				"resourcePacks:[\"vanilla\"]",
				"key_key.jump:key.keyboard.space",
				"maxFps:60",
				"enableVsync:false",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "options.txt")
			if !tt.noFile {
				if err := os.WriteFile(path, []byte(tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			if err := RewriteOptions(path, 60, hclog.NewNullLogger()); err != nil {
				t.Fatalf("RewriteOptions() error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			got := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d lines %q, want %d", len(got), got, len(tt.expected))
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("line %d = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}
