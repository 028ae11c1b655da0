package jre

import (
	"errors"
	"strings"
	"testing"

	"github.com/nova-client/launcher/internal/errs"
)

func TestParseMajor(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected int
		wantErr  bool
	}{
		{
			name: "modern openjdk",
			output: `openjdk version "21.0.5" 2024-10-15 LTS
OpenJDK Runtime Environment Temurin-21.0.5+11 (build 21.0.5+11-LTS)`,
			expected: 21,
		},
		{
			name: "java 17",
			output: `openjdk version "17.0.2" 2022-01-18
OpenJDK Runtime Environment (build 17.0.2+8-86)`,
			expected: 17,
		},
		{
			name:     "legacy 1.8 reports major 1",
			output:   `java version "1.8.0_392"`,
			expected: 1,
		},
		{
			name:     "single-component version",
			output:   `openjdk version "21" 2023-09-19`,
			expected: 21,
		},
		{
			name:    "no version string",
			output:  "command not found",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, err := parseMajor(tt.output)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got major %d", major)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if major != tt.expected {
				t.Errorf("parseMajor() = %d, want %d", major, tt.expected)
			}
		})
	}
}

func TestDistributionFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		goarch  string
		wantExt string
		wantErr bool
	}{
		{name: "windows x64", goos: "windows", goarch: "amd64", wantExt: ".zip"},
		{name: "linux x64", goos: "linux", goarch: "amd64", wantExt: ".tar.gz"},
		{name: "macos x64", goos: "darwin", goarch: "amd64", wantExt: ".tar.gz"},
		{name: "macos arm64 unsupported", goos: "darwin", goarch: "arm64", wantErr: true},
		{name: "bsd unsupported", goos: "freebsd", goarch: "amd64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := distributionFor(tt.goos, tt.goarch)
			if tt.wantErr {
				if !errors.Is(err, errs.ErrUnsupportedPlatform) {
					t.Fatalf("error = %v, want ErrUnsupportedPlatform", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dist.Ext != tt.wantExt {
				t.Errorf("Ext = %q, want %q", dist.Ext, tt.wantExt)
			}
			if !strings.HasSuffix(dist.URL, dist.Ext) {
				t.Errorf("URL %q does not end in %q", dist.URL, dist.Ext)
			}
		})
	}
}
