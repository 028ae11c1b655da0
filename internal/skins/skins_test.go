package skins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/config"
)

func TestApply(t *testing.T) {
	logger := hclog.NewNullLogger()

	t.Run("copies png to managed path", func(t *testing.T) {
		cfg := config.New(t.TempDir(), config.DefaultManifestURL, "info")
		src := filepath.Join(t.TempDir(), "steve.png")
		if err := os.WriteFile(src, []byte("png bytes"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := Apply(src, cfg, logger); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}

		data, err := os.ReadFile(cfg.SkinPath())
		if err != nil {
			t.Fatalf("skin not copied: %v", err)
		}
		if string(data) != "png bytes" {
			t.Errorf("copied content = %q, want %q", data, "png bytes")
		}
	})

	t.Run("extension check is case insensitive", func(t *testing.T) {
		cfg := config.New(t.TempDir(), config.DefaultManifestURL, "info")
		src := filepath.Join(t.TempDir(), "steve.PNG")
		if err := os.WriteFile(src, []byte("png bytes"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := Apply(src, cfg, logger); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	})

	t.Run("rejects non-png", func(t *testing.T) {
		cfg := config.New(t.TempDir(), config.DefaultManifestURL, "info")
		src := filepath.Join(t.TempDir(), "steve.jpg")
		if err := os.WriteFile(src, []byte("jpeg bytes"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := Apply(src, cfg, logger); err == nil {
			t.Fatal("expected an error for a non-png source")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		cfg := config.New(t.TempDir(), config.DefaultManifestURL, "info")
		if err := Apply(filepath.Join(t.TempDir(), "gone.png"), cfg, logger); err == nil {
			t.Fatal("expected an error for a missing source file")
		}
	})
}
