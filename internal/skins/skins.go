// Package skins copies a user-chosen skin file into the fixed location game
// versions that support local skins read from.
package skins

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/config"
)

// Apply copies the PNG at src to the managed custom-skin path.
func Apply(src string, cfg *config.Config, logger hclog.Logger) error {
	if !strings.EqualFold(filepath.Ext(src), ".png") {
		return fmt.Errorf("skin must be a .png file: %s", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening skin file: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(cfg.SkinsDir, 0o755); err != nil {
		return fmt.Errorf("creating skins directory: %w", err)
	}

	dest := cfg.SkinPath()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying skin: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copying skin: %w", err)
	}

	logger.Info("🎨 Skin applied", "src", src, "dest", dest)
	return nil
}
