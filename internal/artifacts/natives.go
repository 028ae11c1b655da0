package artifacts

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// unpackNatives extracts the regular files of a native bundle into destDir.
// Directory entries are skipped, and a member that fails to extract is logged
// and skipped rather than aborting the bundle.
func unpackNatives(bundle, destDir string, logger hclog.Logger) error {
	zr, err := zip.OpenReader(bundle)
	if err != nil {
		return fmt.Errorf("opening native bundle: %w", err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if err := extractMember(member, destDir); err != nil {
			logger.Warn("⚠️ Could not extract native member",
				"bundle", bundle, "member", member.Name, "error", err)
		}
	}
	return nil
}

func extractMember(member *zip.File, destDir string) error {
	dest := filepath.Join(destDir, filepath.FromSlash(member.Name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("member path escapes destination: %s", member.Name)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, member.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
