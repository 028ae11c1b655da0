package jre

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// unpackArchive expands a runtime distribution archive into destDir. The
// format is chosen by extension: .zip, .tar.gz, or .tar.bz2.
func unpackArchive(archive, destDir string) error {
	switch {
	case strings.HasSuffix(archive, ".zip"):
		return unzip(archive, destDir)
	case strings.HasSuffix(archive, ".tar.gz"), strings.HasSuffix(archive, ".tgz"):
		return untar(archive, destDir, func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case strings.HasSuffix(archive, ".tar.bz2"):
		return untar(archive, destDir, func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r, &bzip2.ReaderConfig{})
		})
	default:
		return fmt.Errorf("unrecognized archive format: %s", archive)
	}
}

func unzip(archive, destDir string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		dest, err := securePath(destDir, member.Name)
		if err != nil {
			return err
		}
		if member.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		src, err := member.Open()
		if err != nil {
			return fmt.Errorf("opening zip member %s: %w", member.Name, err)
		}
		err = writeFile(dest, src, member.Mode())
		src.Close()
		if err != nil {
			return fmt.Errorf("extracting %s: %w", member.Name, err)
		}
	}
	return nil
}

func untar(archive, destDir string, decompress func(io.Reader) (io.Reader, error)) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	dr, err := decompress(f)
	if err != nil {
		return fmt.Errorf("opening compressed stream: %w", err)
	}
	if closer, ok := dr.(io.Closer); ok {
		defer closer.Close()
	}

	tr := tar.NewReader(dr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		dest, err := securePath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			if err := writeFile(dest, tr, hdr.FileInfo().Mode()); err != nil {
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
		case tar.TypeSymlink:
			// JDK trees carry internal symlinks (e.g. macOS bundle layout).
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			os.Remove(dest)
			if err := os.Symlink(hdr.Linkname, dest); err != nil {
				return fmt.Errorf("linking %s: %w", hdr.Name, err)
			}
		}
	}
}

func writeFile(dest string, src io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// securePath joins a member name onto destDir and rejects names that would
// escape it.
func securePath(destDir, name string) (string, error) {
	dest := filepath.Join(destDir, filepath.FromSlash(name))
	if dest != filepath.Clean(destDir) &&
		!strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member escapes destination: %s", name)
	}
	return dest, nil
}
