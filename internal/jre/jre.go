// Package jre provisions the Java runtime the game needs: it probes managed
// and ambient installs for a minimum major version and, failing that,
// downloads and unpacks a platform-appropriate distribution into the managed
// runtime directory.
package jre

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/fetch"
)

// DefaultMinMajor is the Java major version modern game versions require.
const DefaultMinMajor = 21

// installDirName is the directory the pinned distribution unpacks to.
const installDirName = "jdk-21.0.5+11"

// markerName is written inside the install directory only after a complete
// unpack. Directory existence alone is not trusted: an interrupted unpack
// leaves the directory but not the marker.
const markerName = ".nova-complete"

// versionPattern pulls the major version out of `java -version` output, e.g.
// `openjdk version "21.0.5" 2024-10-15` or `java version "1.8.0_392"`.
var versionPattern = regexp.MustCompile(`version "(\d+)`)

// Provisioner manages the local Java runtime installation.
type Provisioner struct {
	cfg    *config.Config
	client *fetch.Client
	logger hclog.Logger
}

// New creates a Provisioner.
func New(cfg *config.Config, client *fetch.Client, logger hclog.Logger) *Provisioner {
	return &Provisioner{cfg: cfg, client: client, logger: logger}
}

// managedJavaPath is the executable inside the managed install.
func (p *Provisioner) managedJavaPath() string {
	exe := "java"
	if runtime.GOOS == "windows" {
		exe = "java.exe"
	}
	return filepath.Join(p.cfg.JavaDir, installDirName, "bin", exe)
}

// IsAvailable reports whether a runtime of at least minMajor can be invoked,
// preferring the managed install over whatever `java` resolves to on PATH.
// A missing java command is simply "not available", never an error.
func (p *Provisioner) IsAvailable(minMajor int) bool {
	if major, err := probeMajor(p.managedJavaPath()); err == nil {
		p.logger.Debug("☕ Managed runtime found", "major", major)
		return major >= minMajor
	}
	if major, err := probeMajor("java"); err == nil {
		p.logger.Debug("☕ Ambient runtime found", "major", major)
		return major >= minMajor
	}
	return false
}

// JavaCommand resolves the runtime executable to launch with, with the same
// managed-first preference as IsAvailable.
func (p *Provisioner) JavaCommand(minMajor int) (string, error) {
	managed := p.managedJavaPath()
	if major, err := probeMajor(managed); err == nil && major >= minMajor {
		return managed, nil
	}
	if major, err := probeMajor("java"); err == nil && major >= minMajor {
		return "java", nil
	}
	return "", fmt.Errorf("no Java %d+ runtime found: %w", minMajor, errs.ErrMissingPrerequisite)
}

// Ensure makes a runtime of at least minMajor available, downloading and
// unpacking the pinned distribution if neither a managed nor an ambient one
// qualifies. Unsupported platform/architecture pairs fail hard.
func (p *Provisioner) Ensure(ctx context.Context, minMajor int) error {
	if p.IsAvailable(minMajor) {
		p.logger.Debug("☕ Runtime already available", "min_major", minMajor)
		return nil
	}

	dist, err := distributionFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	installDir := filepath.Join(p.cfg.JavaDir, installDirName)
	marker := filepath.Join(installDir, markerName)
	if _, err := os.Stat(marker); err == nil {
		p.logger.Info("☕ Managed runtime already installed", "dir", installDir)
		return nil
	}

	archive := filepath.Join(p.cfg.JavaDir, "openjdk"+dist.Ext)
	p.logger.Info("⬇️ Downloading Java runtime", "url", dist.URL)
	if err := p.client.DownloadFile(ctx, dist.URL, archive); err != nil {
		return fmt.Errorf("runtime distribution: %w", err)
	}

	p.logger.Info("📦 Unpacking Java runtime", "archive", archive, "dest", p.cfg.JavaDir)
	if err := unpackArchive(archive, p.cfg.JavaDir); err != nil {
		return fmt.Errorf("unpacking runtime distribution: %w", err)
	}
	os.Remove(archive)

	if err := os.WriteFile(marker, []byte(installDirName+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing install marker: %w", err)
	}

	p.logger.Info("✅ Java runtime installed", "dir", installDir)
	return nil
}

// probeMajor invokes an executable with -version and parses the major
// version from its output. Java prints version info on stderr.
func probeMajor(exe string) (int, error) {
	out, err := exec.Command(exe, "-version").CombinedOutput()
	if err != nil {
		return 0, err
	}
	return parseMajor(string(out))
}

// parseMajor extracts the major version from `java -version` output.
func parseMajor(out string) (int, error) {
	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("no version string in output")
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parsing major version %q: %w", m[1], err)
	}
	return major, nil
}
