// Package artifacts ensures a version's archives exist locally and verify
// against their manifest digests. The main archive is mandatory; libraries
// and native bundles are best-effort, so one broken optional download never
// aborts a whole acquisition pass.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/fetch"
	"github.com/nova-client/launcher/internal/manifest"
	"github.com/nova-client/launcher/internal/platform"
	"github.com/nova-client/launcher/internal/rules"
	"github.com/nova-client/launcher/internal/verify"
)

// DefaultWorkers bounds how many library and native downloads run at once.
const DefaultWorkers = 8

// Acquirer downloads and verifies the artifacts a version metadata document
// names. It owns the on-disk artifact tree but never mutates the metadata.
type Acquirer struct {
	cfg     *config.Config
	client  *fetch.Client
	logger  hclog.Logger
	workers int

	// OSName is the rule-evaluation platform string. Overridable for tests;
	// defaults to the host.
	OSName string
}

// New creates an Acquirer with the default worker bound.
func New(cfg *config.Config, client *fetch.Client, logger hclog.Logger) *Acquirer {
	return &Acquirer{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		workers: DefaultWorkers,
		OSName:  platform.RuleOSName(),
	}
}

// Ensure makes the main archive, applicable library archives, and native
// bundles of a version present and verified on disk.
//
// Already-verified files are never re-downloaded, so a second run against a
// complete cache performs no network requests. Library and native failures
// are logged and skipped; only the main archive is a hard failure.
func (a *Acquirer) Ensure(ctx context.Context, meta *manifest.VersionMetadata) error {
	client, ok := meta.Client()
	if !ok {
		return fmt.Errorf("version %s has no client archive: %w", meta.ID, errs.ErrMissingPrerequisite)
	}

	jarPath := a.cfg.VersionJar(meta.ID)
	if _, err := a.ensureFile(ctx, client.URL, jarPath, client.SHA1); err != nil {
		return fmt.Errorf("client archive for %s: %w", meta.ID, err)
	}

	nativesDir := a.cfg.NativesDir(meta.ID)
	if err := os.MkdirAll(nativesDir, 0o755); err != nil {
		return fmt.Errorf("creating natives directory: %w", err)
	}

	var (
		mu      sync.Mutex
		bundles []string
		soft    int
	)
	reportSoft := func(name string, err error) {
		mu.Lock()
		soft++
		mu.Unlock()
		a.logger.Warn("⚠️ Skipping library", "library", name, "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for _, lib := range meta.Libraries {
		if !rules.Evaluate(lib.Rules, a.OSName) {
			continue
		}
		lib := lib

		if lib.Downloads != nil && lib.Downloads.Artifact != nil {
			artifact := *lib.Downloads.Artifact
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				dest := a.cfg.LibraryPath(artifact.Path)
				if _, err := a.ensureFile(gctx, artifact.URL, dest, artifact.SHA1); err != nil {
					reportSoft(lib.Name, err)
				}
				return nil
			})
		}

		if dest, url, sha1, ok := a.nativeBundle(lib, nativesDir); ok {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				refreshed, err := a.ensureFile(gctx, url, dest, sha1)
				if err != nil {
					reportSoft(lib.Name, err)
					return nil
				}
				// A bundle that was already verified was unpacked by an
				// earlier run; only fresh downloads need unpacking.
				if refreshed {
					mu.Lock()
					bundles = append(bundles, dest)
					mu.Unlock()
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// Bundles can share member paths (META-INF and friends), so unpacking
	// stays sequential even though the downloads above were not.
	for _, bundle := range bundles {
		if err := unpackNatives(bundle, nativesDir, a.logger); err != nil {
			a.logger.Warn("⚠️ Skipping native bundle", "bundle", bundle, "error", err)
			mu.Lock()
			soft++
			mu.Unlock()
		}
	}

	if soft > 0 {
		a.logger.Warn("⚠️ Acquisition finished with skipped optional artifacts", "skipped", soft)
	} else {
		a.logger.Info("✅ All artifacts present and verified", "version", meta.ID)
	}
	return nil
}

// nativeBundle resolves the native-bundle descriptor for the current platform,
// substituting the ${arch} classifier placeholder. The bundle lands in the
// per-version natives directory under a name derived from the library
// coordinate and classifier.
func (a *Acquirer) nativeBundle(lib manifest.Library, nativesDir string) (dest, url, sha1 string, ok bool) {
	classifier, ok := lib.Natives[a.OSName]
	if !ok || lib.Downloads == nil {
		return "", "", "", false
	}
	classifier = strings.ReplaceAll(classifier, "${arch}", platform.ArchBits())

	desc, ok := lib.Downloads.Classifiers[classifier]
	if !ok {
		return "", "", "", false
	}

	parts := strings.Split(lib.Name, ":")
	base := parts[len(parts)-1]
	dest = filepath.Join(nativesDir, fmt.Sprintf("%s-%s.jar", base, classifier))
	return dest, desc.URL, desc.SHA1, true
}

// ensureFile makes a single verified artifact present at dest: a file that
// already hashes to sha1 is left alone, anything else is (re-)downloaded and
// verified. A post-download mismatch deletes the file so a later run cannot
// trust it. The returned bool reports whether a download happened.
func (a *Acquirer) ensureFile(ctx context.Context, url, dest, sha1 string) (bool, error) {
	if verify.File(dest, sha1) {
		a.logger.Debug("✓ Artifact already verified", "path", dest)
		return false, nil
	}

	if err := a.client.DownloadFile(ctx, url, dest); err != nil {
		return false, err
	}
	if !verify.File(dest, sha1) {
		os.Remove(dest)
		return true, fmt.Errorf("%s: %w", dest, errs.ErrIntegrity)
	}
	return true, nil
}
