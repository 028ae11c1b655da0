package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/fetch"
)

// metadataCacheSize bounds the in-memory session cache of parsed version
// metadata documents.
const metadataCacheSize = 32

// metadataAttempts bounds the delete-and-refetch loop for unparseable local
// metadata. A permanently malformed remote document surfaces as ErrParse
// instead of looping forever.
const metadataAttempts = 2

// Loader fetches the version index and resolves per-version metadata,
// persisting metadata documents under the versions tree.
type Loader struct {
	cfg    *config.Config
	client *fetch.Client
	logger hclog.Logger
	cache  *lru.Cache[string, *VersionMetadata]
}

// NewLoader creates a Loader backed by the given fetch client.
func NewLoader(cfg *config.Config, client *fetch.Client, logger hclog.Logger) (*Loader, error) {
	cache, err := lru.New[string, *VersionMetadata](metadataCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating metadata cache: %w", err)
	}
	return &Loader{cfg: cfg, client: client, logger: logger, cache: cache}, nil
}

// LoadIndex fetches the remote version index and classifies every entry into
// exactly one category. Identifiers equal to the latest release or snapshot
// land only in their "latest" category; all other categories are sorted by
// identifier, descending, for deterministic presentation.
func (l *Loader) LoadIndex(ctx context.Context) (*Index, error) {
	data, err := l.client.Get(ctx, l.cfg.ManifestURL)
	if err != nil {
		return nil, fmt.Errorf("version index: %w", err)
	}

	var raw rawIndex
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("version index: %v: %w", err, errs.ErrParse)
	}

	idx := &Index{
		URLs:           make(map[string]string, len(raw.Versions)),
		LatestRelease:  raw.Latest.Release,
		LatestSnapshot: raw.Latest.Snapshot,
		ByCategory:     make(map[Category][]string),
	}

	for _, v := range raw.Versions {
		idx.URLs[v.ID] = v.URL

		switch {
		case v.ID == raw.Latest.Release:
			idx.ByCategory[CategoryLatestRelease] = append(idx.ByCategory[CategoryLatestRelease], v.ID)
		case v.ID == raw.Latest.Snapshot:
			idx.ByCategory[CategoryLatestSnapshot] = append(idx.ByCategory[CategoryLatestSnapshot], v.ID)
		case v.Type == "release":
			idx.ByCategory[CategoryRelease] = append(idx.ByCategory[CategoryRelease], v.ID)
		case v.Type == "snapshot":
			idx.ByCategory[CategorySnapshot] = append(idx.ByCategory[CategorySnapshot], v.ID)
		case v.Type == "old_beta":
			idx.ByCategory[CategoryOldBeta] = append(idx.ByCategory[CategoryOldBeta], v.ID)
		case v.Type == "old_alpha":
			idx.ByCategory[CategoryOldAlpha] = append(idx.ByCategory[CategoryOldAlpha], v.ID)
		}
	}

	// Identifier order is not strictly chronological for pre-semver eras,
	// but it is stable.
	for cat, ids := range idx.ByCategory {
		if cat == CategoryLatestRelease || cat == CategoryLatestSnapshot {
			continue
		}
		sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	}

	l.logger.Info("📋 Version index loaded", "versions", len(idx.URLs),
		"latest_release", idx.LatestRelease, "latest_snapshot", idx.LatestSnapshot)
	return idx, nil
}

// LoadVersionMetadata returns the parsed metadata document for a version,
// from the session cache, the local copy, or the remote url, in that order.
// An unparseable local copy is deleted and re-fetched once; a document that
// still fails to parse after a fresh fetch is reported as ErrParse.
func (l *Loader) LoadVersionMetadata(ctx context.Context, id, url string) (*VersionMetadata, error) {
	if meta, ok := l.cache.Get(id); ok {
		return meta, nil
	}

	path := l.cfg.VersionJSON(id)

	for attempt := 0; attempt < metadataAttempts; attempt++ {
		data, err := os.ReadFile(path)
		if err != nil {
			data, err = l.fetchAndPersist(ctx, url, path)
			if err != nil {
				return nil, err
			}
		}

		var meta VersionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			l.logger.Warn("🧹 Removing unparseable version metadata",
				"version", id, "path", path, "error", err)
			os.Remove(path)
			continue
		}
		if meta.ID == "" {
			meta.ID = id
		}

		l.cache.Add(id, &meta)
		return &meta, nil
	}

	return nil, fmt.Errorf("version %s metadata unparseable after refetch: %w", id, errs.ErrParse)
}

// fetchAndPersist downloads a metadata document and stores it verbatim.
func (l *Loader) fetchAndPersist(ctx context.Context, url, path string) ([]byte, error) {
	data, err := l.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("version metadata: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating version directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("persisting version metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("persisting version metadata: %w", err)
	}

	l.logger.Debug("⬇️ Fetched version metadata", "url", url, "path", path)
	return data, nil
}
