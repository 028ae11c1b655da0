// Package launcher orchestrates the full pipeline: index resolution, runtime
// provisioning, artifact acquisition, and launch-plan construction, in that
// order. Data flows strictly forward between the stages; the only repeat is
// the metadata loader's own bounded refetch on a corrupt local document.
package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/artifacts"
	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/fetch"
	"github.com/nova-client/launcher/internal/jre"
	"github.com/nova-client/launcher/internal/launch"
	"github.com/nova-client/launcher/internal/manifest"
)

// targetFPS is written into options.txt before every launch.
const targetFPS = 60

// Pipeline wires the pipeline stages together over one shared Config.
type Pipeline struct {
	cfg    *config.Config
	logger hclog.Logger

	Loader   *manifest.Loader
	Acquirer *artifacts.Acquirer
	Runtime  *jre.Provisioner
	Builder  *launch.Builder

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// New builds a Pipeline and all of its stages.
func New(cfg *config.Config, logger hclog.Logger) (*Pipeline, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating launcher directories: %w", err)
	}

	client := fetch.NewClient(nil, logger)
	loader, err := manifest.NewLoader(cfg, client, logger)
	if err != nil {
		return nil, err
	}

	runtime := jre.New(cfg, client, logger)
	return &Pipeline{
		cfg:      cfg,
		logger:   logger,
		Loader:   loader,
		Acquirer: artifacts.New(cfg, client, logger),
		Runtime:  runtime,
		Builder:  launch.NewBuilder(cfg, runtime, logger),
		inflight: make(map[string]*sync.Mutex),
	}, nil
}

// Prepare ensures everything a version needs is on disk: a capable runtime,
// the metadata document, and all verified artifacts. Safe to call again; a
// complete cache makes it a no-op.
func (p *Pipeline) Prepare(ctx context.Context, versionID string) error {
	unlock, err := p.lockVersion(versionID)
	if err != nil {
		return err
	}
	defer unlock()

	return p.prepareLocked(ctx, versionID)
}

// Launch runs the whole pipeline for a request and starts the game process.
// It returns once the process is running; the child is not supervised.
func (p *Pipeline) Launch(ctx context.Context, req launch.Request) error {
	unlock, err := p.lockVersion(req.VersionID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := p.prepareLocked(ctx, req.VersionID); err != nil {
		return err
	}

	// Local performance tweak; never blocks a launch.
	if err := launch.RewriteOptions(p.cfg.OptionsPath(), targetFPS, p.logger); err != nil {
		p.logger.Warn("⚠️ Could not rewrite game options", "error", err)
	}

	plan, err := p.Builder.Build(req)
	if err != nil {
		return err
	}
	return launch.Start(plan, p.logger)
}

func (p *Pipeline) prepareLocked(ctx context.Context, versionID string) error {
	if err := p.Runtime.Ensure(ctx, jre.DefaultMinMajor); err != nil {
		return err
	}

	index, err := p.Loader.LoadIndex(ctx)
	if err != nil {
		return err
	}
	url, ok := index.URL(versionID)
	if !ok {
		return fmt.Errorf("unknown version %s: %w", versionID, errs.ErrMissingPrerequisite)
	}

	meta, err := p.Loader.LoadVersionMetadata(ctx, versionID, url)
	if err != nil {
		return err
	}

	return p.Acquirer.Ensure(ctx, meta)
}

// lockVersion serializes work on one version: an in-process mutex for
// concurrent callers inside this launcher, and a PID lock file against a
// second launcher process. The returned func releases both.
func (p *Pipeline) lockVersion(versionID string) (func(), error) {
	p.mu.Lock()
	m, ok := p.inflight[versionID]
	if !ok {
		m = &sync.Mutex{}
		p.inflight[versionID] = m
	}
	p.mu.Unlock()
	m.Lock()

	versionDir := p.cfg.VersionDir(versionID)
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		m.Unlock()
		return nil, fmt.Errorf("creating version directory: %w", err)
	}

	lockPath := filepath.Join(versionDir, ".lock")
	acquired, err := tryAcquireLock(lockPath, p.logger)
	if err != nil {
		m.Unlock()
		return nil, fmt.Errorf("locking version %s: %w", versionID, err)
	}
	if !acquired {
		m.Unlock()
		return nil, fmt.Errorf("version %s is being prepared by another process", versionID)
	}

	return func() {
		releaseLock(lockPath, p.logger)
		m.Unlock()
	}, nil
}
