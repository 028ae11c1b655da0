// Package launch assembles the process invocation for a prepared version:
// runtime executable, JVM flags, classpath, entry point, and substituted game
// arguments, then starts the process without waiting on it.
package launch

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/nova-client/launcher/internal/config"
	"github.com/nova-client/launcher/internal/errs"
	"github.com/nova-client/launcher/internal/manifest"
	"github.com/nova-client/launcher/internal/platform"
	"github.com/nova-client/launcher/internal/rules"
)

// JavaResolver resolves the runtime executable to launch with.
type JavaResolver interface {
	JavaCommand(minMajor int) (string, error)
}

// Request carries the caller-supplied launch inputs. ExtraFlags are opaque
// to the builder: they are appended verbatim into the JVM-flag section and
// never interpreted.
type Request struct {
	VersionID  string
	Username   string
	RAMGB      int
	ExtraFlags []string
}

// Plan is the fully assembled launch invocation. Args[0] is the runtime
// executable; WorkDir is the working directory the process starts in. A Plan
// is built per request and discarded after the process is started.
type Plan struct {
	Args    []string
	WorkDir string
}

// defaultJVMArgs is the fixed flag set used when a version only exposes the
// legacy combined-argument form and therefore carries no JVM template.
var defaultJVMArgs = []string{
	"-XX:+UseG1GC",
	"-XX:-UseAdaptiveSizePolicy",
	"-XX:MinHeapFreeRatio=3",
	"-XX:MaxHeapFreeRatio=9",
	"-XX:+DisableExplicitGC",
	"-XX:+AlwaysPreTouch",
	"-XX:+UnlockExperimentalVMOptions",
	"-XX:+ParallelRefProcEnabled",
}

// Builder constructs launch plans from locally prepared artifacts.
type Builder struct {
	cfg    *config.Config
	java   JavaResolver
	logger hclog.Logger

	// MinMajor is the runtime version floor; defaults to 21.
	MinMajor int

	// OSName and GOOS identify the target platform for rule evaluation and
	// the platform-specific JVM flags. Overridable for tests.
	OSName string
	GOOS   string
}

// NewBuilder creates a Builder targeting the host platform.
func NewBuilder(cfg *config.Config, java JavaResolver, logger hclog.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		java:     java,
		logger:   logger,
		MinMajor: 21,
		OSName:   platform.RuleOSName(),
		GOOS:     runtime.GOOS,
	}
}

// Build assembles the launch plan for a version. The version's metadata
// document and client archive must already exist locally; if they do not,
// the error directs the caller to re-run acquisition. Missing optional
// library files are skipped with a log line rather than failing the build.
func (b *Builder) Build(req Request) (*Plan, error) {
	meta, err := b.readMetadata(req.VersionID)
	if err != nil {
		return nil, err
	}

	javaPath, err := b.java.JavaCommand(b.MinMajor)
	if err != nil {
		return nil, err
	}

	if meta.MainClass == "" {
		return nil, fmt.Errorf("version %s has no entry point: %w", req.VersionID, errs.ErrMissingPrerequisite)
	}

	classpath, err := b.buildClasspath(meta, req.VersionID)
	if err != nil {
		return nil, err
	}

	args := []string{javaPath}
	args = append(args, b.jvmArgs(meta, req)...)
	args = append(args, req.ExtraFlags...)
	args = append(args, "-cp", classpath, meta.MainClass)

	gameArgs, err := b.gameArgs(meta, req)
	if err != nil {
		return nil, err
	}
	args = append(args, gameArgs...)

	return &Plan{Args: args, WorkDir: b.cfg.MinecraftDir}, nil
}

func (b *Builder) readMetadata(id string) (*manifest.VersionMetadata, error) {
	path := b.cfg.VersionJSON(id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("version %s metadata not present, run acquisition first: %w",
			id, errs.ErrMissingPrerequisite)
	}
	var meta manifest.VersionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("version %s metadata: %v: %w", id, err, errs.ErrParse)
	}
	if meta.ID == "" {
		meta.ID = id
	}
	return &meta, nil
}

// buildClasspath lists applicable library archives in manifest order,
// skipping entries whose files are missing on disk, and appends the client
// archive last. The client archive itself is mandatory.
func (b *Builder) buildClasspath(meta *manifest.VersionMetadata, versionID string) (string, error) {
	var entries []string
	for _, lib := range meta.Libraries {
		if !rules.Evaluate(lib.Rules, b.OSName) {
			continue
		}
		if lib.Downloads == nil || lib.Downloads.Artifact == nil {
			continue
		}
		path := b.cfg.LibraryPath(lib.Downloads.Artifact.Path)
		if _, err := os.Stat(path); err != nil {
			b.logger.Warn("⚠️ Library missing from classpath", "library", lib.Name, "path", path)
			continue
		}
		entries = append(entries, path)
	}

	jarPath := b.cfg.VersionJar(versionID)
	if _, err := os.Stat(jarPath); err != nil {
		return "", fmt.Errorf("client archive %s not present, run acquisition first: %w",
			jarPath, errs.ErrMissingPrerequisite)
	}
	entries = append(entries, jarPath)

	return strings.Join(entries, string(os.PathListSeparator)), nil
}

// jvmArgs assembles the runtime-argument section: memory and natives flags,
// then either the version's JVM template or the fixed default set, then the
// macOS compatibility flags when absent.
func (b *Builder) jvmArgs(meta *manifest.VersionMetadata, req Request) []string {
	args := []string{
		fmt.Sprintf("-Xmx%dG", req.RAMGB),
		"-Djava.library.path=" + b.cfg.NativesDir(req.VersionID),
	}

	if meta.Arguments != nil && len(meta.Arguments.JVM) > 0 {
		args = append(args, b.expand(meta.Arguments.JVM)...)
	} else {
		// Legacy combined-argument versions carry no JVM template; the
		// split cannot be reconstructed, so a fixed set stands in.
		args = append(args, defaultJVMArgs...)
	}

	if b.GOOS == "darwin" {
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "-XstartOnFirstThread") {
			args = append(args, "-XstartOnFirstThread")
		}
		if !strings.Contains(joined, "-Dorg.lwjgl.opengl.Display.allowSoftwareOpenGL=true") {
			args = append(args, "-Dorg.lwjgl.opengl.Display.allowSoftwareOpenGL=true")
		}
	}

	return args
}

// gameArgs assembles the program-argument section with every placeholder
// substituted.
func (b *Builder) gameArgs(meta *manifest.VersionMetadata, req Request) ([]string, error) {
	var tokens []string
	switch {
	case meta.Arguments != nil && len(meta.Arguments.Game) > 0:
		tokens = b.expand(meta.Arguments.Game)
	case meta.MinecraftArguments != "":
		tokens = strings.Fields(meta.MinecraftArguments)
	default:
		return nil, fmt.Errorf("version %s has no program arguments: %w",
			req.VersionID, errs.ErrMissingPrerequisite)
	}

	repl := b.placeholders(meta, req)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		for key, value := range repl {
			tok = strings.ReplaceAll(tok, key, value)
		}
		out = append(out, tok)
	}
	return out, nil
}

// expand flattens a templated argument list, including rule-gated entries
// only when their rules allow this platform.
func (b *Builder) expand(args []manifest.Argument) []string {
	var out []string
	for _, a := range args {
		if !rules.Evaluate(a.Rules, b.OSName) {
			continue
		}
		out = append(out, a.Value...)
	}
	return out
}

// placeholders is the fixed substitution table applied to every program
// argument token. Substitution is textual: a token may contain several
// placeholders, or literal text around one.
func (b *Builder) placeholders(meta *manifest.VersionMetadata, req Request) map[string]string {
	assetIndex := req.VersionID
	if meta.AssetIndex != nil && meta.AssetIndex.ID != "" {
		assetIndex = meta.AssetIndex.ID
	}
	versionType := meta.Type
	if versionType == "" {
		versionType = "release"
	}

	return map[string]string{
		"${auth_player_name}":      req.Username,
		"${version_name}":          req.VersionID,
		"${game_directory}":        b.cfg.MinecraftDir,
		"${assets_root}":           b.cfg.AssetsDir,
		"${assets_index_name}":     assetIndex,
		"${auth_uuid}":             DeriveOfflineIdentity(req.Username),
		"${auth_access_token}":     "0",
		"${user_type}":             "legacy",
		"${version_type}":          versionType,
		"${user_properties}":       "{}",
		"${quickPlayRealms}":       "",
		"${quickPlaySingleplayer}": "",
		"${quickPlayMultiplayer}":  "",
	}
}
