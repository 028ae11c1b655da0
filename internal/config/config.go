// Package config builds the single Config value the rest of the launcher is
// handed. Directory locations are computed once here and passed by reference;
// nothing else in the tree consults the environment for paths.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultManifestURL is the remote index of available game versions.
const DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

// Config carries every path and endpoint the pipeline needs.
type Config struct {
	// BaseDir is the launcher's root (~/.nova-client, or
	// %APPDATA%\.nova-client on Windows).
	BaseDir string

	// MinecraftDir holds game data and is the working directory of the
	// launched process.
	MinecraftDir string

	VersionsDir  string
	LibrariesDir string
	AssetsDir    string
	SkinsDir     string

	// JavaDir holds managed runtime installs.
	JavaDir string

	ManifestURL string
	LogLevel    string
}

// Load builds a Config from defaults, an optional .env file, and NOVA_*
// environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	base := strings.TrimSpace(os.Getenv("NOVA_BASE_DIR"))
	if base == "" {
		base = defaultBaseDir()
	}

	manifestURL := strings.TrimSpace(os.Getenv("NOVA_MANIFEST_URL"))
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}

	logLevel := strings.TrimSpace(os.Getenv("NOVA_LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	return New(base, manifestURL, logLevel), nil
}

// New builds a Config rooted at base. Split out from Load so tests can point
// a whole pipeline at a temp directory.
func New(base, manifestURL, logLevel string) *Config {
	minecraftDir := filepath.Join(base, "minecraft")
	return &Config{
		BaseDir:      base,
		MinecraftDir: minecraftDir,
		VersionsDir:  filepath.Join(minecraftDir, "versions"),
		LibrariesDir: filepath.Join(minecraftDir, "libraries"),
		AssetsDir:    filepath.Join(minecraftDir, "assets"),
		SkinsDir:     filepath.Join(minecraftDir, "skins"),
		JavaDir:      filepath.Join(base, "java"),
		ManifestURL:  manifestURL,
		LogLevel:     logLevel,
	}
}

func defaultBaseDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".nova-client")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Roaming", ".nova-client")
	}
	return filepath.Join(home, ".nova-client")
}

// EnsureDirs creates the launcher's directory tree.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.MinecraftDir, c.VersionsDir, c.JavaDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Version paths ====================

// VersionDir returns the directory holding one version's files.
func (c *Config) VersionDir(id string) string {
	return filepath.Join(c.VersionsDir, id)
}

// VersionJSON returns the local metadata document path for a version.
func (c *Config) VersionJSON(id string) string {
	return filepath.Join(c.VersionDir(id), id+".json")
}

// VersionJar returns the local client archive path for a version.
func (c *Config) VersionJar(id string) string {
	return filepath.Join(c.VersionDir(id), id+".jar")
}

// NativesDir returns the per-version directory native bundles unpack into.
func (c *Config) NativesDir(id string) string {
	return filepath.Join(c.VersionDir(id), "natives")
}

// ==================== Shared paths ====================

// LibraryPath resolves a library's manifest-relative storage path.
func (c *Config) LibraryPath(rel string) string {
	return filepath.Join(c.LibrariesDir, filepath.FromSlash(rel))
}

// OptionsPath returns the game's options.txt location.
func (c *Config) OptionsPath() string {
	return filepath.Join(c.MinecraftDir, "options.txt")
}

// SkinPath returns the fixed custom-skin destination.
func (c *Config) SkinPath() string {
	return filepath.Join(c.SkinsDir, "custom_skin.png")
}
