// Package manifest models the remote version index and per-version metadata
// documents, and loads them with a local cache.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/nova-client/launcher/internal/rules"
)

// Category is the partition a version identifier is presented under. Every
// identifier lands in exactly one category; the two "latest" designations win
// over the type-based ones.
type Category string

const (
	CategoryLatestRelease  Category = "Latest Release"
	CategoryLatestSnapshot Category = "Latest Snapshot"
	CategoryRelease        Category = "Release"
	CategorySnapshot       Category = "Snapshot"
	CategoryOldBeta        Category = "Old Beta"
	CategoryOldAlpha       Category = "Old Alpha"
)

// Categories lists all categories in presentation order.
var Categories = []Category{
	CategoryLatestRelease,
	CategoryLatestSnapshot,
	CategoryRelease,
	CategorySnapshot,
	CategoryOldBeta,
	CategoryOldAlpha,
}

// rawIndex mirrors the remote version_manifest_v2 document.
type rawIndex struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"versions"`
}

// Index is the classified view of the remote version index.
type Index struct {
	// URLs maps a version identifier to its metadata document URL.
	URLs map[string]string

	LatestRelease  string
	LatestSnapshot string

	// ByCategory assigns every identifier to exactly one category,
	// preferring the latest designations.
	ByCategory map[Category][]string
}

// URL returns the metadata document URL for a version id.
func (i *Index) URL(id string) (string, bool) {
	u, ok := i.URLs[id]
	return u, ok
}

// Download describes one fetchable artifact: where to get it, the digest it
// must hash to, and (for libraries) its storage path relative to the
// libraries tree.
type Download struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size,omitempty"`
	Path string `json:"path,omitempty"`
}

// LibraryDownloads holds a library's primary archive and its per-classifier
// native bundles.
type LibraryDownloads struct {
	Artifact    *Download           `json:"artifact,omitempty"`
	Classifiers map[string]Download `json:"classifiers,omitempty"`
}

// Library is one dependency entry of a version. Absent rules mean the library
// applies everywhere. Natives maps a rule OS name to a classifier string,
// which may carry an ${arch} placeholder.
type Library struct {
	Name      string            `json:"name"`
	Rules     []rules.Rule      `json:"rules,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
}

// Argument is one entry of a templated argument list: either a literal token
// or a rule-gated value that expands to one or more tokens.
type Argument struct {
	Rules []rules.Rule
	Value []string
}

// UnmarshalJSON accepts both the plain-string and the {rules, value} forms,
// where value itself is a string or a list of strings.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		a.Value = []string{literal}
		return nil
	}

	var obj struct {
		Rules []rules.Rule    `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("conditional argument: %w", err)
	}
	a.Rules = obj.Rules

	var one string
	if err := json.Unmarshal(obj.Value, &one); err == nil {
		a.Value = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(obj.Value, &many); err != nil {
		return fmt.Errorf("conditional argument value: %w", err)
	}
	a.Value = many
	return nil
}

// Arguments holds the modern split argument templates.
type Arguments struct {
	JVM  []Argument `json:"jvm"`
	Game []Argument `json:"game"`
}

// AssetIndex identifies the asset bundle a version uses.
type AssetIndex struct {
	ID   string `json:"id"`
	URL  string `json:"url,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
}

// VersionMetadata is one version's full descriptor. Once parsed it is treated
// as immutable; a document that fails to parse is re-fetched wholesale.
type VersionMetadata struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	MainClass  string              `json:"mainClass"`
	Downloads  map[string]Download `json:"downloads"`
	Libraries  []Library           `json:"libraries"`
	Arguments  *Arguments          `json:"arguments,omitempty"`
	AssetIndex *AssetIndex         `json:"assetIndex,omitempty"`

	// MinecraftArguments is the legacy single-string combined form used by
	// versions that predate the split templates.
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
}

// Client returns the main archive descriptor, if the document has one.
func (m *VersionMetadata) Client() (Download, bool) {
	d, ok := m.Downloads["client"]
	return d, ok
}
