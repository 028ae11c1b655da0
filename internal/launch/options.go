package launch

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// RewriteOptions rewrites the game's options.txt before a launch, capping
// maxFps and disabling vsync while preserving every other setting. The file
// is colon-delimited key:value lines; malformed lines are dropped silently.
// A missing file is created from scratch.
func RewriteOptions(path string, maxFPS int, logger hclog.Logger) error {
	keys, values := readOptions(path)

	set := func(key, value string) {
		if _, ok := values[key]; !ok {
			keys = append(keys, key)
		}
		values[key] = value
	}
	set("maxFps", fmt.Sprintf("%d", maxFPS))
	set("enableVsync", "false")

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteByte(':')
		sb.WriteString(values[key])
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing options file: %w", err)
	}
	logger.Debug("⚙️ Rewrote game options", "path", path, "max_fps", maxFPS)
	return nil
}

// readOptions parses an existing options file into insertion-ordered keys and
// a value map. Read errors just mean starting from an empty set.
func readOptions(path string) ([]string, map[string]string) {
	values := make(map[string]string)
	var keys []string

	data, err := os.ReadFile(path)
	if err != nil {
		return keys, values
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if _, ok := values[parts[0]]; !ok {
			keys = append(keys, parts[0])
		}
		values[parts[0]] = parts[1]
	}
	return keys, values
}
