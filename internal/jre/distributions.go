package jre

import (
	"fmt"

	"github.com/nova-client/launcher/internal/errs"
)

// distribution names a runtime archive for one platform/architecture pair.
type distribution struct {
	URL string
	Ext string
}

const temurinBase = "https://github.com/adoptium/temurin21-binaries/releases/download/jdk-21.0.5%2B11/"

// distributions is the fixed table of supported runtime downloads.
var distributions = map[string]distribution{
	"windows/amd64": {
		URL: temurinBase + "OpenJDK21U-jdk_x64_windows_hotspot_21.0.5_11.zip",
		Ext: ".zip",
	},
	"linux/amd64": {
		URL: temurinBase + "OpenJDK21U-jdk_x64_linux_hotspot_21.0.5_11.tar.gz",
		Ext: ".tar.gz",
	},
	"darwin/amd64": {
		URL: temurinBase + "OpenJDK21U-jdk_x64_mac_hotspot_21.0.5_11.tar.gz",
		Ext: ".tar.gz",
	},
}

// distributionFor selects the runtime download for a platform/architecture
// pair. There is no silent fallback: an unsupported pair is a hard error
// telling the user to install the runtime manually.
func distributionFor(goos, goarch string) (distribution, error) {
	d, ok := distributions[goos+"/"+goarch]
	if !ok {
		return distribution{}, fmt.Errorf(
			"no Java distribution for %s/%s, install OpenJDK %d manually: %w",
			goos, goarch, DefaultMinMajor, errs.ErrUnsupportedPlatform)
	}
	return d, nil
}
