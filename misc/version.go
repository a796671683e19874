// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X bookr/misc.version=... -X bookr/misc.githash=..."
var (
	version = "dev"
	githash = "unknown"
)

const appName = "bookr"

// GetAppName returns program name, when binary was renamed it follows the
// executable name so logs and reports do not collide.
func GetAppName() string {
	if exe, err := os.Executable(); err == nil {
		name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
		if strings.HasPrefix(name, appName) {
			return name
		}
	}
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}
