package wheelhouse

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
)

// DependencySet is the fixed, ordered list of packages the dashboard
// scripts need at runtime. Versions are pinned to what the wheel cache
// was built against.
var DependencySet = []string{
	"pymodbus==2.5.3",
	"pyserial==3.5",
	"paho-mqtt==2.1.0",
	"termcolor==3.1.0",
	"flask==2.3.3",
	"numpy==1.24.3",
	"pandas==2.0.3",
	"pytz==2023.3",
}

// indirection for testability
var shellOutFn = shell_out.ShellOut

// Install installs the whole DependencySet into the environment from
// the local wheel cache, with no index access. All names go into a
// single pip invocation so version constraints are resolved jointly.
// The cache directory must exist before pip runs.
func Install(envPython, cacheDir string) error {
	if !files.IsDir(cacheDir) {
		return fmt.Errorf("wheel cache directory %s does not exist; "+
			"copy the offline_packages directory onto the device before running setup", cacheDir)
	}

	args := append([]string{"-m", "pip", "install", "--no-index", "--find-links", cacheDir}, DependencySet...)
	if code, err := shellOutFn(envPython, args, "", nil); err != nil {
		return fmt.Errorf("offline install failed (exit %d): %w\n"+
			"  the cache at %s is likely missing wheels matching this interpreter's ABI or the device architecture",
			code, err, cacheDir)
	}
	return nil
}
