package verifier

import (
	"fmt"
	"strings"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
)

// checkScript imports every install-critical library inside the
// environment and prints one name=version line per library. Any import
// error aborts the interpreter with a traceback and a non-zero exit.
const checkScript = `import flask, numpy, pandas, paho.mqtt, pymodbus, pytz, serial, sys
print("python=%d.%d.%d" % sys.version_info[:3])
print("pymodbus=" + pymodbus.__version__)
print("pyserial=" + serial.__version__)
print("paho-mqtt=" + getattr(paho.mqtt, "__version__", "?"))
print("flask=" + flask.__version__)
print("numpy=" + numpy.__version__)
print("pandas=" + pandas.__version__)
print("pytz=" + pytz.__version__)
`

// indirection for testability
var captureFn = shell_out.Capture

// Verify exercises a minimal import path inside the environment and
// returns the identifying version lines. A failing import is reported
// with the interpreter's own output and propagated, never swallowed.
func Verify(envPython string) ([]string, error) {
	code, out, err := captureFn(envPython, []string{"-c", checkScript}, "", nil)
	if err != nil || code != 0 {
		return nil, fmt.Errorf("environment verification failed (exit %d): %s", code, strings.TrimSpace(out))
	}
	lines := make([]string, 0, 8)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
