package venv_manager

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/pyversion"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/runtime_resolver"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
)

// indirections for testability
var (
	captureFn  = shell_out.Capture
	shellOutFn = shell_out.ShellOut
)

// State describes what Prepare found before acting.
type State int

const (
	StateAbsent State = iota
	StateStale
	StateValid
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateStale:
		return "stale"
	default:
		return "valid"
	}
}

// Inspect classifies an environment directory against the resolved
// interpreter version without mutating anything.
func Inspect(envDir string, bound pyversion.Version) State {
	python := files.EnvPython(envDir)
	if !files.FileExists(envDir) {
		return StateAbsent
	}
	if !files.IsExecutableFile(python) {
		// Directory exists but the interpreter is gone: a crashed or
		// interrupted earlier run. Treated like a version mismatch.
		return StateStale
	}
	if probeBoundVersion(python) != bound {
		return StateStale
	}
	return StateValid
}

// Prepare ensures envDir holds a virtual environment bound to the
// resolved interpreter's version and returns the environment's
// interpreter path. A valid existing environment is reused untouched;
// a stale one is deleted wholesale and recreated.
func Prepare(res runtime_resolver.Resolution, envDir string) (string, error) {
	python := files.EnvPython(envDir)

	switch Inspect(envDir, res.Version) {
	case StateValid:
		return python, nil
	case StateStale:
		if err := files.FS().RemoveAll(envDir); err != nil {
			return "", fmt.Errorf("removing stale environment %s: %w", envDir, err)
		}
	}

	if code, err := shellOutFn(res.Interpreter, []string{"-m", "venv", envDir}, "", nil); err != nil {
		return "", fmt.Errorf("creating environment %s failed (exit %d): %w", envDir, code, err)
	}

	// Normalize pip so later installs behave the same on every device.
	if code, err := shellOutFn(python, []string{"-m", "pip", "install", "--upgrade", "pip"}, "", nil); err != nil {
		return "", fmt.Errorf("upgrading pip in %s failed (exit %d): %w", envDir, code, err)
	}

	return python, nil
}

func probeBoundVersion(python string) pyversion.Version {
	code, out, err := captureFn(python, []string{"--version"}, "", nil)
	if err != nil || code != 0 {
		return pyversion.Zero
	}
	v, err := pyversion.Parse(out)
	if err != nil {
		return pyversion.Zero
	}
	return v
}
