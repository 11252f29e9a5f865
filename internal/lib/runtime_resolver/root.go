package runtime_resolver

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/pyversion"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
)

const (
	// SystemInterpreter is the distro-default command probed first.
	SystemInterpreter = "python3"
	// StableInterpreter is the well-known command a previous fallback
	// install leaves behind, so re-runs skip re-extraction.
	StableInterpreter = "python3.13"

	// ExtractRoot is where the fallback tarball is unpacked.
	ExtractRoot = "/usr/local"
	// StableLink is the stable symbolic reference created after a
	// fallback install.
	StableLink = "/usr/local/bin/python3.13"
	// StablePipLink mirrors StableLink for the bundled pip, when present.
	StablePipLink = "/usr/local/bin/pip3.13"
)

// Required is the minimum interpreter version the dashboard needs.
var Required = pyversion.Version{Major: 3, Minor: 13}

// Resolution is the immutable outcome of runtime resolution. It is
// passed explicitly into every later provisioning step instead of
// living in mutable process state.
type Resolution struct {
	Interpreter  string
	Version      pyversion.Version
	UsedFallback bool
}

// Options controls the fallback branch.
type Options struct {
	// AllowSystemInstall authorizes writing outside the project
	// directory (tarball extraction under ExtractRoot, symlinks under
	// /usr/local/bin). Without it the fallback branch refuses to run.
	AllowSystemInstall bool
}

// indirections for testability
var (
	captureFn  = shell_out.Capture
	sudoFn     = shell_out.Sudo
	deviceArch = runtime.GOARCH
)

// Probe runs `command --version` and parses the reported version.
// A missing command or an unparseable reply both collapse to the zero
// version, which fails every requirement.
func Probe(command string) pyversion.Version {
	code, out, err := captureFn(command, []string{"--version"}, "", nil)
	if err != nil || code != 0 {
		return pyversion.Zero
	}
	v, err := pyversion.Parse(out)
	if err != nil {
		return pyversion.Zero
	}
	return v
}

// Resolve determines the interpreter executable used by all later
// steps. Probe order: the system default, then the stable reference a
// previous fallback install created, then the bundled tarball.
func Resolve(opts Options) (Resolution, error) {
	for _, cmd := range []string{SystemInterpreter, StableInterpreter} {
		if v := Probe(cmd); v.Meets(Required) {
			return Resolution{Interpreter: cmd, Version: v}, nil
		}
	}

	archive := files.FirstExisting(files.FallbackArchiveCandidates())
	if archive == "" {
		return Resolution{}, fmt.Errorf(
			"no adequate runtime: need Python %s or newer and no fallback archive was found\n"+
				"  checked: %s",
			Required, strings.Join(files.FallbackArchiveCandidates(), ", "))
	}

	if !opts.AllowSystemInstall {
		return Resolution{}, fmt.Errorf(
			"found fallback archive %s but system-wide installation is not authorized\n"+
				"  re-run with --system-fallback to extract it under %s", archive, ExtractRoot)
	}

	if err := checkArchitecture(archive); err != nil {
		return Resolution{}, err
	}

	if code, err := sudoFn("tar", []string{"-C", ExtractRoot, "-xf", archive}); err != nil {
		return Resolution{}, fmt.Errorf("extracting %s failed (exit %d): %w", archive, code, err)
	}

	exe := FindExtractedInterpreter()
	if exe == "" {
		return Resolution{}, fmt.Errorf(
			"no %s executable found under %s after extracting %s: "+
				"the archive is malformed or built for a different platform",
			StableInterpreter, ExtractRoot, archive)
	}

	if err := linkStableReference(exe); err != nil {
		return Resolution{}, err
	}

	return Resolution{Interpreter: StableLink, Version: Required, UsedFallback: true}, nil
}

// interpreterCandidates is the fixed priority-ordered list of relative
// locations a fallback tarball may place its interpreter at.
func interpreterCandidates() []string {
	return []string{
		filepath.Join("bin", StableInterpreter),
		filepath.Join(StableInterpreter, "bin", StableInterpreter),
		filepath.Join("python", "bin", StableInterpreter),
	}
}

// FindExtractedInterpreter returns the first executable interpreter
// found under ExtractRoot, trying candidates in priority order.
// Empty result means the extraction yielded nothing usable.
func FindExtractedInterpreter() string {
	for _, rel := range interpreterCandidates() {
		abs := filepath.Join(ExtractRoot, rel)
		if files.IsExecutableFile(abs) {
			return abs
		}
	}
	return ""
}

// archTokens maps GOARCH values to the tags runtime tarball names use.
var archTokens = map[string][]string{
	"arm64": {"aarch64", "arm64"},
	"amd64": {"x86_64", "amd64"},
	"arm":   {"armv7l", "armhf", "arm32"},
	"386":   {"i686", "i386"},
}

var knownTokens = []string{"aarch64", "arm64", "x86_64", "amd64", "armv7l", "armhf", "arm32", "i686", "i386"}

// checkArchitecture rejects an archive whose filename carries an
// architecture tag that does not match the running device. Archives
// without a recognizable tag pass through unchecked, as before.
func checkArchitecture(archive string) error {
	name := strings.ToLower(filepath.Base(archive))
	found := ""
	for _, token := range knownTokens {
		if strings.Contains(name, token) {
			found = token
			break
		}
	}
	if found == "" {
		return nil
	}
	for _, accepted := range archTokens[deviceArch] {
		if found == accepted {
			return nil
		}
	}
	return fmt.Errorf("fallback archive %s targets %s but this device is %s; refusing to extract it",
		archive, found, deviceArch)
}

func linkStableReference(exe string) error {
	if code, err := sudoFn("ln", []string{"-sf", exe, StableLink}); err != nil {
		return fmt.Errorf("creating %s failed (exit %d): %w", StableLink, code, err)
	}
	// Link the matching pip when the archive shipped one.
	pip := filepath.Join(filepath.Dir(exe), "pip3.13")
	if files.IsExecutableFile(pip) {
		if code, err := sudoFn("ln", []string{"-sf", pip, StablePipLink}); err != nil {
			return fmt.Errorf("creating %s failed (exit %d): %w", StablePipLink, code, err)
		}
	}
	return nil
}
