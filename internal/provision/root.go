package provision

import (
	"fmt"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/log"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/jsonc_parser"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/runtime_resolver"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/service_installer"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/venv_manager"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/verifier"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/wheelhouse"
)

// Options selects what a provisioning run does.
type Options struct {
	EnvName            string
	WithServices       bool
	AllowSystemInstall bool
}

// Result carries the explicit outcome of a full run. The resolved
// interpreter is threaded through here instead of living in mutable
// process state.
type Result struct {
	Resolution   runtime_resolver.Resolution
	EnvDir       string
	EnvPython    string
	VersionLines []string
}

// Reporter receives progress while the pipeline runs. Either field may
// be nil.
type Reporter struct {
	// OnStep is called when a named step begins.
	OnStep func(title string)
	// OnLine is called with informational output such as the
	// verifier's version lines.
	OnLine func(line string)
}

func (r Reporter) step(title string) {
	if r.OnStep != nil {
		r.OnStep(title)
	}
}

func (r Reporter) line(line string) {
	if r.OnLine != nil {
		r.OnLine(line)
	}
}

var logger = log.NewLogger()

// indirections for testability
var (
	resolveFn  = runtime_resolver.Resolve
	prepareFn  = venv_manager.Prepare
	installFn  = wheelhouse.Install
	verifyFn   = verifier.Verify
	servicesFn = service_installer.Install
	parseCfgFn = jsonc_parser.ParseFile
)

// Run executes the provisioning steps strictly in order, fail-fast.
// Each step is idempotent, so a re-run after a mid-pipeline failure
// converges instead of corrupting state.
func Run(opts Options, rep Reporter) (Result, error) {
	if opts.EnvName == "" {
		opts.EnvName = "venv"
	}

	rep.step("Resolving Python runtime")
	res, err := resolveFn(runtime_resolver.Options{AllowSystemInstall: opts.AllowSystemInstall})
	if err != nil {
		return Result{}, err
	}
	rep.line(fmt.Sprintf("interpreter: %s (Python %s)", res.Interpreter, res.Version))
	if res.UsedFallback {
		rep.line("installed bundled runtime under " + runtime_resolver.ExtractRoot)
	}
	logger.Debug("runtime resolved", "interpreter", res.Interpreter, "version", res.Version.String(), "fallback", res.UsedFallback)

	rep.step("Preparing environment directory")
	envDir := files.EnvDir(opts.EnvName)
	python, err := prepareFn(res, envDir)
	if err != nil {
		return Result{}, err
	}

	rep.step("Installing packages from the wheel cache")
	if err := installFn(python, files.WheelhouseDir()); err != nil {
		return Result{}, err
	}

	rep.step("Verifying the environment")
	lines, err := verifyFn(python)
	if err != nil {
		return Result{}, err
	}
	for _, line := range lines {
		rep.line(line)
	}

	logger.Debug("environment verified", "envDir", envDir, "modules", len(lines))
	result := Result{Resolution: res, EnvDir: envDir, EnvPython: python, VersionLines: lines}

	if opts.WithServices {
		rep.step("Enabling background services")
		cfg, err := parseCfgFn(files.ConfigFilePath())
		if err != nil {
			return Result{}, err
		}
		if err := servicesFn(cfg, envDir); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}
