package offlinedeploy

import (
	"fmt"
	"os"
	"strings"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/runtime_resolver"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
	"github.com/spf13/cobra"
)

type checkResult struct {
	name     string
	required bool
	ok       bool
	detail   string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Pre-flight check (tools, runtimes, project files)",
	Long: `Check whether this machine is ready for offline provisioning.

Verifies the required tools, probes the available Python runtimes,
and confirms the project directory, wheel cache, configuration file,
and fallback runtime archive are where the pipeline expects them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor()
	},
}

func runDoctor() error {
	results := make([]checkResult, 0)

	for _, tool := range []string{"tar", "systemctl", "sudo"} {
		if path, found := lookPathFn(tool); found {
			results = append(results, checkResult{
				name:     "tool:" + tool,
				required: true,
				ok:       true,
				detail:   path,
			})
		} else {
			results = append(results, checkResult{
				name:     "tool:" + tool,
				required: true,
				ok:       false,
				detail:   "not found in PATH",
			})
		}
	}

	runtimeAdequate := false
	for _, interpreter := range []string{runtime_resolver.SystemInterpreter, runtime_resolver.StableInterpreter} {
		version := probeFn(interpreter)
		check := checkResult{
			name:     "runtime:" + interpreter,
			required: false,
			ok:       false,
			detail:   "not found in PATH",
		}
		if !version.IsZero() {
			check.detail = "Python " + version.String()
			check.ok = version.Meets(runtime_resolver.Required)
			if !check.ok {
				check.detail += " (too old, need " + runtime_resolver.Required.String() + "+)"
			}
		}
		if check.ok {
			runtimeAdequate = true
		}
		results = append(results, check)
	}

	// The archive only matters when no installed runtime is adequate.
	archive := files.FirstExisting(files.FallbackArchiveCandidates())
	archiveCheck := checkResult{
		name:     "file:" + files.FallbackArchiveName,
		required: !runtimeAdequate,
		ok:       archive != "",
		detail:   "not found in any search location",
	}
	if archive != "" {
		archiveCheck.detail = archive
	}
	results = append(results, archiveCheck)

	projectDir := files.ProjectDir()
	results = append(results, pathCheck("path:project", projectDir, true))

	wheelhouse := files.WheelhouseDir()
	wheelCheck := pathCheck("path:wheel cache", wheelhouse, true)
	if wheelCheck.ok {
		wheelCheck.detail = fmt.Sprintf("%s (%d wheels)", wheelhouse, countWheelsFn(wheelhouse))
	}
	results = append(results, wheelCheck)

	configPath := files.ConfigFilePath()
	configCheck := checkResult{
		name:     "file:config.jsonc",
		required: false,
		ok:       files.IsRegularFile(configPath),
		detail:   "missing, defaults apply",
	}
	if configCheck.ok {
		configCheck.detail = configPath
	}
	results = append(results, configCheck)

	fmt.Printf("%s Checking offline deployment readiness...\n\n", IconMagnify())

	passed, warned, failed := 0, 0, 0
	for _, r := range results {
		status := IconCheck()
		if !r.ok && r.required {
			status = IconClose()
			failed++
		} else if !r.ok {
			status = IconAlert()
			warned++
		} else {
			passed++
		}
		fmt.Printf("%s %-40s %s\n", status, r.name, r.detail)
	}

	fmt.Printf("\n%d passed, %d warnings, %d failures\n", passed, warned, failed)

	if failed > 0 {
		return fmt.Errorf("doctor found %d required issue(s)", failed)
	}

	fmt.Println("doctor passed")
	return nil
}

func pathCheck(name, path string, required bool) checkResult {
	check := checkResult{
		name:     name,
		required: required,
		ok:       files.IsDir(path),
		detail:   "missing at " + path,
	}
	if check.ok {
		check.detail = path
	}
	return check
}

func countWheels(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".whl") {
			count++
		}
	}
	return count
}

// indirections for testability
var (
	lookPathFn    = shell_out.LookPath
	probeFn       = runtime_resolver.Probe
	countWheelsFn = countWheels
)
