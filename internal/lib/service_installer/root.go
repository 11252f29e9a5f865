package service_installer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/files"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/jsonc_parser"
	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/lib/shell_out"
)

// Unit is one background service of the dashboard deployment.
type Unit struct {
	Name        string
	Description string
	ExecStart   string
	User        string
	WorkingDir  string
	// Enabled reflects the configuration flag gating this unit. A
	// disabled unit is not installed, and an already-installed copy is
	// disabled on the next services run.
	Enabled bool
}

const systemdDir = "/etc/systemd/system"

var unitTemplate = template.Must(template.New("unit").Parse(`[Unit]
Description={{.Description}}
After=network.target

[Service]
Type=simple
User={{.User}}
WorkingDirectory={{.WorkingDir}}
ExecStart={{.ExecStart}}
Restart=on-failure
RestartSec=10

[Install]
WantedBy=multi-user.target
`))

// indirections for testability
var (
	sudoFn    = shell_out.Sudo
	captureFn = shell_out.Capture
	lookPath  = shell_out.LookPath
)

// Units builds the deployment's service set from the device config.
// The dashboard itself is unconditional; the USB copier is gated on
// usb_copy.enabled; the cloud sync pair is gated on cloud_sync.enabled.
func Units(cfg map[string]any, envDir string) []Unit {
	project := files.ProjectDir()
	python := files.EnvPython(envDir)
	user := runAsUser()

	usbEnabled := jsonc_parser.Bool(cfg, "usb_copy.enabled", false)
	usbInterval := int(jsonc_parser.Number(cfg, "usb_copy.interval_seconds", 30))
	syncEnabled := jsonc_parser.Bool(cfg, "cloud_sync.enabled", false)
	syncInterval := int(jsonc_parser.Number(cfg, "cloud_sync.interval_minutes", 10))

	return []Unit{
		{
			Name:        "meter-dashboard.service",
			Description: "Electrical meter monitoring dashboard",
			ExecStart:   python + " " + filepath.Join(project, "simple_meter_ui.py"),
			User:        user,
			WorkingDir:  project,
			Enabled:     true,
		},
		{
			Name:        "usb-copy.service",
			Description: "Copy meter CSV files to mounted USB drives",
			ExecStart: fmt.Sprintf("%s %s --daemon --interval %d",
				python, filepath.Join(project, "usb_csv_auto_copy.py"), usbInterval),
			User:       user,
			WorkingDir: project,
			Enabled:    usbEnabled,
		},
		{
			Name:        "cloud-sync.service",
			Description: fmt.Sprintf("Push meter CSV files to the cloud every %d minutes", syncInterval),
			ExecStart:   python + " " + filepath.Join(project, "cloud_sync.py"),
			User:        user,
			WorkingDir:  project,
			Enabled:     syncEnabled,
		},
		{
			Name:        "netwatch.service",
			Description: "Trigger a cloud sync when connectivity returns",
			ExecStart:   python + " " + filepath.Join(project, "netwatch_trigger.py"),
			User:        user,
			WorkingDir:  project,
			Enabled:     syncEnabled,
		},
	}
}

// Render produces the systemd unit file text.
func Render(u Unit) (string, error) {
	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, u); err != nil {
		return "", fmt.Errorf("rendering unit %s: %w", u.Name, err)
	}
	return buf.String(), nil
}

// Install writes the enabled units under /etc/systemd/system, reloads
// systemd and enables them immediately. Units whose flag turned off
// since the last run are disabled and stopped.
func Install(cfg map[string]any, envDir string) error {
	if _, ok := lookPath("systemctl"); !ok {
		return fmt.Errorf("systemctl not found in PATH; systemd is required for service installation")
	}

	units := Units(cfg, envDir)
	for _, u := range units {
		if !u.Enabled {
			continue
		}
		text, err := Render(u)
		if err != nil {
			return err
		}
		tmp := filepath.Join(files.FS().TempDir(), u.Name)
		if err := files.FS().WriteFile(tmp, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", tmp, err)
		}
		if code, err := sudoFn("install", []string{"-m", "0644", tmp, filepath.Join(systemdDir, u.Name)}); err != nil {
			return fmt.Errorf("installing unit %s failed (exit %d): %w", u.Name, code, err)
		}
	}

	if code, err := sudoFn("systemctl", []string{"daemon-reload"}); err != nil {
		return fmt.Errorf("systemctl daemon-reload failed (exit %d): %w", code, err)
	}

	for _, u := range units {
		if u.Enabled {
			if code, err := sudoFn("systemctl", []string{"enable", "--now", u.Name}); err != nil {
				return fmt.Errorf("enabling %s failed (exit %d): %w", u.Name, code, err)
			}
			continue
		}
		if files.IsRegularFile(filepath.Join(systemdDir, u.Name)) {
			if code, err := sudoFn("systemctl", []string{"disable", "--now", u.Name}); err != nil {
				return fmt.Errorf("disabling %s failed (exit %d): %w", u.Name, code, err)
			}
		}
	}
	return nil
}

// Start starts every enabled unit.
func Start(cfg map[string]any, envDir string) error {
	return eachEnabled(cfg, envDir, "start")
}

// Stop stops every unit of the set that is currently installed.
func Stop(cfg map[string]any, envDir string) error {
	for _, u := range Units(cfg, envDir) {
		if !files.IsRegularFile(filepath.Join(systemdDir, u.Name)) {
			continue
		}
		if code, err := sudoFn("systemctl", []string{"stop", u.Name}); err != nil {
			return fmt.Errorf("stopping %s failed (exit %d): %w", u.Name, code, err)
		}
	}
	return nil
}

func eachEnabled(cfg map[string]any, envDir, verb string) error {
	for _, u := range Units(cfg, envDir) {
		if !u.Enabled {
			continue
		}
		if code, err := sudoFn("systemctl", []string{verb, u.Name}); err != nil {
			return fmt.Errorf("%s %s failed (exit %d): %w", verb, u.Name, code, err)
		}
	}
	return nil
}

// IsActive reports a unit's systemd state.
func IsActive(unit string) bool {
	code, _, err := captureFn("systemctl", []string{"is-active", "--quiet", unit}, "", nil)
	return err == nil && code == 0
}

// runAsUser picks the identity the services run under: the user who
// invoked sudo when elevated, the login user otherwise, and the
// device's default account as a last resort.
func runAsUser() string {
	if u := files.FS().Getenv("SUDO_USER"); u != "" && u != "root" {
		return u
	}
	if u := files.FS().Getenv("USER"); u != "" && u != "root" {
		return u
	}
	return "pi"
}
