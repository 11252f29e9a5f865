package files

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem is the filesystem surface every provisioning step goes
// through. Kept narrow on purpose so tests can swap in an in-memory
// implementation.
type FileSystem interface {
	Create(name string) (afero.File, error)
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (afero.File, error)
	Stat(name string) (os.FileInfo, error)
	RemoveAll(path string) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	UserHomeDir() (string, error)
	TempDir() string
	Getenv(key string) string
}

type aferoFileSystem struct {
	fs afero.Fs
}

func (a *aferoFileSystem) Create(name string) (afero.File, error) {
	return a.fs.Create(name)
}

func (a *aferoFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFileSystem) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return a.fs.OpenFile(name, flag, perm)
}

func (a *aferoFileSystem) Stat(name string) (os.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFileSystem) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFileSystem) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (a *aferoFileSystem) TempDir() string {
	return os.TempDir()
}

func (a *aferoFileSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// NewAferoFileSystem wraps an afero.Fs in the FileSystem interface.
// Tests in other packages use it with afero.NewMemMapFs().
func NewAferoFileSystem(fs afero.Fs) FileSystem {
	return &aferoFileSystem{fs: fs}
}

// Global variable for dependency injection
var fileSystem FileSystem = &aferoFileSystem{fs: afero.NewOsFs()}

// SetFileSystem sets the file system implementation
func SetFileSystem(fs FileSystem) {
	fileSystem = fs
}

// ResetDependencies resets all dependencies to their default implementations
func ResetDependencies() {
	fileSystem = &aferoFileSystem{fs: afero.NewOsFs()}
}

// FS returns the current FileSystem implementation so other packages
// can route their own reads through the same injection point.
func FS() FileSystem {
	return fileSystem
}

// FileExists reports whether path exists at all (file or directory).
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := fileSystem.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := fileSystem.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := fileSystem.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsExecutableFile reports whether path is a regular file with any
// execute bit set.
func IsExecutableFile(path string) bool {
	info, err := fileSystem.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// FirstExisting returns the first path in candidates that exists as a
// regular file, or "" when none does. Order is the caller's priority
// order and is honored exactly.
func FirstExisting(candidates []string) string {
	for _, c := range candidates {
		if IsRegularFile(c) {
			return c
		}
	}
	return ""
}

// EnsureDirExists creates path (and parents) when missing and returns it.
func EnsureDirExists(path string) (string, error) {
	if _, err := fileSystem.Stat(path); os.IsNotExist(err) {
		if err := fileSystem.MkdirAll(path, 0o755); err != nil {
			return path, err
		}
	}
	return path, nil
}

// ProjectDir returns the dashboard project directory.
// If the OFFLINE_DEPLOY_HOME environment variable is set, it wins;
// otherwise the original on-device layout is used:
// /home/<user>/Desktop/simple-meter-dashboard
func ProjectDir() string {
	if home := fileSystem.Getenv("OFFLINE_DEPLOY_HOME"); home != "" {
		return home
	}
	userHome, err := fileSystem.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(userHome, "Desktop", "simple-meter-dashboard")
}

// EnvDir returns the environment directory for the given name,
// e.g. /home/pi/Desktop/simple-meter-dashboard/venv
func EnvDir(name string) string {
	return filepath.Join(ProjectDir(), name)
}

// EnvPython returns the interpreter inside an environment directory.
func EnvPython(envDir string) string {
	return filepath.Join(envDir, "bin", "python")
}

// WheelhouseDir returns the local wheel cache directory,
// e.g. /home/pi/Desktop/simple-meter-dashboard/offline_packages
func WheelhouseDir() string {
	return filepath.Join(ProjectDir(), "offline_packages")
}

// ConfigFilePath returns the JSONC device configuration file,
// e.g. /home/pi/Desktop/simple-meter-dashboard/config.jsonc
func ConfigFilePath() string {
	return filepath.Join(ProjectDir(), "config.jsonc")
}

// FallbackArchiveName is the bundled runtime tarball filename looked
// for at every candidate location.
const FallbackArchiveName = "python-3.13-rpi-aarch64.tar.xz"

// FallbackArchiveCandidates returns the fixed priority-ordered list of
// locations that may hold the bundled runtime tarball. The first
// existing regular file wins.
func FallbackArchiveCandidates() []string {
	return []string{
		filepath.Join(ProjectDir(), "assets", FallbackArchiveName),
		filepath.Join("/boot", "firmware", FallbackArchiveName),
		filepath.Join("/media", "usb", FallbackArchiveName),
	}
}
