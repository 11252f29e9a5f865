package shell_out

import (
	"os"
	"os/exec"
)

// ShellOut runs a command with stdout/stderr wired to the terminal and
// returns its exit code. -1 means the command could not be started.
func ShellOut(command string, args []string, dir string, env []string) (int, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if env != nil {
		cmd.Env = append(os.Environ(), env...)
	}
	err := cmd.Run()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return exitError.ExitCode(), err
		}
		return -1, err
	}
	return 0, nil
}

// Capture runs a command and returns its exit code and combined output
// without printing anything.
func Capture(command string, args []string, dir string, env []string) (int, string, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	if env != nil {
		cmd.Env = append(os.Environ(), env...)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return exitError.ExitCode(), string(output), err
		}
		return -1, string(output), err
	}
	return 0, string(output), nil
}

// Sudo runs a command under sudo with streaming output. When the
// current process is already root the prefix is dropped, so the same
// call works in both a sudo-invoked run and a plain root shell.
func Sudo(command string, args []string) (int, error) {
	if os.Geteuid() == 0 {
		return ShellOut(command, args, "", nil)
	}
	return ShellOut("sudo", append([]string{command}, args...), "", nil)
}

// HasCommand reports whether running command with args exits zero.
func HasCommand(command string, args []string) bool {
	cmd := exec.Command(command, args...)
	err := cmd.Run()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return exitError.ExitCode() == 0
		}
		return false
	}
	return true
}

// LookPath reports whether command resolves on PATH and to where.
func LookPath(command string) (string, bool) {
	path, err := exec.LookPath(command)
	return path, err == nil
}
