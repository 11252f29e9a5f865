package offlinedeploy

import (
	"os"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/config"
	"github.com/mattn/go-isatty"
)

// shouldUseColors determines if colors/icons should be used based on color mode and TTY status
func shouldUseColors() bool {
	colorMode := cfg.Flags.Color
	isTTY := isatty.IsTerminal(os.Stdout.Fd())

	switch colorMode {
	case config.ColorModeAlways:
		return true
	case config.ColorModeNever:
		return false
	case config.ColorModeAuto:
		fallthrough
	default:
		return isTTY
	}
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Base icon constants (uncolored)
const (
	iconCheck   = "✓"
	iconClose   = "✗"
	iconAlert   = "⚠️"
	iconMagnify = "🔍"
)

// Plain text alternatives for icons when not in TTY
const (
	textCheck   = "[✓]"
	textClose   = "[✗]"
	textAlert   = "[!]"
	textMagnify = "[?]"
)

func IconCheck() string {
	if !shouldUseColors() {
		return textCheck
	}
	return colorGreen + iconCheck + colorReset
}

func IconClose() string {
	if !shouldUseColors() {
		return textClose
	}
	return colorRed + iconClose + colorReset
}

func IconAlert() string {
	if !shouldUseColors() {
		return textAlert
	}
	return colorYellow + iconAlert + colorReset
}

func IconMagnify() string {
	if !shouldUseColors() {
		return textMagnify
	}
	return colorCyan + iconMagnify + colorReset
}
