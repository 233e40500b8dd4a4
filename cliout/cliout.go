// Package cliout provides structured output formatting for the sanchar CLI.
// It supports a human-readable text format and JSON, with consistent ANSI
// styling and ASCII fallbacks for terminals without Unicode support.
package cliout

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols with ASCII fallbacks
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"

	asciiCheck   = "[+]"
	asciiCross   = "[-]"
	asciiWarning = "[!]"
	asciiInfo    = "[i]"
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	noColor      = os.Getenv("NO_COLOR") != ""
)

// supportsUnicode detects if the terminal supports Unicode symbols.
var supportsUnicode = detectUnicodeSupport()

func detectUnicodeSupport() bool {
	if runtime.GOOS == "windows" {
		// Windows Terminal, VS Code and ConEmu handle Unicode fine; the
		// legacy console does not.
		return os.Getenv("WT_SESSION") != "" ||
			os.Getenv("TERM_PROGRAM") == "vscode" ||
			os.Getenv("ConEmuPID") != "" ||
			os.Getenv("TERM") != ""
	}
	return true
}

func getIcon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	noColor = true
	mu.Unlock()
}

func paint(color, text string) string {
	mu.RLock()
	plain := noColor
	mu.RUnlock()
	if plain {
		return text
	}
	return color + text + Reset
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	mu.Lock()
	defer mu.Unlock()
	switch format {
	case "default", "":
		globalFormat = FormatDefault
	case "json":
		globalFormat = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	return nil
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat == FormatJSON
}

// PrintJSON prints data as indented JSON to stdout.
func PrintJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format: the formatter runs for the
// default format, the data object is marshalled for JSON.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

// Header prints a bold header with a divider.
func Header(text string) {
	fmt.Printf("\n%s\n", paint(Bold, text))
	fmt.Println(strings.Repeat("=", len(text)))
}

// Success prints a success message with a green check.
func Success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(BrightGreen, getIcon(SymbolCheck, asciiCheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red cross.
func Error(format string, args ...any) {
	fmt.Printf("%s %s\n", paint(BrightRed, getIcon(SymbolCross, asciiCross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a yellow triangle.
func Warning(format string, args ...any) {
	fmt.Printf("%s  %s\n", paint(BrightYellow, getIcon(SymbolWarning, asciiWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with a blue info icon.
func Info(format string, args ...any) {
	fmt.Printf("%s  %s\n", paint(BrightBlue, getIcon(SymbolInfo, asciiInfo)), fmt.Sprintf(format, args...))
}

// Item prints an indented item.
func Item(format string, args ...any) {
	fmt.Printf("   %s\n", fmt.Sprintf(format, args...))
}

// Label prints a label and value pair.
func Label(label, value string) {
	fmt.Printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Plain prints plain text without any styling.
func Plain(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}
