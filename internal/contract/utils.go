package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Signal label constants.
const (
	StrongValue   = "Strong"   // Theme well above the frequency gate
	ElevatedValue = "Elevated" // Theme comfortably above the gate
	ModerateValue = "Moderate" // Theme at or just above the gate
	LowValue      = "Low"      // Theme below the gate
)

// Color variables for console output.
var (
	StrongColor   = color.New(color.FgRed, color.Bold)     // strongColor marks the dominant themes.
	ElevatedColor = color.New(color.FgMagenta, color.Bold) // elevatedColor marks clearly recurring themes.
	ModerateColor = color.New(color.FgYellow)              // moderateColor marks themes at the gate, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor marks below-gate informational themes.
)

// GetPlainLabel returns a plain text signal label for a theme, based on the
// ratio of its match count to the minimum pattern frequency. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(count, minFrequency int) string {
	if minFrequency < 1 {
		minFrequency = 1
	}
	ratio := float64(count) / float64(minFrequency)
	switch {
	case ratio >= 3:
		return StrongValue
	case ratio >= 2:
		return ElevatedValue
	case ratio >= 1:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored signal label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(count, minFrequency int) string {
	text := GetPlainLabel(count, minFrequency)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case ElevatedValue:
		return ElevatedColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run-history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".guidepost_history.db"
	}
	return filepath.Join(homeDir, ".guidepost_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
