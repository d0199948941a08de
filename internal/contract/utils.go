package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	FindingColor = color.New(color.FgGreen, color.Bold)  // supportive finding
	CautionColor = color.New(color.FgYellow, color.Bold) // finding needs caveats
	HeaderColor  = color.New(color.FgCyan, color.Bold)   // section headers
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogProgress logs a progress line to stderr so reports on stdout stay clean.
func LogProgress(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// FirstLine returns the first line of a message, truncated to maxLen runes.
func FirstLine(message string, maxLen int) string {
	line := message
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		line = message[:idx]
	}
	runes := []rune(line)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return line
}
