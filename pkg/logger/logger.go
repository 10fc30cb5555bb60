package logger

import (
	"fmt"
	"os"
)

var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Gray   = "\033[37m"
)

var verbose bool

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	verbose = v
}

// All diagnostics go to stderr; stdout is reserved for command results
// such as the combine summary line.

// Info prints a blue [*] info message
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Blue+"[*] "+Reset+format+"\n", args...)
}

// Success prints a green [+] success message
func Success(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Green+"[+] "+Reset+format+"\n", args...)
}

// Warning prints a yellow [!] warning message
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Yellow+"[!] "+Reset+format+"\n", args...)
}

// Error prints a red [-] error message
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, Red+"[-] "+Reset+format+"\n", args...)
}

// Debug prints a gray [DEBUG] message when verbose mode is on
func Debug(format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Fprintf(os.Stderr, Gray+"[DEBUG] "+Reset+format+"\n", args...)
}
