package config

import (
	"fmt"
	"os"
)

// Exitf writes a formatted error message prefixed with the command name to
// stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "boardwalk: "+format+"\n", args...)
	os.Exit(1)
}
