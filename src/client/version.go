package client

import (
	"fmt"
	"io"
	"runtime"
)

// Version information (set by main via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent returns the User-Agent string for API requests.
// Always the project name, even if the binary is renamed.
func UserAgent() string {
	return "weather-cli/" + Version
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "weather-cli version %s\n", Version)
	fmt.Fprintf(w, "Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
