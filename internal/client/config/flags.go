package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/flagx"
)

// Flags lists the arguments owned by the config loader. They are removed
// before the rest is handed to the command tree.
var Flags = append([]string{"-a", "-t", "-l"}, flagx.ConfigFileFlags...)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the backend API
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only the flags listed above are looked at, so command arguments do not
// interfere.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-t", "-l"})

	fs := flag.NewFlagSet("casekeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
