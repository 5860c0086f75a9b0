package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cheddargetter/internal/flagx"
)

// Flags lists every flag that takes a value, including -c/-config. The CLI
// treats the remaining arguments as a command.
var Flags = append([]string{"-c", "-config"}, fieldFlags...)

var fieldFlags = []string{"-s", "-u", "-k", "-t", "-l", "-m"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   API base URL
//	-u string   API username
//	-k string   product code
//	-t int      request timeout in seconds
//	-l string   log level
//	-m string   metrics listen address
//
// The password has no flag so it never shows up in process listings.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], fieldFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.API.BaseURL, "s", cfg.API.BaseURL, "API base URL")
	fs.StringVar(&cfg.API.Username, "u", cfg.API.Username, "API username")
	fs.StringVar(&cfg.API.ProductCode, "k", cfg.API.ProductCode, "product code")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.API.Timeout = time.Duration(*timeout) * time.Second
		}
	})
}
