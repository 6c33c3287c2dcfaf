// Package cli implements the dissectnpm command-line interface.
//
// The tool builds tabular datasets of npm package metadata by crawling the
// npms.io API. The main commands are:
//
//   - assemble: crawl a seed list's dependency closures into one CSV
//   - seeds: generate a seed list from npms.io search pages
//   - graph: analyze an assembled CSV as a package relationship graph
//   - cache: manage the HTTP response cache
//
// All commands support --verbose (-v) for debug-level logging and --config
// for an explicit TOML config file. Loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/danielhocevar/DissectingNPM/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called by
// the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the dissectnpm CLI and returns an error if any command
// fails. Logging defaults to info level on stderr; --verbose switches to
// debug.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "dissectnpm",
		Short:        "dissectnpm builds datasets from the npm dependency graph",
		Long:         `dissectnpm crawls npm package metadata from npms.io, following each package's transitive dependencies, and flattens the results into a CSV dataset for analysis.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("dissectnpm %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./dissectnpm.toml)")

	loadConfig := func() (config.Config, error) { return config.Load(configPath) }

	root.AddCommand(newAssembleCmd(loadConfig))
	root.AddCommand(newSeedsCmd(loadConfig))
	root.AddCommand(newGraphCmd())
	root.AddCommand(newCacheCmd(loadConfig))

	return root.ExecuteContext(ctx)
}
