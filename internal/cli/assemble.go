package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danielhocevar/DissectingNPM/internal/config"
	"github.com/danielhocevar/DissectingNPM/internal/dataset"
)

// newAssembleCmd creates the "assemble" command: crawl the dependency
// closures of a seed list into one CSV dataset.
func newAssembleCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		maxLines int
		output   string
		refresh  bool
		delay    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "assemble [seed-file]",
		Short: "Crawl seed packages and their dependencies into a CSV dataset",
		Long: `Assemble reads package names from a seed file (one per line), crawls each
package and its transitive dependencies via the npms.io API, and writes the
flattened metadata to a CSV file in the current directory. Maintainers are
re-encoded as integer codes assigned across the whole dataset.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			seedPath := "popular.txt"
			if len(args) == 1 {
				seedPath = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, store, err := newClient(ctx, cfg, delay)
			if err != nil {
				return err
			}
			defer store.Close()
			client.SetRefresh(refresh)

			runID := uuid.NewString()[:8]
			logger = logger.With("run", runID)
			logger.Debug("starting assembly",
				"seeds", seedPath, "max", maxLines, "output", output,
				"cache", cfg.Cache.Backend, "interval", cfg.Interval())

			prog := newProgress(logger)
			assembler := dataset.NewAssembler(client, logger.Infof)
			stats, err := assembler.Assemble(ctx, seedPath, maxLines, output)
			if err != nil {
				return err
			}
			prog.done("assembly complete")

			printSuccess("Crawled %d seeds into %d rows (%d distinct maintainers)",
				stats.Seeds, stats.Rows, stats.Maintainers)
			printFile("./" + output)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLines, "max-lines", dataset.DefaultMaxSeeds, "maximum seed lines to crawl")
	cmd.Flags().StringVarP(&output, "output", "o", "test_packages.csv", "output CSV filename (written to the current directory)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().DurationVar(&delay, "delay", 0, "override the request interval (e.g. 500ms)")

	return cmd
}
