package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhocevar/DissectingNPM/internal/config"
	"github.com/danielhocevar/DissectingNPM/internal/seeds"
)

// newSeedsCmd creates the "seeds" command: build a seed list from npms.io
// search pages.
func newSeedsCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		letters string
		pages   int
		size    int
		output  string
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "Generate a seed list of popular package names",
		Long: `Seeds queries the npms.io search API once per letter ("a boost-exact:false"
and so on), pages through the results, and writes the merged, deduplicated
package names to a file for later use as assemble input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, store, err := newClient(ctx, cfg, delay)
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(logger)
			names, err := seeds.Collect(ctx, client, seeds.Options{
				Letters:  letters,
				Pages:    pages,
				PageSize: size,
			}, logger.Infof)
			if err != nil {
				return err
			}
			if err := seeds.WriteList(output, names); err != nil {
				return err
			}
			prog.done("seed list complete")

			printSuccess("Collected %d package names", len(names))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&letters, "letters", "", "letters to query (default a-z)")
	cmd.Flags().IntVar(&pages, "pages", 0, "result pages per letter (default 10)")
	cmd.Flags().IntVar(&size, "size", 0, "results per page (default 250, the npms.io maximum)")
	cmd.Flags().StringVarP(&output, "output", "o", "popular.txt", "output file")
	cmd.Flags().DurationVar(&delay, "delay", 0, "override the request interval (e.g. 500ms)")

	return cmd
}
