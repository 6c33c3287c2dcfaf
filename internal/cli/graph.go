package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhocevar/DissectingNPM/internal/graph"
)

// defaultStatsPackages are the packages "graph stats" reports on when none
// are given; well-known names likely to appear in any sizable dataset.
var defaultStatsPackages = []string{
	"react", "firebase", "express", "graphql", "vue", "async", "jquery", "bootstrap",
}

// newGraphCmd creates the "graph" command group for analyzing an assembled
// dataset as a package relationship graph.
func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Analyze an assembled dataset as a dependency graph",
	}
	cmd.AddCommand(newGraphStatsCmd())
	cmd.AddCommand(newGraphDotCmd())
	return cmd
}

func newGraphStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <dataset.csv> [package...]",
		Short: "Print relationship statistics for packages in a dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}

			names := args[1:]
			if len(names) == 0 {
				names = defaultStatsPackages
			}

			printInfo("%d packages, %d dependency edges", g.VertexCount(), g.EdgeCount())
			for _, name := range names {
				if _, ok := g.Vertex(name); !ok {
					printWarning("%s: not in dataset", name)
					continue
				}
				deps, err := g.TransitiveDependencies(name)
				if err != nil {
					return err
				}
				fmt.Println()
				printKeyValue("package", name)
				printKeyValue("transitive deps", strconv.Itoa(deps))
				printKeyValue("dependents", summarize(g.Dependents(name)))
				printKeyValue("shared keyword", summarize(g.SharedKeyword(name)))
				printKeyValue("shared maintainer", summarize(g.SharedMaintainer(name)))
			}
			return nil
		},
	}
}

func newGraphDotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dot <dataset.csv>",
		Short: "Render a dataset's dependency edges as DOT or SVG",
		Long: `Dot loads an assembled dataset and emits its in-dataset dependency edges as
a Graphviz digraph. With no --output the DOT text goes to stdout; an output
path ending in .svg is rendered through Graphviz instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}
			dot := graph.ToDOT(g)

			if output == "" {
				fmt.Print(dot)
				return nil
			}

			data := []byte(dot)
			if strings.HasSuffix(output, ".svg") {
				sp := newSpinner(cmd.Context(), "Rendering SVG...")
				sp.Start()
				data, err = graph.RenderSVG(cmd.Context(), dot)
				sp.Stop()
				if err != nil {
					return err
				}
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %d packages, %d edges", g.VertexCount(), g.EdgeCount())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg; default stdout)")
	return cmd
}

// summarize renders a name list as "n: a, b, c" with a cap so one popular
// package doesn't flood the terminal.
func summarize(names []string) string {
	const maxShown = 8
	if len(names) == 0 {
		return "0"
	}
	shown := names
	suffix := ""
	if len(names) > maxShown {
		shown = names[:maxShown]
		suffix = ", …"
	}
	return fmt.Sprintf("%d: %s%s", len(names), strings.Join(shown, ", "), suffix)
}
