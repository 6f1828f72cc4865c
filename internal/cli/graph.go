package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/export"
)

// graphCommand creates the graph command for exporting room connectivity.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <layout.json>",
		Short: "Export the room connectivity graph as DOT, SVG, or PNG",
		Long: `Export the room connectivity graph as DOT, SVG, or PNG.

The DOT output prints to stdout unless --output is set. SVG and PNG are
rendered through graphviz and require an output file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}
			dot := export.ToDOT(res, export.DotOptions{Detailed: detailed})

			switch strings.ToLower(format) {
			case "dot":
				if output == "" {
					fmt.Print(dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}
			case "svg", "png":
				if output == "" {
					output = strings.TrimSuffix(args[0], ".json") + "." + format
				}
				spin := newSpinnerWithContext(cmd.Context(), "Rendering graph")
				spin.Start()
				var data []byte
				if format == "svg" {
					data, err = export.RenderSVG(cmd.Context(), dot)
				} else {
					data, err = export.RenderPNG(cmd.Context(), dot)
				}
				spin.Stop()
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}
			default:
				return errors.New(errors.ErrCodeUnsupported,
					"unknown graph format %q (available: dot, svg, png)", format)
			}

			printSuccess("Exported %d rooms, %d connections", len(res.Rooms), len(res.Graph.Edges))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot (default), svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to stdout for dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include area and door counts in node labels")

	return cmd
}
