package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/export"
	"github.com/forgelab/dungeonforge/pkg/layout"
	"github.com/forgelab/dungeonforge/pkg/wfc"
)

// sampleCommand creates the sample command for texture synthesis from a
// saved layout.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		width       int
		height      int
		seed        int64
		patternSize int
		fallback    int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "sample <layout.json>",
		Short: "Synthesize a larger grid from a layout's local tile patterns",
		Long: `Synthesize a larger grid from a layout's local tile patterns.

The saved layout's grid is treated as an example texture: every K x K window
is learned as a pattern with its adjacency constraints, and a new grid of the
requested size is collapsed cell by cell to stay locally consistent with the
example. Cells whose constraints become unsatisfiable are filled with the
fallback tile and counted as contradictions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}

			params := wfc.DefaultParams()
			params.PatternSize = patternSize
			params.FallbackTile = fallback

			spin := newSpinnerWithContext(cmd.Context(), "Collapsing patterns")
			spin.Start()
			p := newProgress(c.Logger)
			out, err := wfc.Run(rand.New(rand.NewSource(seed)), res.Grid, width, height, params)
			spin.Stop()
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Collapsed %dx%d grid from %d patterns", width, height, out.PatternCount))

			if out.Contradictions > 0 {
				printWarning("%d cells hit contradictions and used the fallback tile", out.Contradictions)
			}

			if output != "" {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
					return err
				}
				printSuccess("Synthesized %dx%d grid", width, height)
				printFile(output)
				return nil
			}

			fmt.Println(renderGrid(layout.Grid(out.Grid)))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 100, "output grid width in tiles")
	cmd.Flags().IntVar(&height, "height", 100, "output grid height in tiles")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed")
	cmd.Flags().IntVar(&patternSize, "pattern-size", 3, "side length of the learned sample windows")
	cmd.Flags().IntVar(&fallback, "fallback", 0, "tile written for contradictory cells")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result as JSON instead of previewing")

	return cmd
}
