package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/export"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

// analyzeCommand creates the analyze command for layout statistics.
func (c *CLI) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <layout.json>",
		Short: "Print structural statistics for a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}
			a := layout.Analyze(res)

			fmt.Println(StyleTitle.Render("Layout analysis"))
			printNewline()
			printKeyValue("method", res.Metadata.Method)
			printKeyValue("seed", fmt.Sprintf("%d", res.Metadata.Seed))
			printKeyValue("grid", fmt.Sprintf("%dx%d", res.Grid.Width(), res.Grid.Height()))
			printKeyValue("rooms", fmt.Sprintf("%d (%d main)", a.RoomCount, a.MainRoomCount))
			printKeyValue("area", fmt.Sprintf("%.1f tiles", a.TotalArea))
			printKeyValue("avg size", fmt.Sprintf("%.1f tiles", a.AverageRoomSize))
			printKeyValue("doors", fmt.Sprintf("%d", a.DoorCount))
			printKeyValue("edges", fmt.Sprintf("%d", a.Connectivity.TotalConnections))
			printKeyValue("avg degree", fmt.Sprintf("%.2f", a.Connectivity.AvgConnectionsPerRoom))
			printKeyValue("connected", fmt.Sprintf("%t", a.Connectivity.Connected))

			if len(a.RoomTypes) > 0 {
				printNewline()
				fmt.Println(StyleTitle.Render("Room types"))
				types := make([]string, 0, len(a.RoomTypes))
				for t := range a.RoomTypes {
					types = append(types, string(t))
				}
				sort.Strings(types)
				for _, t := range types {
					printKeyValue(t, fmt.Sprintf("%d", a.RoomTypes[layout.RoomType(t)]))
				}
			}
			return nil
		},
	}
}
