package cli

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/agentio"
	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/export"
)

// roomIsland is the on-disk form of one extracted room.
type roomIsland struct {
	RoomID int        `json:"room_id"`
	Origin [2]int     `json:"origin"`
	Island [][]string `json:"island"`
}

// agentCommand creates the agent command group for the external design
// round trip: rooms are extracted as isolated sub-grids in a reduced
// alphabet, designed elsewhere, and assembled back into one grid.
func (c *CLI) agentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Extract rooms for external design and reassemble the results",
	}

	cmd.AddCommand(c.agentExtractCommand())
	cmd.AddCommand(c.agentAssembleCommand())

	return cmd
}

// agentExtractCommand creates the "agent extract" subcommand.
func (c *CLI) agentExtractCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <layout.json>",
		Short: "Extract every room as an isolated sub-grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}

			extracts := agentio.ExtractRooms(res)
			islands := make([]roomIsland, 0, len(extracts))
			for _, e := range extracts {
				islands = append(islands, roomIsland{
					RoomID: e.RoomID,
					Origin: [2]int{e.OriginX, e.OriginY},
					Island: e.Island,
				})
			}
			sort.Slice(islands, func(i, j int) bool { return islands[i].RoomID < islands[j].RoomID })

			data, err := json.MarshalIndent(islands, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode islands")
			}
			if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}

			printSuccess("Extracted %d rooms", len(islands))
			printFile(output)
			printNextStep("Reassemble designed rooms", "dungeonforge agent assemble "+args[0]+" designs.json")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "rooms.json", "output file")

	return cmd
}

// agentAssembleCommand creates the "agent assemble" subcommand.
func (c *CLI) agentAssembleCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "assemble <layout.json> <designs.json>",
		Short: "Validate designed rooms and assemble them into one grid",
		Long: `Validate designed rooms and assemble them into one grid.

The designs file maps room ids to designed islands in the extraction
alphabet. Every design must keep its island's shape and leave walls, doors,
and void cells untouched; violations abort assembly with the offending room
and cell.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := export.LoadJSON(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "designs file %s", args[1])
				}
				return errors.Wrap(errors.ErrCodeInternal, err, "read designs file %s", args[1])
			}
			var designs map[int][][]string
			if err := json.Unmarshal(data, &designs); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidGrid, err, "parse designs file %s", args[1])
			}

			extracts := agentio.ExtractRooms(res)
			assembled, err := agentio.Assemble(res.Grid.Width(), res.Grid.Height(), extracts, designs)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(assembled, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode grid")
			}
			if err := os.WriteFile(output, append(out, '\n'), 0644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}

			printSuccess("Assembled %d designed rooms", len(designs))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "assembled.json", "output file")

	return cmd
}
