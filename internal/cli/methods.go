package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgelab/dungeonforge/pkg/layout"
)

// methodsCommand creates the methods command listing the generation methods.
func (c *CLI) methodsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "methods [method]",
		Short: "List generation methods and their default parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				defaults, err := layout.DefaultParams(args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(defaults)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(layout.Methods())
			}

			fmt.Println(StyleTitle.Render("Generation methods"))
			printNewline()
			for _, m := range layout.Methods() {
				fmt.Println("  " + StyleHighlight.Render(m.Name))
				printDetail("%s", m.Description)
			}
			printNewline()
			printNextStep("Show a method's defaults", "dungeonforge methods physics_tinykep")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full method list as JSON")

	return cmd
}
