package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xx-template/xx-cli/internal/catalog"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available templates",
	Long:  `List the built-in project templates with their descriptions and source repositories.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is the JSON form of a catalog template.
type listEntry struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Repository            string   `json:"repository"`
	PostCloneInstructions []string `json:"postCloneInstructions,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	templates := catalog.Templates()

	if listJSON {
		entries := make([]listEntry, len(templates))
		for i, t := range templates {
			entries[i] = listEntry{
				Name:                  t.Name,
				Description:           t.Description,
				Repository:            t.Repository,
				PostCloneInstructions: t.PostCloneInstructions,
			}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling templates: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printCatalog(printer, templates)
	return nil
}
