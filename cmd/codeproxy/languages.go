package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var remoteFlag bool

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Aliases: []string{"langs"},
	Short:   "List supported languages",
	Long: `List the languages in the local catalog, or ask Judge0 for its own
list with --remote.`,
	RunE: runLanguages,
}

func init() {
	languagesCmd.Flags().BoolVar(&remoteFlag, "remote", false, "Query Judge0 instead of the local catalog")
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if remoteFlag {
		langs, err := a.client.Languages(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching remote languages: %w", err)
		}
		sort.Slice(langs, func(i, j int) bool { return langs[i].ID < langs[j].ID })

		fmt.Printf("%-6s %s\n", "ID", "NAME")
		fmt.Println(strings.Repeat("─", 50))
		for _, l := range langs {
			fmt.Printf("%-6d %s\n", l.ID, l.Name)
		}
		return nil
	}

	fmt.Printf("%-6s %-36s %s\n", "ID", "NAME", "ALIASES")
	fmt.Println(strings.Repeat("─", 70))
	for _, l := range a.catalog.Languages {
		fmt.Printf("%-6d %-36s %s\n", l.ID, l.Name, strings.Join(l.Aliases, ", "))
	}
	return nil
}
