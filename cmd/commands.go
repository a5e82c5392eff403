package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgatere/termfolio/internal/registry"
)

var commandsCmd = &cobra.Command{
	Use:   "commands [query]",
	Short: "List portfolio commands or search them",
	Long:  `List the portfolio's terminal commands. With a query, rank them by fuzzy match on name and description.`,
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		portfolio, err := loadPortfolio(cfg)
		if err != nil {
			log.Fatalf("Failed to load portfolio: %v", err)
		}
		reg, err := registry.New(portfolio.Commands)
		if err != nil {
			log.Fatalf("Invalid portfolio: %v", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatCommands(reg, strings.Join(args, " ")))
	},
}

// formatCommands renders one aligned line per command, all of them for an empty
// query and the fuzzy matches otherwise.
func formatCommands(reg *registry.Registry, query string) string {
	commands := reg.Commands()
	if query != "" {
		commands = reg.Search(query)
		if len(commands) == 0 {
			return fmt.Sprintf("No commands match %q\n", query)
		}
	}

	width := len(registry.ClearCommand)
	for _, c := range commands {
		width = max(width, len(c.Name))
	}

	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%-*s  %s\n", width, c.Name, c.Description)
	}
	if query == "" {
		fmt.Fprintf(&b, "%-*s  %s\n", width, registry.ClearCommand, "Clear the terminal")
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
