package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/mgatere/termfolio/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the chat endpoint",
	Long:  `Switch to the specified profile, save it as active and immediately serve the chat endpoint with it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Use(args[0]); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runServer(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
