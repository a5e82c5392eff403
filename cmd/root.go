package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/app"
	"github.com/mgatere/termfolio/internal/config"
	"github.com/mgatere/termfolio/internal/logging"
)

var (
	endpointFlag  string
	portfolioFlag string
)

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "An AI powered portfolio terminal",
	Long: `Termfolio is a portfolio you browse like a shell. Known commands print
their section; anything else is answered by an AI assistant.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg.OverrideEndpoint(endpointFlag)
		return runTerminal(cmd, cfg)
	},
}

// runTerminal runs the terminal until the visitor quits.
func runTerminal(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.NewFileLogger(logging.Config{FilePath: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logging.Sync(logger)

	portfolio, err := loadPortfolio(cfg)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}

	sender := newSender(cmd.Context(), cfg, portfolio, logger)

	application, err := app.NewApplication(cfg, portfolio, sender, logger)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		logger.Error("Terminal exited with error", zap.Error(err))
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&endpointFlag, "endpoint", "", "chat endpoint URL (default: answer in process)")
	rootCmd.PersistentFlags().StringVar(&portfolioFlag, "portfolio", "", "portfolio YAML file (default: built-in)")

	rootCmd.AddCommand(profileCmd)
}
