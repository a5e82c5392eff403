package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mgatere/termfolio/internal/config"
	"github.com/mgatere/termfolio/internal/logging"
	"github.com/mgatere/termfolio/internal/server"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat endpoint",
	Long:  `Serve POST /api/chat, answering prompts with the active profile's model provider.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if addrFlag != "" {
			cfg.ListenAddr = addrFlag
		}
		runServer(cfg)
	},
}

func runServer(cfg *config.Config) {
	logger, err := logging.NewConsoleLogger(logging.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logging.Sync(logger)

	portfolio, err := loadPortfolio(cfg)
	if err != nil {
		logger.Fatal("Failed to load portfolio", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	responder := newResponder(ctx, cfg, portfolio, logger)
	srv := server.New(cfg.ListenAddr, responder, logger.Named("http"))
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("Chat server failed", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
