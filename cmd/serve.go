package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/okhramov/impact-matcher/internal/results"
	"github.com/okhramov/impact-matcher/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve saved evaluation results over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().String("results-dir", "", `directory with result files (default "results")`)
}

func serve(cmd *cobra.Command) {
	logger := newLogger()
	logger.Info("starting the impact-matcher", zap.String("version", version))

	store := results.New(stringSetting(cmd, "results-dir", "results-dir"), logger)
	server := web.New(store, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := server.Listen(cmd.Flag("addr").Value.String()); err != nil {
		logger.Fatal("serving results", zap.Error(err))
	}
}
