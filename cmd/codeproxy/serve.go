package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/michaelbrown/codeproxy/internal/server"
	"github.com/michaelbrown/codeproxy/internal/storage"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the compile proxy",
	Long: `Start the HTTP server. API endpoints are under /api; when
server.static_dir is set, the playground is served at the root URL.

Examples:
  codeproxy serve
  codeproxy serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if !a.compiler.Configured() {
		a.logger.Warn("RAPIDAPI_KEY is not set; every compile request will fail")
	}

	var store storage.Store
	if a.cfg.HistoryEnabled() {
		s, err := openStore(a.cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
		a.logger.Info("history enabled", zap.String("db", a.cfg.Storage.DBPath))
	}

	port := a.cfg.Server.Port
	if portFlag > 0 {
		port = portFlag
	}

	srv := server.New(server.Options{
		Compiler:     a.compiler,
		Catalog:      a.catalog,
		Store:        store,
		StaticDir:    a.cfg.Server.StaticDir,
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
		Logger:       a.logger,
	})

	// Graceful shutdown on SIGINT/SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			a.logger.Warn("shutdown", zap.Error(err))
		}
	}()

	return srv.Start(port)
}
