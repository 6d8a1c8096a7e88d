package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/emerytura/internal/api"
	"github.com/rgehrsitz/emerytura/internal/calculation"
	"github.com/rgehrsitz/emerytura/internal/usage"
	"github.com/rgehrsitz/emerytura/internal/usage/sqlite"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pension estimator HTTP API",
		Long: `Serve the pension estimator over HTTP, recording every simulation in a SQLite usage log.

Examples:
  emerytura serve --addr :8080 --db emerytura.db
  emerytura serve --db :memory: --cors-origin https://emerytura.example.pl
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			dbPath, _ := cmd.Flags().GetString("db")
			origins, _ := cmd.Flags().GetStringSlice("cors-origin")
			debugMode, _ := cmd.Flags().GetBool("debug")

			store, err := sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer store.Close()

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(simpleCLILogger{})
			engine.Debug = debugMode

			recorder := usage.NewRecorder(engine, store)
			recorder.Logger = simpleCLILogger{}

			server := &http.Server{
				Addr:         addr,
				Handler:      api.NewRouter(api.NewHandler(recorder), origins),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Server starting on %s (usage log: %s)", addr, dbPath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Println("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			log.Println("Server stopped")
			return nil
		},
	}

	cmd.Flags().String("addr", ":8080", "HTTP listen address")
	cmd.Flags().String("db", "emerytura.db", "SQLite usage database path (\":memory:\" for a throwaway log)")
	cmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origins (default: local dev servers)")
	cmd.Flags().Bool("debug", false, "Log calculation details")
	return cmd
}
