package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/ghostwriter/internal/handlers"
	"github.com/lehigh-university-libraries/ghostwriter/internal/providers"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port     string
		provider string
		model    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the letter generation server",
		Long: `Starts the Ghostwriter HTTP API on the specified port.

The server accepts writing samples and a target prompt, anonymizes personal
information, and drafts a letter using the configured model provider
(Gemini, OpenAI, or Ollama). Requests without an API key run in mock mode.`,
		Example: `  # Start server on default port 8000
  ghostwriter serve

  # Serve with Ollama on a custom port
  ghostwriter serve --port 3000 --provider ollama`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider == "" {
				provider = providers.DefaultProvider()
			}
			if model == "" {
				model = providers.DefaultModel(provider)
			}
			handler := handlers.New(provider, model)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/generate", handler.HandleGenerate)
			mux.HandleFunc("/api/sessions", handler.HandleSessions)
			mux.HandleFunc("/api/sessions/", handler.HandleSessionDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Ghostwriter API available", "addr", addr, "provider", provider, "model", model)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8000", "Port to listen on")
	cmd.Flags().StringVar(&provider, "provider", "", "Model provider: gemini, openai, or ollama (default from GHOSTWRITER_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default depends on provider)")

	return cmd
}
