package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dhrumivyas20/placement-portal/internal/admin"
	"github.com/Dhrumivyas20/placement-portal/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var openAPIPath string

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func init() {
	httpServerCmd.Flags().StringVar(&openAPIPath, "openapi", "./api/openapi.yml", "OpenAPI document served at /openapi.yml")
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ensureDefaultAdmin(ctx, deps); err != nil {
		deps.Logger.Error("failed to ensure default admin", "error", err)
		return
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, deps.SQLX.DB, deps.Handlers(), deps.Metrics, rest.Options{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		MetricsPath:    deps.Config.Observability.Metrics.Path,
		OpenAPIPath:    openAPIPath,
	}, deps.Logger)

	if deps.Redis == nil {
		go runRevocationSweeper(ctx, deps, sweepInterval)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		deps.Logger.Info("starting HTTP server", "address", addr)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		deps.Logger.Info("received signal, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
		}
	}

	slog.Info("server stopped")
}

func ensureDefaultAdmin(ctx context.Context, deps *Dependencies) error {
	created, err := deps.Services.Admin.EnsureDefault(ctx, admin.DefaultAdmin{
		Username: deps.Config.Admin.Username,
		Email:    deps.Config.Admin.Email,
		Password: deps.Config.Admin.Password,
	})
	if err != nil {
		return err
	}
	if created {
		deps.Logger.Info("default admin account created", "email", deps.Config.Admin.Email)
	}
	return nil
}
