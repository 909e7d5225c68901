package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/maroof-insights/storefront-dashboard/internal/api"
	"github.com/maroof-insights/storefront-dashboard/internal/handler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the dashboard API. The store table is loaded from the cached snapshot
on first use, or fetched from the configured source when no snapshot exists.`,
	RunE: runServe,
}

var servePreload bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&servePreload, "preload", false, "Load the store table before accepting requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if servePreload {
		if _, err := a.datasets.Load(ctx); err != nil {
			return err
		}
	}

	// 初始化路由
	router, stopLimiter := api.SetupRouter(a.cfg, api.Handlers{
		Chart:   handler.NewChartHandler(a.charts),
		Dataset: handler.NewDatasetHandler(a.datasets, a.charts),
	})
	defer stopLimiter()
	if !a.cfg.AuthEnabled() {
		log.Printf("[Server] JWT_SECRET not set, /dataset/refresh is unauthenticated")
	}

	srv := &http.Server{
		Addr:              a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		// 启动服务器
		log.Printf("Server starting on port %s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
