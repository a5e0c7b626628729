// Package serve implements the command that exposes the budget dashboard
// over HTTP.
package serve

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/budget-board/cmd/common"
	"fjacquet/budget-board/cmd/root"
	"fjacquet/budget-board/internal/api"
	"fjacquet/budget-board/internal/logging"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the budget dashboard API over HTTP",
	Long: `Load the monthly workbooks once and serve the dashboard API. The
portfolio can be refreshed and new workbooks uploaded while the server runs.
The server drains in-flight requests for up to 30 seconds on SIGINT or
SIGTERM.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	sess := root.NewSession()
	common.LoadPortfolio(sess, root.Log)

	listenAddr := root.Cfg.Server.Addr
	if addr != "" {
		listenAddr = addr
	}

	handler := api.NewHandler(sess, root.Cfg.Data.Directory)
	router := api.NewRouter(handler, root.Cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         listenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		root.Log.Info("Starting server",
			logging.Field{Key: "addr", Value: listenAddr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			root.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		root.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	root.Log.Info("Server exited")
}
