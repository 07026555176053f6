package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"ticket-assigner/config"
	"ticket-assigner/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		corsOrigin string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run assignments over HTTP and serve the latest report",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg := config.Load(cfgFile, logger)

			if !verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(cfg, logger).Router(corsOrigin),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Msg("server started")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := srv.Shutdown(ctx)
			logger.Info().Msg("server stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "*", "allowed CORS origin")
	return cmd
}
