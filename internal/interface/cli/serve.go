package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/fixinspect/internal/adapter/controller/web"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	addr        string
	corsOrigins []string
	archive     bool
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decode API over HTTP",
		Long: `Start an HTTP server exposing:
  POST /v1/decode       decode messages (JSON or one message per line)
  POST /v1/verify       validation report
  GET  /v1/fields/:key  dictionary lookup by tag or name
  GET  /healthz         liveness and dictionary version
  GET  /metrics         prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := flags.addr
			if addr == "" {
				addr = opts.container.Config().ServeAddr()
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return runServe(cmd.Context(), opts, flags, ln)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from setting serve_addr)")
	cmd.Flags().StringSliceVar(&flags.corsOrigins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "archive decoded messages unless a request opts out")
	return cmd
}

// runServe serves on ln until ctx is cancelled, then shuts down gracefully
func runServe(ctx context.Context, opts *rootOptions, flags *serveFlags, ln net.Listener) error {
	c := opts.container
	uc, err := c.InspectUseCase(ctx, flags.archive)
	if err != nil {
		ln.Close()
		return err
	}
	dict, err := c.Dictionary(ctx)
	if err != nil {
		ln.Close()
		return err
	}

	logger := GetLogger()
	srv := web.NewServer(web.Config{
		Inspect:     uc,
		Dictionary:  dict,
		Metrics:     c.Metrics(),
		Logger:      logger.Zerolog(),
		CORSOrigins: flags.corsOrigins,
		Archive:     flags.archive,
	})

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving on %s (dictionary %s)", ln.Addr(), dict.Version())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return c.WriteMetrics()
}
