package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/internal/server"
	"github.com/matzehuels/tilegrid/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// serveCommand exposes the layout over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		noSave bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout over an HTTP JSON API",
		Long: `Serve the layout over an HTTP JSON API. The layout is created when missing
and written back on shutdown unless --no-save is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, !noSave)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the layout back on shutdown")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, save bool) error {
	logger := loggerFromContext(ctx)
	ws, err := c.open(ctx, true)
	if err != nil {
		return err
	}
	defer ws.close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(ws.eng, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving %s on http://%s", c.location(), addr)

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Shutdown", "error", err)
	}
	if save {
		return c.save(shutdownCtx, ws)
	}
	return nil
}
