package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/server"
)

func addServe(topLevel *cobra.Command, rt *rootState) {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored catalog as a windowed release page",
		Example: `
relwin serve
relwin serve --addr :9090
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = rt.cfg.Addr
			}

			initCtx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			repo, svc, err := openCatalog(initCtx, rt.cfg)
			cancel()
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(svc, server.Options{
				ListID:      rt.cfg.ListID,
				DownloadsID: rt.cfg.DownloadsID,
				Logger:      rt.logger,
			})
			return srv.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $RELWIN_ADDR)")

	topLevel.AddCommand(cmd)
}
