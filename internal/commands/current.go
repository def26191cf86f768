package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/release"
)

func addCurrent(topLevel *cobra.Command, rt *rootState) {
	cmd := &cobra.Command{
		Use:   "current [version]",
		Short: "Show or set the release the catalog page is centered on",
		Example: `
relwin current
relwin current v1.12.0
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo, svc, err := openCatalog(ctx, rt.cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			if len(args) == 1 {
				if err := svc.SetCurrent(ctx, args[0]); err != nil {
					return err
				}
				rt.logger.Info("current release set", "version", args[0])
			}

			releases, err := svc.ListReleases(ctx)
			if err != nil {
				return err
			}
			idx := release.CurrentIndex(releases)
			if idx < 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no current release")
				return nil
			}
			r := releases[idx]
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d of %d)\n", r.Label(), idx+1, len(releases))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
