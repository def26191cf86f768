package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/app"
	"github.com/glabrego/relwin/internal/config"
	"github.com/glabrego/relwin/internal/storage"
)

// rootState is filled in before any subcommand runs.
type rootState struct {
	cfg    config.Config
	logger *slog.Logger
}

func New() *cobra.Command {
	rt := &rootState{}
	cmd := &cobra.Command{
		Use:           "relwin",
		Short:         "Show long release lists as a window around the current release.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			rt.cfg = cfg
			rt.logger = cfg.Logger()
			slog.SetDefault(rt.logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCommands(cmd, rt)
	return cmd
}

func addCommands(topLevel *cobra.Command, rt *rootState) {
	addImport(topLevel, rt)
	addRender(topLevel, rt)
	addCurrent(topLevel, rt)
	addList(topLevel, rt)
	addServe(topLevel, rt)
	addBrowse(topLevel, rt)
}

// openCatalog opens the sqlite catalog and makes sure it can be written.
// The caller closes the returned repository.
func openCatalog(ctx context.Context, cfg config.Config) (*storage.Repository, *app.Service, error) {
	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repo.Init(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, fmt.Errorf("storage write check failed (%v). Verify RELWIN_DB_PATH is writable: %s", err, cfg.DBPath)
	}
	return repo, app.NewService(repo), nil
}
