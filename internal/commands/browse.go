package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/storage"
	"github.com/glabrego/relwin/internal/tui"
)

func addBrowse(topLevel *cobra.Command, rt *rootState) {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the terminal release browser",
		Example: `
relwin browse
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo, svc, err := openCatalog(ctx, rt.cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			releases, err := svc.ListReleases(ctx)
			if err != nil {
				return fmt.Errorf("cannot load releases: %w", err)
			}

			model := tui.NewModel(svc, releases)
			prefs, err := repo.LoadUIPreferences(ctx)
			if err != nil {
				rt.logger.Warn("could not load UI preferences, using defaults", "error", err)
			} else {
				model.ApplyPreferences(tui.Preferences{
					RelativeTime: prefs.RelativeTime,
					ShowNumbers:  prefs.ShowNumbers,
				})
			}
			model.SetPreferencesSaver(func(p tui.Preferences) error {
				saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer saveCancel()
				return repo.SaveUIPreferences(saveCtx, storage.UIPreferences{
					RelativeTime: p.RelativeTime,
					ShowNumbers:  p.ShowNumbers,
				})
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
