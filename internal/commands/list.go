package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/server"
	"github.com/glabrego/relwin/internal/window"

	tuirows "github.com/glabrego/relwin/internal/tui/rows"
	tuiview "github.com/glabrego/relwin/internal/tui/view"
)

func addList(topLevel *cobra.Command, rt *rootState) {
	var (
		expand []string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the stored releases the way the page window shows them",
		Example: `
relwin list
relwin list --expand top
relwin list --all
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := server.ParseExpand(expand)
			if err != nil {
				return err
			}
			if all {
				requests = append(requests, window.ExpandTop, window.ExpandBottom)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			repo, svc, err := openCatalog(ctx, rt.cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			releases, err := svc.ListReleases(ctx)
			if err != nil {
				return err
			}
			return printWindow(cmd.OutOrStdout(), releases, requests)
		},
	}
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "replay a more control, top or bottom; repeatable")
	cmd.Flags().BoolVar(&all, "all", false, "expand both ways and list every release")

	topLevel.AddCommand(cmd)
}

func printWindow(w io.Writer, releases []release.Release, requests []window.Request) error {
	list := tuirows.New(releases)
	ctrl, err := window.New(list)
	if err != nil {
		return err
	}
	for _, req := range requests {
		ctrl.Handle(req)
	}

	if list.Len() == 0 {
		_, _ = fmt.Fprintln(w, "no releases")
		return nil
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, item := range list.Items() {
		switch item.Kind {
		case tuiview.ItemMoreTop:
			tbl.AddRow("", faint.Sprintf("▲ %d more", list.HiddenAbove()), "")
		case tuiview.ItemMoreBottom:
			tbl.AddRow("", faint.Sprintf("▼ %d more", list.HiddenBelow()), "")
		default:
			r, _ := list.Release(item.Index)
			marker, label := " ", tuiview.ReleaseLabel(r)
			if r.Current {
				marker, label = "*", bold.Sprint(label)
			}
			date := ""
			if !r.PublishedAt.IsZero() {
				date = r.PublishedAt.UTC().Format(time.DateOnly)
			}
			tbl.AddRow(fmt.Sprintf("%s%3d", marker, item.Index+1), label, date)
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
