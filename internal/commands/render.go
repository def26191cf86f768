package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/app"
	"github.com/glabrego/relwin/internal/htmldoc"
	"github.com/glabrego/relwin/internal/server"
)

type renderOptions struct {
	listID      string
	downloadsID string
	userAgent   string
	output      string
	expand      []string
}

func addRender(topLevel *cobra.Command, rt *rootState) {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [page.html|-]",
		Short: "Write a page with its release list windowed around the current release",
		Long: `Render windows the release list of an HTML page and promotes the download
matching the user agent. Without an argument the stored catalog is rendered.`,
		Example: `
relwin render site/releases.html > out.html
relwin render --expand top --user-agent "Mozilla/5.0 (X11; Linux x86_64)"
cat releases.html | relwin render - -o releases.windowed.html
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.applyDefaults(rt)
			requests, err := server.ParseExpand(ro.expand)
			if err != nil {
				return err
			}
			opts := app.RenderOptions{
				ListID:      ro.listID,
				DownloadsID: ro.downloadsID,
				UserAgent:   ro.userAgent,
				Requests:    requests,
			}

			// Render fully before touching the output file.
			var page bytes.Buffer
			var res app.RenderResult
			if len(args) == 0 {
				res, err = renderCatalog(cmd.Context(), rt, opts, &page)
			} else {
				res, err = renderFile(args[0], cmd.InOrStdin(), opts, &page)
			}
			if err != nil {
				return err
			}

			if ro.output != "" {
				if err := os.WriteFile(ro.output, page.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			} else if _, err := page.WriteTo(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			rt.logger.Info("page rendered",
				"entries", res.Entries,
				"shown", res.Shown,
				"top", res.Window.Top,
				"bottom", res.Window.Bottom,
				"first", res.FirstShown,
				"last", res.LastShown,
				"more_top", res.MoreTop,
				"more_bottom", res.MoreBottom,
				"has_current", res.HasCurrent,
				"platform", res.Platform.String(),
				"download_swapped", res.DownloadSwapped,
				"primary_download", res.PrimaryDownload,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&ro.listID, "list-id", "", "id of the release list element (default $RELWIN_LIST_ID)")
	cmd.Flags().StringVar(&ro.downloadsID, "downloads-id", "", "id of the downloads block (default $RELWIN_DOWNLOADS_ID)")
	cmd.Flags().StringVar(&ro.userAgent, "user-agent", "", "user agent used to pick the primary download (default $RELWIN_USER_AGENT)")
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringArrayVar(&ro.expand, "expand", nil, "replay a more control, top or bottom; repeatable")

	topLevel.AddCommand(cmd)
}

func (ro *renderOptions) applyDefaults(rt *rootState) {
	if ro.listID == "" {
		ro.listID = rt.cfg.ListID
	}
	if ro.downloadsID == "" {
		ro.downloadsID = rt.cfg.DownloadsID
	}
	if ro.userAgent == "" {
		ro.userAgent = rt.cfg.UserAgent
	}
}

func renderFile(path string, stdin io.Reader, opts app.RenderOptions, out io.Writer) (app.RenderResult, error) {
	if path == "-" {
		return app.RenderFile(stdin, out, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return app.RenderResult{}, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return app.RenderFile(f, out, opts)
}

func renderCatalog(ctx context.Context, rt *rootState, opts app.RenderOptions, out io.Writer) (app.RenderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	repo, svc, err := openCatalog(ctx, rt.cfg)
	if err != nil {
		return app.RenderResult{}, err
	}
	defer repo.Close()

	doc, err := svc.CatalogPage(ctx, opts.ListID, opts.DownloadsID)
	if err != nil {
		return app.RenderResult{}, err
	}
	return writePage(doc, opts, out)
}

func writePage(doc *htmldoc.Document, opts app.RenderOptions, out io.Writer) (app.RenderResult, error) {
	res, err := app.RenderPage(doc, opts)
	if err != nil {
		return app.RenderResult{}, err
	}
	if err := doc.Render(out); err != nil {
		return app.RenderResult{}, err
	}
	return res, nil
}
