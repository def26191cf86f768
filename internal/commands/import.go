package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glabrego/relwin/internal/app"
	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/remote"
)

func addImport(topLevel *cobra.Command, rt *rootState) {
	var listID string
	cmd := &cobra.Command{
		Use:   "import <manifest.yaml|page.html|url>",
		Short: "Replace the stored catalog with a manifest, an HTML page or a remote source",
		Example: `
relwin import releases.yaml
relwin import site/releases.html --list-id changelog
relwin import https://example.com/api/releases
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			repo, svc, err := openCatalog(ctx, rt.cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			if listID == "" {
				listID = rt.cfg.ListID
			}
			n, kind, err := importSource(ctx, svc, args[0], listID, rt.cfg.UserAgent)
			if err != nil {
				return err
			}
			rt.logger.Info("catalog imported", "source", args[0], "kind", kind, "releases", n)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d releases from %s\n", n, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&listID, "list-id", "", "id of the release list element when importing HTML (default $RELWIN_LIST_ID)")

	topLevel.AddCommand(cmd)
}

func importSource(ctx context.Context, svc *app.Service, source, listID, userAgent string) (int, remote.Kind, error) {
	if remote.IsURL(source) {
		src, err := remote.NewClient(userAgent, nil).Fetch(ctx, source)
		if err != nil {
			return 0, remote.KindPage, err
		}
		kind := src.Kind()
		switch kind {
		case remote.KindManifest:
			m, err := release.ParseManifest(bytes.NewReader(src.Body), source)
			if err != nil {
				return 0, kind, err
			}
			n, err := svc.ImportManifest(ctx, m)
			return n, kind, err
		case remote.KindCatalog:
			m, err := remote.DecodeCatalog(src)
			if err != nil {
				return 0, kind, err
			}
			n, err := svc.ImportManifest(ctx, m)
			return n, kind, err
		default:
			n, err := svc.ImportPage(ctx, bytes.NewReader(src.Body), listID)
			return n, kind, err
		}
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		m, err := release.LoadManifest(source)
		if err != nil {
			return 0, remote.KindManifest, err
		}
		n, err := svc.ImportManifest(ctx, m)
		return n, remote.KindManifest, err
	default:
		f, err := os.Open(source)
		if err != nil {
			return 0, remote.KindPage, fmt.Errorf("open page: %w", err)
		}
		defer f.Close()
		n, err := svc.ImportPage(ctx, f, listID)
		return n, remote.KindPage, err
	}
}
