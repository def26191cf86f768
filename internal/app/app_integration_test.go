package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glabrego/relwin/internal/htmldoc"
	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/storage"
	"github.com/glabrego/relwin/internal/useragent"
	"github.com/glabrego/relwin/internal/window"
)

func newIntegrationService(t *testing.T, name string) *Service {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return NewService(repo)
}

func integrationManifest(t *testing.T, n int) release.Manifest {
	t.Helper()
	var b strings.Builder
	b.WriteString("title: Relwin\nsort: semver\nreleases:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - version: v1.%d.0\n    url: https://example.com/v1.%d.0\n", i, i)
	}
	b.WriteString("downloads:\n")
	b.WriteString("  - platform: windows\n    label: Windows\n    url: https://example.com/relwin.msi\n    primary: true\n")
	b.WriteString("  - platform: macos\n    label: macOS\n    url: https://example.com/relwin.dmg\n")
	m, err := release.ParseManifest(strings.NewReader(b.String()), "integration.yaml")
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	return m
}

func TestIntegration_ImportMarkRenderAndReimport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	svc := newIntegrationService(t, "relwin-integration.db")
	n, err := svc.ImportManifest(ctx, integrationManifest(t, 20))
	if err != nil {
		t.Fatalf("ImportManifest returned error: %v", err)
	}
	if n != 20 {
		t.Fatalf("expected 20 releases imported, got %d", n)
	}

	// semver sort puts the newest release first, so v1.16.0 lands at index 3.
	if err := svc.SetCurrent(ctx, "v1.16.0"); err != nil {
		t.Fatalf("SetCurrent returned error: %v", err)
	}
	releases, err := svc.ListReleases(ctx)
	if err != nil {
		t.Fatalf("ListReleases returned error: %v", err)
	}
	if got := release.CurrentIndex(releases); got != 3 {
		t.Fatalf("expected current release at index 3, got %d", got)
	}

	doc, err := svc.CatalogPage(ctx, "releases", "downloads")
	if err != nil {
		t.Fatalf("CatalogPage returned error: %v", err)
	}
	res, err := RenderPage(doc, RenderOptions{
		ListID:      "releases",
		DownloadsID: "downloads",
		UserAgent:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15",
	})
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if res.Window != (window.Window{Top: 0, Bottom: 9}) {
		t.Fatalf("expected window [0,9], got %+v", res.Window)
	}
	if res.Platform != useragent.MacOS || !res.DownloadSwapped {
		t.Fatalf("expected macOS download to be promoted, got %+v", res)
	}
	if got := doc.PrimaryDownload("downloads"); got != "macos" {
		t.Fatalf("expected macos primary download, got %q", got)
	}

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Count(out.String(), "display:none") != 11 {
		t.Fatalf("expected 10 hidden releases plus the hidden more-top control, got page: %s", out.String())
	}

	mirror := newIntegrationService(t, "relwin-mirror.db")
	n, err = mirror.ImportPage(ctx, bytes.NewReader(out.Bytes()), "releases")
	if err != nil {
		t.Fatalf("ImportPage returned error: %v", err)
	}
	if n != 20 {
		t.Fatalf("expected hidden releases to be imported too, got %d", n)
	}
	mirrored, err := mirror.ListReleases(ctx)
	if err != nil {
		t.Fatalf("ListReleases returned error: %v", err)
	}
	if got := release.CurrentIndex(mirrored); got != 3 {
		t.Fatalf("expected current marker to survive a round trip, got %d", got)
	}
	if mirrored[0].Version != "v1.19.0" || mirrored[0].URL != "https://example.com/v1.19.0" {
		t.Fatalf("unexpected first mirrored release: %+v", mirrored[0])
	}
}

func TestIntegration_ExpandRequestsThroughStoredCatalog(t *testing.T) {
	ctx := context.Background()
	svc := newIntegrationService(t, "relwin-expand.db")
	if _, err := svc.ImportManifest(ctx, integrationManifest(t, 30)); err != nil {
		t.Fatalf("ImportManifest returned error: %v", err)
	}
	if err := svc.SetCurrent(ctx, "v1.15.0"); err != nil {
		t.Fatalf("SetCurrent returned error: %v", err)
	}

	doc, err := svc.CatalogPage(ctx, "releases", "")
	if err != nil {
		t.Fatalf("CatalogPage returned error: %v", err)
	}
	res, err := RenderPage(doc, RenderOptions{
		ListID:   "releases",
		Requests: []window.Request{window.ExpandBottom},
	})
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if res.Window != (window.Window{Top: 10, Bottom: 29}) {
		t.Fatalf("expected window [10,29], got %+v", res.Window)
	}

	list, err := doc.ReleaseList("releases", htmldoc.ControlLinks{})
	if err != nil {
		t.Fatalf("ReleaseList returned error: %v", err)
	}
	top, bottom := list.ControlsHidden()
	if top || !bottom {
		t.Fatalf("expected only more-bottom hidden, got top=%v bottom=%v", top, bottom)
	}
	if got := len(list.VisibleLabels()); got != 20 {
		t.Fatalf("expected 20 visible releases, got %d", got)
	}
}
