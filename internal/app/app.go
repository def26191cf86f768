package app

import (
	"context"
	"fmt"
	"io"

	"github.com/glabrego/relwin/internal/htmldoc"
	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/useragent"
	"github.com/glabrego/relwin/internal/window"
)

type Repository interface {
	ReplaceReleases(ctx context.Context, releases []release.Release) error
	ListReleases(ctx context.Context) ([]release.Release, error)
	SetCurrent(ctx context.Context, version string) error
	ReplaceDownloads(ctx context.Context, downloads []release.Download) error
	ListDownloads(ctx context.Context) ([]release.Download, error)
	SetTitle(ctx context.Context, title string) error
	Title(ctx context.Context) (string, error)
}

// Catalog is everything stored about the release list.
type Catalog struct {
	Title     string             `json:"title"`
	Releases  []release.Release  `json:"releases"`
	Downloads []release.Download `json:"downloads,omitempty"`
}

// RenderOptions controls how a page is windowed before it is written out.
type RenderOptions struct {
	ListID      string
	DownloadsID string
	UserAgent   string
	Links       htmldoc.ControlLinks
	Requests    []window.Request
}

// RenderResult summarizes what RenderPage did to the page.
type RenderResult struct {
	Window     window.Window
	Entries    int
	Shown      int
	HasCurrent bool
	// FirstShown and LastShown are the labels at the edges of the window as
	// written into the page.
	FirstShown string
	LastShown  string
	MoreTop    bool
	MoreBottom bool

	Platform        useragent.Platform
	DownloadSwapped bool
	PrimaryDownload string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ImportManifest(ctx context.Context, m release.Manifest) (int, error) {
	if err := s.repo.ReplaceReleases(ctx, m.Releases); err != nil {
		return 0, fmt.Errorf("save releases to catalog: %w", err)
	}
	if err := s.repo.ReplaceDownloads(ctx, m.Downloads); err != nil {
		return 0, fmt.Errorf("save downloads to catalog: %w", err)
	}
	if m.Title != "" {
		if err := s.repo.SetTitle(ctx, m.Title); err != nil {
			return 0, fmt.Errorf("save catalog title: %w", err)
		}
	}
	return len(m.Releases), nil
}

// ImportPage reads the release list out of an existing HTML page.
func (s *Service) ImportPage(ctx context.Context, r io.Reader, listID string) (int, error) {
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return 0, err
	}
	list, err := doc.ReleaseList(listID, htmldoc.ControlLinks{})
	if err != nil {
		return 0, fmt.Errorf("locate release list: %w", err)
	}
	releases := list.Releases()
	if err := s.repo.ReplaceReleases(ctx, releases); err != nil {
		return 0, fmt.Errorf("save releases to catalog: %w", err)
	}
	return len(releases), nil
}

func (s *Service) ListReleases(ctx context.Context) ([]release.Release, error) {
	releases, err := s.repo.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load releases from catalog: %w", err)
	}
	return releases, nil
}

// SetCurrent marks the release with the given version current. Versions are
// compared as semver when both parse, so "1.2.0" selects a release stored as
// "v1.2.0".
func (s *Service) SetCurrent(ctx context.Context, version string) error {
	releases, err := s.ListReleases(ctx)
	if err != nil {
		return err
	}
	releases = append([]release.Release(nil), releases...)
	if release.MarkCurrent(releases, version) {
		version = releases[release.CurrentIndex(releases)].Version
	}
	if err := s.repo.SetCurrent(ctx, version); err != nil {
		return fmt.Errorf("mark current release: %w", err)
	}
	return nil
}

func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	releases, err := s.ListReleases(ctx)
	if err != nil {
		return Catalog{}, err
	}
	downloads, err := s.repo.ListDownloads(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load downloads from catalog: %w", err)
	}
	title, err := s.repo.Title(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load catalog title: %w", err)
	}
	return Catalog{Title: title, Releases: releases, Downloads: downloads}, nil
}

// CatalogPage builds a host page from the stored catalog.
func (s *Service) CatalogPage(ctx context.Context, listID, downloadsID string) (*htmldoc.Document, error) {
	cat, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	title := cat.Title
	if title == "" {
		title = "Releases"
	}
	return htmldoc.BuildPage(htmldoc.PageOptions{
		Title:       title,
		ListID:      listID,
		DownloadsID: downloadsID,
		Releases:    cat.Releases,
		Downloads:   cat.Downloads,
	}), nil
}

// RenderPage windows the release list of doc, replays control requests and
// promotes the download matching the user agent.
func RenderPage(doc *htmldoc.Document, opts RenderOptions) (RenderResult, error) {
	ctrl, list, err := doc.Attach(opts.ListID, opts.Links, opts.Requests...)
	if err != nil {
		return RenderResult{}, err
	}
	res := RenderResult{
		Window:     ctrl.Window(),
		Entries:    ctrl.Len(),
		Shown:      ctrl.Window().Size(),
		HasCurrent: ctrl.HasCurrent(),
		Platform:   useragent.Detect(opts.UserAgent),
	}
	if labels := list.VisibleLabels(); len(labels) > 0 {
		res.FirstShown, res.LastShown = labels[0], labels[len(labels)-1]
	}
	topHidden, bottomHidden := list.ControlsHidden()
	res.MoreTop, res.MoreBottom = !topHidden, !bottomHidden

	if opts.DownloadsID != "" && doc.ElementByID(opts.DownloadsID) != nil {
		res.DownloadSwapped, err = doc.SwapDownloads(opts.DownloadsID, res.Platform)
		if err != nil {
			return RenderResult{}, fmt.Errorf("swap downloads: %w", err)
		}
		res.PrimaryDownload = doc.PrimaryDownload(opts.DownloadsID)
	}
	return res, nil
}

// RenderFile parses an HTML page from r, renders it and writes it to w.
func RenderFile(r io.Reader, w io.Writer, opts RenderOptions) (RenderResult, error) {
	doc, err := htmldoc.Parse(r)
	if err != nil {
		return RenderResult{}, err
	}
	res, err := RenderPage(doc, opts)
	if err != nil {
		return RenderResult{}, err
	}
	if err := doc.Render(w); err != nil {
		return RenderResult{}, err
	}
	return res, nil
}
