package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/relwin/internal/release"
)

type Service interface {
	ListReleases(ctx context.Context) ([]release.Release, error)
	SetCurrent(ctx context.Context, version string) error
}

type ReloadSuccessMsg struct {
	Releases []release.Release
	Duration time.Duration
	Source   string
}

type ReloadErrorMsg struct {
	Err      error
	Duration time.Duration
	Source   string
}

type SetCurrentSuccessMsg struct {
	Version  string
	Releases []release.Release
	Status   string
}

type SetCurrentErrorMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

func ReloadCmd(service Service, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()

		releases, err := service.ListReleases(ctx)
		if err != nil {
			return ReloadErrorMsg{Err: err, Duration: time.Since(start), Source: source}
		}
		return ReloadSuccessMsg{Releases: releases, Duration: time.Since(start), Source: source}
	}
}

// SetCurrentCmd marks version as the current release and reads the list back
// so the caller can rebuild its window around the new marker.
func SetCurrentCmd(service Service, version string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := service.SetCurrent(ctx, version); err != nil {
			return SetCurrentErrorMsg{Err: err}
		}
		releases, err := service.ListReleases(ctx)
		if err != nil {
			return SetCurrentErrorMsg{Err: err}
		}
		return SetCurrentSuccessMsg{
			Version:  version,
			Releases: releases,
			Status:   fmt.Sprintf("Current release: %s", version),
		}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

type PreferenceSaveErrorMsg struct {
	Err error
}

func PersistPreferencesCmd(save func() error) tea.Cmd {
	if save == nil {
		return nil
	}
	return func() tea.Msg {
		if err := save(); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}
