package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	tuitheme "github.com/glabrego/relwin/internal/tui/theme"

	"github.com/glabrego/relwin/internal/release"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ReleaseLineParams struct {
	Release      release.Release
	Now          time.Time
	RelativeTime bool
	ShowNumbers  bool
	Index        int
	Active       bool
	Width        int
}

func RenderReleaseLine(p ReleaseLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	currentMarker := " "
	if p.Release.Current {
		currentMarker = "*"
	}

	prefix := fmt.Sprintf("  %s%s ", cursorMarker, currentMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%s%3d. ", cursorMarker, currentMarker, p.Index+1)
	}

	dateLabel := ""
	if !p.Release.PublishedAt.IsZero() {
		date := p.Release.PublishedAt.UTC().Format(time.DateOnly)
		if p.RelativeTime {
			date = RelativeTimeLabel(p.Now, p.Release.PublishedAt)
		}
		dateLabel = "[" + date + "]"
	}

	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel)
	if available < 1 {
		available = 1
	}
	label := truncateRunes(ReleaseLabel(p.Release), available)
	styledTitle := th.StyleReleaseTitle(p.Release, label)
	if dateLabel == "" {
		return th.RenderActiveLine(p.Active, prefix+styledTitle)
	}
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+th.MetaValue.Render(dateLabel))
}

// ReleaseLabel joins the version and title when they differ.
func ReleaseLabel(r release.Release) string {
	title := strings.TrimSpace(r.Title)
	version := strings.TrimSpace(r.Version)
	switch {
	case title == "" && version == "":
		return "(untitled)"
	case title == "" || title == version:
		return version
	case version == "" || strings.Contains(title, version):
		return title
	default:
		return version + " | " + title
	}
}

// RenderMoreLine draws a "more" control with the number of releases it would
// reveal.
func RenderMoreLine(kind ItemKind, hidden int, active bool, th tuitheme.Theme) string {
	cursorMarker := " "
	if active {
		cursorMarker = ">"
	}
	arrow := "▲"
	if kind == ItemMoreBottom {
		arrow = "▼"
	}
	left := fmt.Sprintf("  %s  %s more", cursorMarker, arrow)
	note := th.HiddenNote.Render(fmt.Sprintf("(%d hidden)", hidden))
	return th.RenderActiveLine(active, th.Control.Render(left)+" "+note)
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
