package release

import (
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	ErrMultipleCurrent = errors.New("more than one release is marked current")
	ErrMultiplePrimary = errors.New("more than one download is marked primary")
)

// Release is one row of a release list. Current marks the release the page
// describes; it is rendered as plain text instead of a link.
type Release struct {
	Version     string    `json:"version" yaml:"version"`
	Title       string    `json:"title" yaml:"title"`
	URL         string    `json:"url" yaml:"url"`
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published,omitempty"`
	Current     bool      `json:"current,omitempty" yaml:"current,omitempty"`
}

// Label is the text shown for the release.
func (r Release) Label() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	if v := strings.TrimSpace(r.Version); v != "" {
		return v
	}
	return "(untitled)"
}

// Download is a per-platform download link.
type Download struct {
	Platform string `json:"platform" yaml:"platform"`
	Label    string `json:"label" yaml:"label"`
	URL      string `json:"url" yaml:"url"`
	Primary  bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
}

// CurrentIndex returns the index of the last release marked current, or -1.
func CurrentIndex(releases []Release) int {
	idx := -1
	for i, r := range releases {
		if r.Current {
			idx = i
		}
	}
	return idx
}

// MarkCurrent flags the release with the given version as current and clears
// the flag everywhere else. It reports whether the version was found.
func MarkCurrent(releases []Release, version string) bool {
	want, wantOK := normalizeSemver(version)
	found := false
	for i := range releases {
		match := releases[i].Version == version
		if !match && wantOK {
			if got, ok := normalizeSemver(releases[i].Version); ok {
				match = semver.Compare(got, want) == 0
			}
		}
		releases[i].Current = match && !found
		if match {
			found = true
		}
	}
	return found
}

// SortBySemver orders releases by semantic version. Releases without a valid
// version keep their relative order after the versioned ones.
func SortBySemver(releases []Release, descending bool) {
	sort.SliceStable(releases, func(i, j int) bool {
		vi, okI := normalizeSemver(releases[i].Version)
		vj, okJ := normalizeSemver(releases[j].Version)
		switch {
		case okI && !okJ:
			return true
		case !okI:
			return false
		}
		cmp := semver.Compare(vi, vj)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func normalizeSemver(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}
