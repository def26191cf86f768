package release

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func versions(releases []Release) []string {
	out := make([]string, len(releases))
	for i, r := range releases {
		out[i] = r.Version
	}
	return out
}

func TestSortBySemver(t *testing.T) {
	releases := []Release{
		{Version: "v1.2.0"},
		{Version: "nightly"},
		{Version: "1.10.0"},
		{Version: "v1.9.3"},
		{Version: "v2.0.0-rc.1"},
		{Version: ""},
	}
	SortBySemver(releases, true)
	want := []string{"v2.0.0-rc.1", "1.10.0", "v1.9.3", "v1.2.0", "nightly", ""}
	if got := versions(releases); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected descending order: %v", got)
	}

	SortBySemver(releases, false)
	want = []string{"v1.2.0", "v1.9.3", "1.10.0", "v2.0.0-rc.1", "nightly", ""}
	if got := versions(releases); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected ascending order: %v", got)
	}
}

func TestCurrentIndexAndMarkCurrent(t *testing.T) {
	releases := []Release{{Version: "v1.0.0"}, {Version: "v1.1.0", Current: true}, {Version: "v1.2.0"}}
	if got := CurrentIndex(releases); got != 1 {
		t.Fatalf("expected current index 1, got %d", got)
	}

	if !MarkCurrent(releases, "1.2.0") {
		t.Fatal("expected 1.2.0 to match v1.2.0")
	}
	if got := CurrentIndex(releases); got != 2 {
		t.Fatalf("expected current index 2, got %d", got)
	}
	if releases[1].Current {
		t.Fatal("expected previous current flag cleared")
	}

	if MarkCurrent(releases, "v9.9.9") {
		t.Fatal("expected unknown version not to match")
	}
	if got := CurrentIndex(releases); got != -1 {
		t.Fatalf("expected no current release, got %d", got)
	}
}

func TestLabel(t *testing.T) {
	if got := (Release{Title: " Go 1.22 ", Version: "v1.22.0"}).Label(); got != "Go 1.22" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := (Release{Version: "v1.22.0"}).Label(); got != "v1.22.0" {
		t.Fatalf("unexpected version label: %q", got)
	}
	if got := (Release{}).Label(); got != "(untitled)" {
		t.Fatalf("unexpected empty label: %q", got)
	}
}

func TestParseManifest(t *testing.T) {
	const doc = `
title: Releases
sort: semver
releases:
  - version: v1.0.0
    title: First
    url: https://example.com/1.0.0
    published: 2026-01-02
  - version: v1.1.0
    title: Second
    url: https://example.com/1.1.0
    current: true
downloads:
  - platform: windows
    label: Windows installer
    url: https://example.com/setup.exe
    primary: true
  - platform: linux
    label: Linux tarball
    url: https://example.com/relwin.tar.gz
`
	m, err := ParseManifest(strings.NewReader(doc), "test.yaml")
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}
	if m.Title != "Releases" {
		t.Fatalf("unexpected title: %q", m.Title)
	}
	if got := versions(m.Releases); !reflect.DeepEqual(got, []string{"v1.1.0", "v1.0.0"}) {
		t.Fatalf("expected semver-sorted releases, got %v", got)
	}
	if !m.Releases[0].Current {
		t.Fatal("expected current flag to survive sorting")
	}
	if want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC); !m.Releases[1].PublishedAt.Equal(want) {
		t.Fatalf("unexpected published date: %v", m.Releases[1].PublishedAt)
	}
	if len(m.Downloads) != 2 || !m.Downloads[0].Primary {
		t.Fatalf("unexpected downloads: %+v", m.Downloads)
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	cases := map[string]string{
		"two current": `
releases:
  - {version: v1, current: true}
  - {version: v2, current: true}
`,
		"bad sort":      "sort: random\n",
		"empty release": "releases:\n  - url: https://example.com\n",
		"bad platform":  "downloads:\n  - {platform: beos, url: https://example.com}\n",
		"unknown field": "releases: []\nextra: 1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseManifest(strings.NewReader(doc), name); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseManifest_MultipleCurrentIsMatchable(t *testing.T) {
	doc := `
releases:
  - {version: v1, current: true}
  - {version: v2, current: true}
  - {title: ""}
`
	_, err := ParseManifest(strings.NewReader(doc), "two-current.yaml")
	if !errors.Is(err, ErrMultipleCurrent) {
		t.Fatalf("expected ErrMultipleCurrent, got %v", err)
	}
	var verr ValidationError
	if !errors.As(err, &verr) || len(verr) != 2 {
		t.Fatalf("expected both problems reported, got %v", err)
	}
	if !strings.Contains(err.Error(), `invalid manifest "two-current.yaml": releases[2] requires version or title; more than one release is marked current`) {
		t.Fatalf("unexpected message: %v", err)
	}

	m := Manifest{Downloads: []Download{
		{Platform: "linux", URL: "https://example.com/a", Primary: true},
		{Platform: "macos", URL: "https://example.com/b", Primary: true},
	}}
	if err := m.Validate(); !errors.Is(err, ErrMultiplePrimary) {
		t.Fatalf("expected ErrMultiplePrimary, got %v", err)
	}
	if err := (Manifest{Releases: []Release{{Version: "v1"}}}).Validate(); err != nil {
		t.Fatalf("expected valid manifest, got %v", err)
	}
}
