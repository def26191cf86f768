package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glabrego/relwin/internal/release"
)

func TestFetch_SendsUserAgentAndReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases.html" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "relwin-test" {
			t.Fatalf("unexpected user agent: %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<ul id="releases"><li>v1</li></ul>`))
	}))
	defer ts.Close()

	c := NewClient("relwin-test", ts.Client())
	src, err := c.Fetch(context.Background(), ts.URL+"/releases.html")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(string(src.Body), `id="releases"`) {
		t.Fatalf("unexpected body: %q", src.Body)
	}
	if src.Kind() != KindPage {
		t.Fatalf("expected page kind, got %s", src.Kind())
	}
}

func TestFetch_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := NewClient("", ts.Client())
	_, err := c.Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected status error")
	}
	if !strings.Contains(err.Error(), "status 503") || !strings.Contains(err.Error(), "gone fishing") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_AcceptsAny2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte("<ul id=\"releases\"></ul>"))
	}))
	defer ts.Close()

	src, err := NewClient("", ts.Client()).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch returned error for 203: %v", err)
	}
	if !strings.Contains(string(src.Body), "releases") || src.Kind() != KindPage {
		t.Fatalf("unexpected source: %+v", src)
	}
}

func TestFetch_RejectsOversizedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer ts.Close()

	c := NewClient("", ts.Client())
	c.maxBytes = 16
	if _, err := c.Fetch(context.Background(), ts.URL); err == nil || !strings.Contains(err.Error(), "larger than 16 bytes") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestFetch_RejectsNonHTTP(t *testing.T) {
	c := NewClient("", nil)
	if _, err := c.Fetch(context.Background(), "file:///etc/passwd"); err == nil {
		t.Fatal("expected unsupported URL error")
	}
}

func TestIsURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/releases": true,
		"http://localhost:8080/":       true,
		"releases.yaml":                false,
		"/tmp/releases.html":           false,
		"ftp://example.com/x":          false,
		"https://":                     false,
	}
	for in, want := range cases {
		if got := IsURL(in); got != want {
			t.Fatalf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSourceKind(t *testing.T) {
	cases := []struct {
		src  Source
		want Kind
	}{
		{src: Source{URL: "https://x/api/releases", ContentType: "application/json"}, want: KindCatalog},
		{src: Source{URL: "https://x/r", ContentType: "application/yaml"}, want: KindManifest},
		{src: Source{URL: "https://x/r.yml", ContentType: "text/plain"}, want: KindManifest},
		{src: Source{URL: "https://x/r.json", ContentType: "application/octet-stream"}, want: KindCatalog},
		{src: Source{URL: "https://x/r.yaml", ContentType: "text/html"}, want: KindPage},
		{src: Source{URL: "https://x/r"}, want: KindPage},
	}
	for _, tc := range cases {
		if got := tc.src.Kind(); got != tc.want {
			t.Fatalf("Kind(%+v) = %s, want %s", tc.src, got, tc.want)
		}
	}
}

func TestDecodeCatalog(t *testing.T) {
	src := Source{
		URL: "https://x/api/releases",
		Body: []byte(`{"title":"Relwin","releases":[
			{"version":"v1.0.0","title":"One","url":"https://x/1"},
			{"version":"v1.1.0","title":"Two","current":true}
		],"downloads":[{"platform":"linux","label":"Linux","url":"https://x/linux","primary":true}]}`),
	}
	m, err := DecodeCatalog(src)
	if err != nil {
		t.Fatalf("DecodeCatalog returned error: %v", err)
	}
	if m.Title != "Relwin" || len(m.Releases) != 2 || !m.Releases[1].Current {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if len(m.Downloads) != 1 || m.Downloads[0].Platform != "linux" {
		t.Fatalf("unexpected downloads: %+v", m.Downloads)
	}

	bad := Source{URL: "https://x/api/releases", Body: []byte(`{"releases":[{"version":"a","current":true},{"version":"b","current":true}]}`)}
	if _, err := DecodeCatalog(bad); !errors.Is(err, release.ErrMultipleCurrent) {
		t.Fatalf("expected ErrMultipleCurrent for two current releases, got %v", err)
	}
	if _, err := DecodeCatalog(Source{Body: []byte(`{`)}); err == nil {
		t.Fatal("expected decode error")
	}
}
