package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/glabrego/relwin/internal/release"
)

// Kind tells the importer how to read a fetched document.
type Kind int

const (
	KindPage Kind = iota
	KindManifest
	KindCatalog
)

func (k Kind) String() string {
	switch k {
	case KindManifest:
		return "manifest"
	case KindCatalog:
		return "catalog"
	default:
		return "page"
	}
}

const defaultMaxBytes = 8 << 20

// Source is a fetched release list document.
type Source struct {
	URL         string
	ContentType string
	Body        []byte
}

// Kind classifies the document by media type, falling back to the URL
// extension when the server sends something generic.
func (s Source) Kind() Kind {
	mediaType, _, _ := mime.ParseMediaType(s.ContentType)
	switch mediaType {
	case "application/json":
		return KindCatalog
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return KindManifest
	case "text/html", "application/xhtml+xml":
		return KindPage
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return KindPage
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".yaml", ".yml":
		return KindManifest
	case ".json":
		return KindCatalog
	}
	return KindPage
}

type Client struct {
	userAgent string
	maxBytes  int64
	http      *http.Client
}

func NewClient(userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "relwin"
	}
	return &Client{
		userAgent: userAgent,
		maxBytes:  defaultMaxBytes,
		http:      httpClient,
	}
}

// IsURL reports whether arg names an http or https resource rather than a
// local file.
func IsURL(arg string) bool {
	u, err := url.Parse(strings.TrimSpace(arg))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads a release page, manifest or catalog.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Source, error) {
	if !IsURL(rawURL) {
		return Source{}, fmt.Errorf("unsupported source URL %q", rawURL)
	}
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return Source{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Source{}, fmt.Errorf("fetch %s request failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Source{}, fmt.Errorf("fetch %s failed with status %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return Source{}, fmt.Errorf("read %s response: %w", rawURL, err)
	}
	if int64(len(body)) > c.maxBytes {
		return Source{}, fmt.Errorf("fetch %s: response larger than %d bytes", rawURL, c.maxBytes)
	}
	return Source{
		URL:         rawURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

type catalogResponse struct {
	Title     string             `json:"title"`
	Releases  []release.Release  `json:"releases"`
	Downloads []release.Download `json:"downloads"`
}

// DecodeCatalog reads the JSON served by another relwin instance's
// /api/releases endpoint into a manifest.
func DecodeCatalog(s Source) (release.Manifest, error) {
	var resp catalogResponse
	if err := json.Unmarshal(s.Body, &resp); err != nil {
		return release.Manifest{}, fmt.Errorf("decode catalog response: %w", err)
	}
	m := release.Manifest{
		Title:     resp.Title,
		Releases:  resp.Releases,
		Downloads: resp.Downloads,
	}
	if err := m.Validate(); err != nil {
		return release.Manifest{}, fmt.Errorf("invalid catalog %q: %w", s.URL, err)
	}
	return m, nil
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html, application/yaml;q=0.9, application/json;q=0.8")
	return req, nil
}
