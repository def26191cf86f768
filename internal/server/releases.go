package server

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/glabrego/relwin/internal/app"
	"github.com/glabrego/relwin/internal/htmldoc"
	"github.com/glabrego/relwin/internal/window"
)

const expandParam = "expand"

// releasesPageHandler renders the catalog page. Every "more" click arrives as
// a new request whose expand parameters replay the earlier clicks in order.
func (s *Server) releasesPageHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	requests, err := ParseExpand(query[expandParam])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := s.svc.CatalogPage(r.Context(), s.opts.ListID, s.opts.DownloadsID)
	if err != nil {
		s.logger.Error("build release page", "error", err)
		http.Error(w, "could not load releases", http.StatusInternalServerError)
		return
	}

	res, err := app.RenderPage(doc, app.RenderOptions{
		ListID:      s.opts.ListID,
		DownloadsID: s.opts.DownloadsID,
		UserAgent:   r.UserAgent(),
		Links:       controlLinks(r.URL.Path, query),
		Requests:    requests,
	})
	if err != nil {
		s.logger.Error("render release page", "error", err)
		http.Error(w, "could not render releases", http.StatusInternalServerError)
		return
	}
	s.logger.Debug("release page rendered",
		"entries", res.Entries,
		"top", res.Window.Top,
		"bottom", res.Window.Bottom,
		"platform", res.Platform.String(),
		"download_swapped", res.DownloadSwapped,
	)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		s.logger.Error("write release page", "error", err)
		http.Error(w, "could not render releases", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) catalogHandler(w http.ResponseWriter, r *http.Request) {
	cat, err := s.svc.Catalog(r.Context())
	if err != nil {
		s.logger.Error("load catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load releases"})
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

type badExpandError struct{ value string }

func (e badExpandError) Error() string {
	return "expand must be top or bottom: " + e.value
}

// ParseExpand maps expand values ("top" or "bottom") to control requests.
func ParseExpand(values []string) ([]window.Request, error) {
	out := make([]window.Request, 0, len(values))
	for _, v := range values {
		switch v {
		case "top":
			out = append(out, window.ExpandTop)
		case "bottom":
			out = append(out, window.ExpandBottom)
		default:
			return nil, badExpandError{value: v}
		}
	}
	return out, nil
}

func controlLinks(path string, query url.Values) htmldoc.ControlLinks {
	link := func(direction string) string {
		q := url.Values{}
		for k, vs := range query {
			q[k] = append([]string(nil), vs...)
		}
		q.Add(expandParam, direction)
		return path + "?" + q.Encode()
	}
	return htmldoc.ControlLinks{Top: link("top"), Bottom: link("bottom")}
}
