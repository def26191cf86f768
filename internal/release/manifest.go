package release

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glabrego/relwin/internal/useragent"
)

// Manifest is the YAML release catalog accepted by `relwin import`.
type Manifest struct {
	Title     string     `yaml:"title"`
	Sort      string     `yaml:"sort,omitempty"`
	Releases  []Release  `yaml:"releases"`
	Downloads []Download `yaml:"downloads,omitempty"`
}

const (
	SortNone         = ""
	SortSemver       = "semver"
	SortSemverAscend = "semver-asc"
)

func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %q: %w", path, err)
	}
	return ParseManifest(bytes.NewReader(data), path)
}

func ParseManifest(r io.Reader, source string) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return Manifest{}, fmt.Errorf("parse YAML in %q: %w", source, err)
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest %q: %w", source, err)
	}

	switch m.Sort {
	case SortSemver:
		SortBySemver(m.Releases, true)
	case SortSemverAscend:
		SortBySemver(m.Releases, false)
	}
	return m, nil
}

// ValidationError lists every problem found in a manifest. errors.Is and
// errors.As see each of them.
type ValidationError []error

func (e ValidationError) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationError) Unwrap() []error { return e }

// Validate returns a ValidationError, or nil when the manifest is usable.
func (m Manifest) Validate() error {
	var errs ValidationError
	switch m.Sort {
	case SortNone, SortSemver, SortSemverAscend:
	default:
		errs = append(errs, fmt.Errorf("sort must be %q or %q: %s", SortSemver, SortSemverAscend, m.Sort))
	}

	current := 0
	for i, r := range m.Releases {
		if strings.TrimSpace(r.Version) == "" && strings.TrimSpace(r.Title) == "" {
			errs = append(errs, fmt.Errorf("releases[%d] requires version or title", i))
		}
		if r.Current {
			current++
		}
	}
	if current > 1 {
		errs = append(errs, ErrMultipleCurrent)
	}

	primary := 0
	for i, d := range m.Downloads {
		if _, ok := useragent.ParsePlatform(d.Platform); !ok {
			errs = append(errs, fmt.Errorf("downloads[%d] unknown platform %q", i, d.Platform))
		}
		if strings.TrimSpace(d.URL) == "" {
			errs = append(errs, fmt.Errorf("downloads[%d] requires url", i))
		}
		if d.Primary {
			primary++
		}
	}
	if primary > 1 {
		errs = append(errs, ErrMultiplePrimary)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
