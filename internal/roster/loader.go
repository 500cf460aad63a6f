package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a roster document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor guesses a document format from a file name or URL path
func FormatFor(location string) Format {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a roster document
func Decode(r io.Reader, format Format) (*RawLeague, error) {
	var league RawLeague
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&league); err != nil {
			return nil, fmt.Errorf("decoding yaml roster: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&league); err != nil {
			return nil, fmt.Errorf("decoding json roster: %w", err)
		}
	}
	return &league, nil
}

// Load reads a roster document from an http(s) URL or a local file path
func Load(location string) (*RawLeague, error) {
	var body io.ReadCloser
	if u, err := url.ParseRequestURI(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("fetching roster: %w", err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("fetching roster: unexpected status %s", resp.Status)
		}
		body = resp.Body
	} else {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening roster: %w", err)
		}
		body = f
	}
	defer body.Close()

	return Decode(body, FormatFor(location))
}
