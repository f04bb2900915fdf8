package cli

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// isURL reports whether source should be fetched over HTTP.
func isURL(source string) bool {
	if source == "-" {
		return false
	}
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// openSource resolves a source argument into a reader. Source can be a
// local path, an http(s) URL, or "-" for stdin. The returned cleanup
// must be called when reading is done.
func openSource(source string) (io.Reader, func(), error) {
	if source == "-" {
		return os.Stdin, func() {}, nil
	}

	if isURL(source) {
		resp, err := http.Get(source)
		if err != nil {
			return nil, nil, fmt.Errorf("fetching URL: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetching URL: unexpected status %s", resp.Status)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
