package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/depstack/resolvekit/pkg/cache"
	"github.com/depstack/resolvekit/pkg/errors"
)

// hrefPattern matches anchor targets in repository directory indexes.
// Directory index pages differ between servers (Apache, nginx, Nexus), but
// all of them link child entries with plain relative hrefs.
var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

// ListUnder implements Finder. It fetches the HTML index at dirURL and
// returns the immediate child entry names, with directory entries stripped
// of their trailing slash. Links that escape the directory (absolute URLs,
// parent links, query strings) are ignored.
func (f *HTTPFinder) ListUnder(ctx context.Context, dirURL string) ([]string, error) {
	if !strings.HasSuffix(dirURL, "/") {
		dirURL += "/"
	}

	key := "list:" + dirURL
	if data, hit, _ := f.cache.Get(ctx, key); hit {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	var body string
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, dirURL, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build listing request for %s", dirURL)
		}
		resp, err := f.http.Do(req)
		if err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
			}
			body = string(data)
			return nil
		case resp.StatusCode == http.StatusNotFound:
			body = ""
			return nil
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
		default:
			return errors.New(errors.ErrCodeNetwork, "list %s: status %d", dirURL, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}

	entries := parseIndexEntries(body)
	if data, err := json.Marshal(entries); err == nil {
		_ = f.cache.Set(ctx, key, data, f.ttl)
	}
	return entries, nil
}

func parseIndexEntries(body string) []string {
	var entries []string
	seen := make(map[string]bool)

	for _, m := range hrefPattern.FindAllStringSubmatch(body, -1) {
		href := m[1]
		if !isChildEntry(href) {
			continue
		}
		name := strings.TrimSuffix(href, "/")
		if !seen[name] {
			seen[name] = true
			entries = append(entries, name)
		}
	}
	return entries
}

// isChildEntry reports whether href points at an immediate child of the
// listed directory.
func isChildEntry(href string) bool {
	switch {
	case href == "", href == "/":
		return false
	case strings.Contains(href, "://"): // absolute URL (sort links, vhosts)
		return false
	case strings.HasPrefix(href, "/"): // site-absolute path
		return false
	case strings.HasPrefix(href, "?"), strings.HasPrefix(href, "#"):
		return false
	case strings.Contains(href, ".."): // parent link
		return false
	}
	// Child directories end with a single slash; anything with an interior
	// slash is deeper than one level.
	trimmed := strings.TrimSuffix(href, "/")
	return !strings.Contains(trimmed, "/")
}
