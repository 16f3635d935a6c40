// Package repo implements the URL-based pattern-substitution and fetch
// engine for Maven-style HTTP repositories.
//
// The engine owns the mechanical half of artifact resolution: substituting
// coordinates into path patterns, probing the resulting URLs, downloading
// hits, and enumerating directory indexes. Which patterns to try, and when,
// is the resolver's business (see pkg/resolver/ibiblio); the engine simply
// works through the ordered candidates it is given.
//
// Probes and listings are cached through [cache.Cache] with a configurable
// TTL so repeated resolutions do not hammer the remote repository. Downloads
// always go to the network.
//
// A missing artifact is a normal outcome, not an error: lookups return a
// nil resource. Errors are reserved for invalid patterns and for network
// failures that survived the retry policy.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/depstack/resolvekit/pkg/cache"
	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
	"github.com/depstack/resolvekit/pkg/pattern"
)

const httpTimeout = 10 * time.Second

// Resource is a located, fetchable artifact or descriptor.
type Resource struct {
	URL          string    `json:"url"`
	LastModified time.Time `json:"last_modified,omitzero"`
	Size         int64     `json:"size,omitempty"`
}

// Finder is the engine interface consumed by resolvers.
//
// FindUsingPatterns tries each pattern in order and returns the first
// candidate that exists, or nil if none do. The kind parameter
// ([coord.KindArtifact] or [coord.KindDescriptor]) is used for diagnostics
// only. A non-zero asOf acts as a staleness hint: candidates modified after
// asOf are skipped.
//
// Exists probes whether any pattern yields an existing resource.
//
// Download fetches the given artifacts into destDir and reports per-artifact
// outcomes. With useOrigin set, artifacts are located but not copied; the
// report entries carry the origin URL instead of a local path.
//
// ListUnder enumerates the immediate child entries of a repository directory
// URL (from its HTML index).
type Finder interface {
	FindUsingPatterns(ctx context.Context, patterns []string, a coord.Artifact, kind string, asOf time.Time) (*Resource, error)
	Exists(ctx context.Context, patterns []string, a coord.Artifact) (bool, error)
	Download(ctx context.Context, patterns []string, artifacts []coord.Artifact, destDir string, useOrigin bool) (*Report, error)
	ListUnder(ctx context.Context, dirURL string) ([]string, error)
}

// HTTPFinder implements Finder against HTTP repositories.
//
// All methods are safe for concurrent use.
type HTTPFinder struct {
	http   *http.Client
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewHTTPFinder creates a finder that caches probe and listing responses in
// c for ttl. Pass a nil logger to silence diagnostics.
func NewHTTPFinder(c cache.Cache, ttl time.Duration, logger *log.Logger) *HTTPFinder {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HTTPFinder{
		http:   &http.Client{Timeout: httpTimeout},
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// FindUsingPatterns implements Finder.
func (f *HTTPFinder) FindUsingPatterns(ctx context.Context, patterns []string, a coord.Artifact, kind string, asOf time.Time) (*Resource, error) {
	for _, p := range patterns {
		path, err := pattern.Substitute(p, a)
		if err != nil {
			return nil, err
		}

		res, err := f.probe(ctx, path)
		if err != nil {
			return nil, err
		}
		if res == nil {
			f.logger.Debug("no match", "kind", kind, "url", path)
			continue
		}
		if !asOf.IsZero() && res.LastModified.After(asOf) {
			f.logger.Debug("candidate newer than requested date, skipping",
				"kind", kind, "url", path, "modified", res.LastModified, "asof", asOf)
			continue
		}
		f.logger.Debug("found", "kind", kind, "url", res.URL)
		return res, nil
	}
	return nil, nil
}

// Exists implements Finder.
func (f *HTTPFinder) Exists(ctx context.Context, patterns []string, a coord.Artifact) (bool, error) {
	res, err := f.FindUsingPatterns(ctx, patterns, a, coord.KindArtifact, time.Time{})
	if err != nil {
		return false, err
	}
	return res != nil, nil
}

// probeResult is the cached outcome of a HEAD probe. Negative outcomes are
// cached too, so repeated lookups of a missing artifact stay cheap.
type probeResult struct {
	Exists   bool      `json:"exists"`
	Resource *Resource `json:"resource,omitempty"`
}

// probe HEADs url, caching both positive and negative outcomes.
// A 404 yields (nil, nil); transient failures are retried with backoff.
func (f *HTTPFinder) probe(ctx context.Context, url string) (*Resource, error) {
	key := "probe:" + url
	if data, hit, _ := f.cache.Get(ctx, key); hit {
		var cached probeResult
		if err := json.Unmarshal(data, &cached); err == nil {
			if !cached.Exists {
				return nil, nil
			}
			return cached.Resource, nil
		}
	}

	var result probeResult
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build probe request for %s", url)
		}
		resp, err := f.http.Do(req)
		if err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			result = probeResult{Exists: true, Resource: resourceFromResponse(url, resp)}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			result = probeResult{Exists: false}
			return nil
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
		default:
			return errors.New(errors.ErrCodeNetwork, "probe %s: status %d", url, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		_ = f.cache.Set(ctx, key, data, f.ttl)
	}
	if !result.Exists {
		return nil, nil
	}
	return result.Resource, nil
}

func resourceFromResponse(url string, resp *http.Response) *Resource {
	res := &Resource{URL: url}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			res.LastModified = t
		}
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			res.Size = n
		}
	}
	return res
}
