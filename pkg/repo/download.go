package repo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
)

// Download outcome statuses.
const (
	StatusDownloaded = "downloaded" // fetched to a local file
	StatusOrigin     = "origin"     // located; left at origin (useOrigin)
	StatusMissing    = "missing"    // no pattern produced an existing URL
	StatusFailed     = "failed"     // located but the transfer failed
)

// Report summarizes a Download call.
type Report struct {
	ID      string          `json:"id"`
	Dest    string          `json:"dest,omitempty"`
	Entries []DownloadEntry `json:"entries"`
	Elapsed time.Duration   `json:"elapsed"`
}

// DownloadEntry records the outcome for one artifact.
type DownloadEntry struct {
	Artifact coord.Artifact `json:"artifact"`
	Status   string         `json:"status"`
	URL      string         `json:"url,omitempty"`
	Path     string         `json:"path,omitempty"`
	Bytes    int64          `json:"bytes,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Failed reports whether any entry failed. Missing artifacts are a normal
// negative outcome and do not count as failures.
func (r *Report) Failed() bool {
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Download implements Finder.
func (f *HTTPFinder) Download(ctx context.Context, patterns []string, artifacts []coord.Artifact, destDir string, useOrigin bool) (*Report, error) {
	if !useOrigin {
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create download dir %s", destDir)
		}
	}

	start := time.Now()
	report := &Report{ID: uuid.NewString(), Dest: destDir}

	for _, a := range artifacts {
		entry := DownloadEntry{Artifact: a}

		res, err := f.FindUsingPatterns(ctx, patterns, a, coord.KindArtifact, time.Time{})
		switch {
		case err != nil:
			entry.Status = StatusFailed
			entry.Error = err.Error()
		case res == nil:
			entry.Status = StatusMissing
		case useOrigin:
			entry.Status = StatusOrigin
			entry.URL = res.URL
		default:
			entry.URL = res.URL
			entry.Path = filepath.Join(destDir, downloadFilename(a))
			n, err := f.fetchTo(ctx, res.URL, entry.Path)
			if err != nil {
				entry.Status = StatusFailed
				entry.Error = err.Error()
			} else {
				entry.Status = StatusDownloaded
				entry.Bytes = n
			}
		}

		f.logger.Debug("download", "artifact", a.String(), "status", entry.Status)
		report.Entries = append(report.Entries, entry)
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// fetchTo GETs url into path, creating the file fresh each time.
func (f *HTTPFinder) fetchTo(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

// downloadFilename renders the conventional local name for an artifact.
func downloadFilename(a coord.Artifact) string {
	return fmt.Sprintf("%s-%s.%s", a.Name, a.Revision, a.Ext)
}
