package repo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/depstack/resolvekit/pkg/cache"
	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
)

func testArtifact() coord.Artifact {
	return coord.Artifact{
		ModuleID: coord.ModuleID{Organisation: "org/example", Module: "lib", Revision: "1.0"},
		Name:     "lib",
		Type:     "jar",
		Ext:      "jar",
	}
}

func newTestFinder(t *testing.T, ttl time.Duration) *HTTPFinder {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return NewHTTPFinder(c, ttl, nil)
}

func TestFindUsingPatterns(t *testing.T) {
	const modified = "Wed, 01 Mar 2023 10:00:00 GMT"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/maven2/org/example/lib/1.0/lib-1.0.jar" {
			w.Header().Set("Last-Modified", modified)
			w.Header().Set("Content-Length", "1024")
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFinder(t, time.Hour)
	patterns := []string{
		server.URL + "/maven1/[module]/[type]s/[artifact]-[revision].[ext]",
		server.URL + "/maven2/[organisation]/[module]/[revision]/[artifact]-[revision].[ext]",
	}

	res, err := f.FindUsingPatterns(context.Background(), patterns, testArtifact(), coord.KindArtifact, time.Time{})
	if err != nil {
		t.Fatalf("FindUsingPatterns() error: %v", err)
	}
	if res == nil {
		t.Fatal("FindUsingPatterns() = nil, want resource")
	}
	want := server.URL + "/maven2/org/example/lib/1.0/lib-1.0.jar"
	if res.URL != want {
		t.Errorf("URL = %q, want %q", res.URL, want)
	}
	if res.Size != 1024 {
		t.Errorf("Size = %d, want 1024", res.Size)
	}
	if res.LastModified.IsZero() {
		t.Error("LastModified not parsed")
	}
}

func TestFindUsingPatternsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFinder(t, time.Hour)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	res, err := f.FindUsingPatterns(context.Background(), patterns, testArtifact(), coord.KindArtifact, time.Time{})
	if err != nil {
		t.Fatalf("FindUsingPatterns() error: %v", err)
	}
	if res != nil {
		t.Errorf("FindUsingPatterns() = %v, want nil for missing artifact", res)
	}
}

func TestFindUsingPatternsAsOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Last-Modified", "Wed, 01 Mar 2023 10:00:00 GMT")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newTestFinder(t, time.Hour)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	// Candidate was modified in 2023; asking for the state as of 2020
	// must skip it.
	asOf := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := f.FindUsingPatterns(context.Background(), patterns, testArtifact(), coord.KindArtifact, asOf)
	if err != nil {
		t.Fatalf("FindUsingPatterns() error: %v", err)
	}
	if res != nil {
		t.Errorf("FindUsingPatterns() = %v, want nil for too-new candidate", res)
	}

	// As of now, the candidate qualifies.
	res, err = f.FindUsingPatterns(context.Background(), patterns, testArtifact(), coord.KindArtifact, time.Now())
	if err != nil {
		t.Fatalf("FindUsingPatterns() error: %v", err)
	}
	if res == nil {
		t.Error("FindUsingPatterns() = nil, want resource")
	}
}

func TestFindUsingPatternsInvalidPattern(t *testing.T) {
	f := newTestFinder(t, time.Hour)
	_, err := f.FindUsingPatterns(context.Background(), []string{"http://x/[bogus]"}, testArtifact(), coord.KindArtifact, time.Time{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestProbeCachesNegativeOutcome(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFinder(t, time.Hour)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	for i := 0; i < 3; i++ {
		if _, err := f.FindUsingPatterns(context.Background(), patterns, testArtifact(), coord.KindArtifact, time.Time{}); err != nil {
			t.Fatalf("FindUsingPatterns() error: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (negative probe should be cached)", hits)
	}
}

func TestExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/lib/lib-1.0.jar" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFinder(t, 0)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	ok, err := f.Exists(context.Background(), patterns, testArtifact())
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if !ok {
		t.Error("Exists() = false, want true")
	}

	missing := testArtifact()
	missing.Revision = "9.9"
	ok, err = f.Exists(context.Background(), patterns, missing)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if ok {
		t.Error("Exists() = true for missing artifact")
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lib/lib-1.0.jar" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	f := newTestFinder(t, 0)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	missing := testArtifact()
	missing.Revision = "9.9"
	dest := t.TempDir()

	report, err := f.Download(context.Background(), patterns, []coord.Artifact{testArtifact(), missing}, dest, false)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if report.ID == "" {
		t.Error("report id is empty")
	}
	if len(report.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(report.Entries))
	}

	got := report.Entries[0]
	if got.Status != StatusDownloaded {
		t.Errorf("first entry status = %q, want %q", got.Status, StatusDownloaded)
	}
	if got.Bytes != int64(len("jar bytes")) {
		t.Errorf("first entry bytes = %d, want %d", got.Bytes, len("jar bytes"))
	}

	if report.Entries[1].Status != StatusMissing {
		t.Errorf("second entry status = %q, want %q", report.Entries[1].Status, StatusMissing)
	}
	if report.Failed() {
		t.Error("Failed() = true; missing artifacts are not failures")
	}
}

func TestDownloadUseOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := newTestFinder(t, 0)
	patterns := []string{server.URL + "/[module]/[artifact]-[revision].[ext]"}

	report, err := f.Download(context.Background(), patterns, []coord.Artifact{testArtifact()}, "", true)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	entry := report.Entries[0]
	if entry.Status != StatusOrigin {
		t.Errorf("status = %q, want %q", entry.Status, StatusOrigin)
	}
	if entry.URL == "" {
		t.Error("origin entry has no URL")
	}
	if entry.Path != "" {
		t.Errorf("origin entry has local path %q", entry.Path)
	}
}

func TestListUnder(t *testing.T) {
	const index = `<html><body>
<a href="../">Parent Directory</a>
<a href="1.0/">1.0/</a>
<a href="1.1/">1.1/</a>
<a href="maven-metadata.xml">maven-metadata.xml</a>
<a href="?C=M;O=A">sort</a>
<a href="http://mirror.example.org/">mirror</a>
<a href="/absolute/path/">absolute</a>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(index))
	}))
	defer server.Close()

	f := newTestFinder(t, 0)
	entries, err := f.ListUnder(context.Background(), server.URL+"/org/example/lib")
	if err != nil {
		t.Fatalf("ListUnder() error: %v", err)
	}

	want := []string{"1.0", "1.1", "maven-metadata.xml"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v, want %v", entries, want)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i], w)
		}
	}
}

func TestListUnderMissingDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFinder(t, 0)
	entries, err := f.ListUnder(context.Background(), server.URL+"/nope/")
	if err != nil {
		t.Fatalf("ListUnder() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}
