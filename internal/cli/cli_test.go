package cli

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/depstack/resolvekit/pkg/cache"
	"github.com/depstack/resolvekit/pkg/coord"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"locate", "exists", "resolve", "download", "list", "cache", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestArtifactArg(t *testing.T) {
	tests := []struct {
		name       string
		coordinate string
		artifact   string
		typ        string
		ext        string
		want       coord.Artifact
		wantErr    bool
	}{
		{
			name:       "defaults from module and type",
			coordinate: "org.example/lib@1.0",
			typ:        "jar",
			want: coord.Artifact{
				ModuleID: coord.ModuleID{Organisation: "org.example", Module: "lib", Revision: "1.0"},
				Name:     "lib", Type: "jar", Ext: "jar",
			},
		},
		{
			name:       "explicit name and ext",
			coordinate: "org.example/lib@1.0",
			artifact:   "lib-sources",
			typ:        "source",
			ext:        "jar",
			want: coord.Artifact{
				ModuleID: coord.ModuleID{Organisation: "org.example", Module: "lib", Revision: "1.0"},
				Name:     "lib-sources", Type: "source", Ext: "jar",
			},
		},
		{
			name:       "bad coordinate",
			coordinate: "not-a-coordinate",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := artifactArg(tt.coordinate, tt.artifact, tt.typ, tt.ext)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("artifactArg() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("artifactArg() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("artifactArg() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewResolverUnknownType(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.resolverType = "bogus"
	c.noCache = true

	root := c.RootCommand()
	if _, err := c.newResolver(root); err == nil {
		t.Error("newResolver() with unknown type should fail")
	}
}

func TestCacheClearCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = store.Set(ctx, "probe:http://repo/lib-1.0.jar", []byte("hit"), time.Hour)
	_ = store.Set(ctx, "list:http://repo/org/example/", []byte(`["lib"]`), time.Hour)
	store.Close()

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries after clear", len(entries))
	}
}
