// Package settings implements the shared variable store that resolvers
// pull their default configuration from.
//
// Resolvers are configured lazily: a resolver that was never given an
// explicit root or pattern asks the store for well-known variables on first
// use, triggering a one-time load of the repository defaults. The store is
// deliberately forgiving — asking for an unknown variable is a miss, not an
// error — so resolvers can degrade to "not found" lookups instead of
// failing hard when configuration is incomplete.
package settings

import (
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// Well-known variable names consumed by the ibiblio resolver.
const (
	VarDefaultRoot    = "ibiblio.default.artifact.root"
	VarDefaultPattern = "ibiblio.default.artifact.pattern"
)

// Built-in repository defaults, applied by LoadDefaultRepositoryConfig when
// no defaults file overrides them.
var builtinDefaults = map[string]string{
	VarDefaultRoot:    "http://www.ibiblio.org/maven/",
	VarDefaultPattern: "[module]/[type]s/[artifact]-[revision].[ext]",
}

// Store is the variable store interface consumed by resolvers.
//
// Variable returns the value of a named variable and whether it is set.
// LoadDefaultRepositoryConfig loads the default repository configuration
// into the store; forPublish selects the variant that also includes
// publish-side repositories. The call is side-effecting but idempotent:
// repeated calls (for the same variant) are no-ops.
type Store interface {
	Variable(name string) (string, bool)
	LoadDefaultRepositoryConfig(forPublish bool) error
}

// Settings is the standard Store implementation: an in-memory variable map
// with optional TOML-file defaults.
//
// All methods are safe for concurrent use.
type Settings struct {
	mu   sync.Mutex
	vars map[string]string

	defaultsPath string
	loadResolve  sync.Once
	loadPublish  sync.Once
	loadErr      error
}

// New creates an empty Settings store.
func New() *Settings {
	return &Settings{vars: make(map[string]string)}
}

// NewWithDefaultsFile creates a Settings store that reads repository
// defaults from the TOML file at path when LoadDefaultRepositoryConfig is
// first called. The file is not touched before then.
func NewWithDefaultsFile(path string) *Settings {
	s := New()
	s.defaultsPath = path
	return s
}

// Variable returns the value of a named variable.
func (s *Settings) Variable(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vars[name]
	return v, ok
}

// SetVariable sets a variable explicitly. Explicit values win over defaults
// loaded later: LoadDefaultRepositoryConfig never overwrites a variable
// that is already set.
func (s *Settings) SetVariable(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
}

// defaultsFile is the on-disk shape of a repository defaults file.
//
//	[resolve]
//	"ibiblio.default.artifact.root" = "https://repo1.maven.org/maven2/"
//
//	[publish]
//	...
type defaultsFile struct {
	Resolve map[string]string `toml:"resolve"`
	Publish map[string]string `toml:"publish"`
}

// LoadDefaultRepositoryConfig loads the repository default variables.
// Built-in defaults are applied first, then entries from the defaults file
// (if one was configured). Variables already set explicitly are left
// untouched. The load runs at most once per variant; later calls return
// the first call's error, if any.
func (s *Settings) LoadDefaultRepositoryConfig(forPublish bool) error {
	once := &s.loadResolve
	if forPublish {
		once = &s.loadPublish
	}
	once.Do(func() {
		s.loadErr = s.load(forPublish)
	})
	return s.loadErr
}

func (s *Settings) load(forPublish bool) error {
	merged := make(map[string]string, len(builtinDefaults))
	for k, v := range builtinDefaults {
		merged[k] = v
	}

	if s.defaultsPath != "" {
		data, err := os.ReadFile(s.defaultsPath)
		if err != nil {
			return err
		}
		var file defaultsFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return err
		}
		for k, v := range file.Resolve {
			merged[k] = v
		}
		if forPublish {
			for k, v := range file.Publish {
				merged[k] = v
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range merged {
		if _, exists := s.vars[k]; !exists {
			s.vars[k] = v
		}
	}
	return nil
}
