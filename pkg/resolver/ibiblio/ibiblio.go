// Package ibiblio implements the "ibiblio" resolver type: a pattern-driven
// artifact locator for Maven-style HTTP repositories (the ibiblio Maven
// mirror and compatible repositories such as Maven Central).
//
// The resolver supports two repository layouts. The legacy layout places
// artifacts under "[module]/[type]s/"; the Maven2-compatible layout uses the
// canonical "groupId/artifactId/version/" structure and additionally enables
// descriptor (POM) lookups. Switching to Maven2 compatibility overwrites any
// previously configured root and pattern with the fixed Maven2 defaults;
// switching back does not restore them. That asymmetry is long-standing
// observable behavior and is kept.
//
// Root and pattern may be set explicitly or left to be pulled lazily from
// the shared settings store on first use. If neither explicit values nor a
// store are available, lookups degrade to "not found" rather than failing:
// an unconfigured resolver has no patterns to try.
//
// The resolver composes a [repo.Finder] for all path construction and fetch
// mechanics; it only decides which patterns apply and how coordinates are
// transformed before delegation.
package ibiblio

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/depstack/resolvekit/pkg/errors"
	"github.com/depstack/resolvekit/pkg/repo"
	"github.com/depstack/resolvekit/pkg/resolver"
	"github.com/depstack/resolvekit/pkg/settings"
)

// TypeName identifies this resolver type in the registry and in
// configuration.
const TypeName = "ibiblio"

// Default layout constants.
const (
	DefaultRoot    = "http://www.ibiblio.org/maven/"
	DefaultPattern = "[module]/[type]s/[artifact]-[revision].[ext]"

	// Maven2-compatible layout, applied wholesale by SetM2Compatible.
	M2Root    = "http://www.ibiblio.org/maven2/"
	M2Pattern = "[organisation]/[module]/[revision]/[artifact]-[revision].[ext]"
)

// Resolver is the ibiblio resolver. Construct with New; the zero value is
// not usable.
//
// All methods are safe for concurrent use. Configuration is guarded by a
// mutex so concurrent first-time default pulls cannot interleave partial
// root/pattern writes; the store's defaults are deterministic, so whichever
// pull wins converges to the same configuration.
type Resolver struct {
	store  settings.Store
	finder repo.Finder
	logger *log.Logger

	mu           sync.Mutex
	root         string // "" = unset, else ends with "/"
	pattern      string // "" = unset
	m2compatible bool
	usepoms      bool

	artifactPatterns   []string
	descriptorPatterns []string
}

// New creates an ibiblio resolver pulling lazy defaults from store and
// delegating fetch mechanics to finder. The store may be nil, in which case
// an unconfigured resolver stays unconfigured and lookups report not found.
// A nil logger silences diagnostics.
func New(store settings.Store, finder repo.Finder, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		store:   store,
		finder:  finder,
		logger:  logger,
		usepoms: true,
	}
}

func init() {
	resolver.Register(TypeName, func(d resolver.Deps) resolver.Resolver {
		return New(d.Store, d.Finder, d.Logger)
	})
}

// TypeName implements resolver.Resolver.
func (r *Resolver) TypeName() string { return TypeName }

// ensureConfigured pulls default root and pattern from the settings store
// if the caller never set them explicitly. It is idempotent and cheap once
// both are present. A missing store leaves the resolver unconfigured on
// purpose: lookups then find nothing instead of erroring.
//
// Each missing value is looked up twice: once directly, and once more after
// asking the store to load its repository defaults (root via the publish
// variant, pattern via the resolve variant, matching the defaults files the
// two variants populate).
func (r *Resolver) ensureConfigured() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureConfiguredLocked()
}

func (r *Resolver) ensureConfiguredLocked() {
	if r.store == nil || (r.root != "" && r.pattern != "") {
		return
	}

	if r.root == "" {
		if root, ok := r.store.Variable(settings.VarDefaultRoot); ok {
			r.root = normalizeRoot(root)
		} else if err := r.store.LoadDefaultRepositoryConfig(true); err != nil {
			r.logger.Debug("default repository config unavailable", "err", err)
		} else if root, ok := r.store.Variable(settings.VarDefaultRoot); ok {
			r.root = normalizeRoot(root)
		}
	}

	if r.pattern == "" {
		if pattern, ok := r.store.Variable(settings.VarDefaultPattern); ok {
			r.pattern = pattern
		} else if err := r.store.LoadDefaultRepositoryConfig(false); err != nil {
			r.logger.Debug("default repository config unavailable", "err", err)
		} else if pattern, ok := r.store.Variable(settings.VarDefaultPattern); ok {
			r.pattern = pattern
		}
	}

	r.updatePatternsLocked()
}

// SetRoot sets the repository root explicitly, normalized to end with a
// path separator. It fails with an INVALID_ROOT error for an empty or
// non-HTTP root; a Maven-style repository is necessarily an HTTP
// repository. Defaults are pulled first so a later lazy pull cannot
// overwrite the explicit value.
func (r *Resolver) SetRoot(root string) error {
	if err := errors.ValidateRoot(root); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.root = normalizeRoot(root)
	r.ensureConfiguredLocked()
	r.updatePatternsLocked()
	return nil
}

// SetPattern sets the artifact pattern explicitly. It fails with an
// INVALID_PATTERN error for an empty or malformed pattern (unbalanced
// brackets, path traversal).
func (r *Resolver) SetPattern(pattern string) error {
	if err := errors.ValidatePattern(pattern); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pattern = pattern
	r.ensureConfiguredLocked()
	r.updatePatternsLocked()
	return nil
}

// SetM2Compatible toggles the Maven2-compatible layout. Enabling it
// unconditionally overwrites root and pattern with the Maven2 defaults,
// discarding any explicit values. Disabling it does not restore them.
func (r *Resolver) SetM2Compatible(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m2compatible = enabled
	if enabled {
		r.root = M2Root
		r.pattern = M2Pattern
	}
	r.updatePatternsLocked()
}

// SetUsePoms controls whether descriptor (POM) lookups are attempted under
// the Maven2-compatible layout. It has no effect on the legacy layout,
// which never attempts descriptor lookups.
func (r *Resolver) SetUsePoms(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usepoms = enabled
	r.updatePatternsLocked()
}

// Root returns the configured root ("" if unset).
func (r *Resolver) Root() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Pattern returns the configured pattern ("" if unset).
func (r *Resolver) Pattern() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pattern
}

// M2Compatible reports whether the Maven2-compatible layout is active.
func (r *Resolver) M2Compatible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m2compatible
}

// UsePoms reports whether descriptor lookups are enabled.
func (r *Resolver) UsePoms() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usepoms
}

// ArtifactPatterns returns the active artifact pattern set after ensuring
// configuration. Unconfigured resolvers have no patterns.
func (r *Resolver) ArtifactPatterns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureConfiguredLocked()
	return append([]string(nil), r.artifactPatterns...)
}

// DescriptorPatterns returns the active descriptor pattern set after
// ensuring configuration. It is empty unless the Maven2-compatible layout
// and POM lookups are both enabled.
func (r *Resolver) DescriptorPatterns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureConfiguredLocked()
	return append([]string(nil), r.descriptorPatterns...)
}

// updatePatternsLocked recomputes the active pattern sets from the current
// configuration. The artifact set is always the single whole pattern
// (root+pattern); the descriptor set mirrors it only when descriptor
// lookups apply. With root or pattern unset there is nothing to try and
// both sets are empty, which downstream reads as "not found".
func (r *Resolver) updatePatternsLocked() {
	if r.root == "" || r.pattern == "" {
		r.artifactPatterns = nil
		r.descriptorPatterns = nil
		return
	}
	whole := r.root + r.pattern
	r.artifactPatterns = []string{whole}
	if r.m2compatible && r.usepoms {
		r.descriptorPatterns = []string{whole}
	} else {
		r.descriptorPatterns = nil
	}
}

// descriptorLookupEnabled reports whether descriptor lookups currently
// apply, and returns the descriptor pattern set to use.
func (r *Resolver) descriptorLookupEnabled() (bool, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !(r.m2compatible && r.usepoms) {
		return false, nil
	}
	r.ensureConfiguredLocked()
	return true, append([]string(nil), r.descriptorPatterns...)
}

// activePattern ensures configuration and returns the active pattern
// template ("" when unconfigured).
func (r *Resolver) activePattern() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureConfiguredLocked()
	return r.pattern
}

func normalizeRoot(root string) string {
	if !strings.HasSuffix(root, "/") {
		return root + "/"
	}
	return root
}
