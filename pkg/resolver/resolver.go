// Package resolver defines the dependency resolver surface consumed by the
// resolution engine, and a registry for looking resolvers up by type name.
//
// A resolver locates module descriptors and artifacts in some repository.
// Negative lookups are normal outcomes, not errors: FindArtifact and
// GetDependency return nil when nothing matches, and callers decide whether
// that is fatal. Errors are reserved for invalid input and infrastructure
// failures.
//
// Implementations live in subpackages (see [ibiblio]).
//
// [ibiblio]: github.com/depstack/resolvekit/pkg/resolver/ibiblio
package resolver

import (
	"context"
	"time"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/repo"
)

// ResolvedModule is the result of a successful dependency resolution: the
// module id that was resolved plus the located descriptor or artifact that
// proved its existence.
type ResolvedModule struct {
	ModuleID   coord.ModuleID `json:"module_id"`
	Resource   *repo.Resource `json:"resource"`
	Descriptor bool           `json:"descriptor"` // resolved from a descriptor rather than an artifact probe
	ResolvedAt time.Time      `json:"resolved_at"`
}

// Resolver locates module descriptors and artifacts in a repository.
type Resolver interface {
	// TypeName returns the resolver type identifier used for registry and
	// configuration lookup (e.g. "ibiblio").
	TypeName() string

	// GetDependency resolves a module revision. A nil result with a nil
	// error means the module was not found.
	GetDependency(ctx context.Context, mid coord.ModuleID, asOf time.Time) (*ResolvedModule, error)

	// FindArtifact locates a concrete artifact. A nil result with a nil
	// error means the artifact was not found.
	FindArtifact(ctx context.Context, a coord.Artifact, asOf time.Time) (*repo.Resource, error)

	// Exists reports whether the artifact exists in the repository.
	Exists(ctx context.Context, a coord.Artifact) (bool, error)

	// Download fetches artifacts into destDir. With useOrigin set,
	// artifacts are located but left at their origin URL.
	Download(ctx context.Context, artifacts []coord.Artifact, destDir string, useOrigin bool) (*repo.Report, error)

	// ListOrganisations, ListModules, and ListRevisions enumerate
	// repository contents. Resolver types may restrict or forbid
	// enumeration of individual levels; a forbidden level yields an empty
	// result, not an error.
	ListOrganisations(ctx context.Context) ([]string, error)
	ListModules(ctx context.Context, organisation string) ([]string, error)
	ListRevisions(ctx context.Context, organisation, module string) ([]string, error)

	// Publish uploads an artifact from the local file at src. Read-only
	// resolver types fail with an UNSUPPORTED error.
	Publish(ctx context.Context, a coord.Artifact, src string) error
}
