package ibiblio

import (
	"context"
	"time"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
	"github.com/depstack/resolvekit/pkg/repo"
	"github.com/depstack/resolvekit/pkg/resolver"
)

// FindDescriptor locates the module descriptor (POM-equivalent) for a
// module revision. Descriptor lookups only exist under the
// Maven2-compatible layout with POM lookups enabled; in every other
// configuration the result is nil regardless of root/pattern state.
// A non-zero asOf skips candidates modified after that time.
func (r *Resolver) FindDescriptor(ctx context.Context, mid coord.ModuleID, asOf time.Time) (*repo.Resource, error) {
	enabled, patterns := r.descriptorLookupEnabled()
	if !enabled {
		return nil, nil
	}
	desc := coord.NewDescriptor(coord.ToM2(mid))
	return r.finder.FindUsingPatterns(ctx, patterns, desc, coord.KindDescriptor, asOf)
}

// LogDescriptorNotFound reports a "descriptor not found" diagnostic for the
// synthetic descriptor artifact of mid. It is a no-op unless descriptor
// lookups apply.
func (r *Resolver) LogDescriptorNotFound(mid coord.ModuleID) {
	if enabled, _ := r.descriptorLookupEnabled(); !enabled {
		return
	}
	desc := coord.NewDescriptor(coord.ToM2(mid))
	r.logger.Info("descriptor not found", "module", mid.String(), "artifact", desc.String())
}

// FindArtifact implements resolver.Resolver. The artifact coordinate is
// converted to Maven2 canonical form when the Maven2-compatible layout is
// active; asOf passes through to the fetch engine unchanged.
func (r *Resolver) FindArtifact(ctx context.Context, a coord.Artifact, asOf time.Time) (*repo.Resource, error) {
	a, patterns := r.artifactLookup(a)
	return r.finder.FindUsingPatterns(ctx, patterns, a, coord.KindArtifact, asOf)
}

// Exists implements resolver.Resolver.
func (r *Resolver) Exists(ctx context.Context, a coord.Artifact) (bool, error) {
	a, patterns := r.artifactLookup(a)
	return r.finder.Exists(ctx, patterns, a)
}

// Download implements resolver.Resolver.
func (r *Resolver) Download(ctx context.Context, artifacts []coord.Artifact, destDir string, useOrigin bool) (*repo.Report, error) {
	m2, patterns := r.lookupState()

	converted := make([]coord.Artifact, len(artifacts))
	for i, a := range artifacts {
		if m2 {
			a = coord.ArtifactToM2(a)
		}
		converted[i] = a
	}
	return r.finder.Download(ctx, patterns, converted, destDir, useOrigin)
}

// GetDependency implements resolver.Resolver: it resolves a module revision
// by descriptor when descriptor lookups apply, falling back to probing for
// the module's default jar artifact. A nil result with a nil error means
// the module is not present in the repository.
func (r *Resolver) GetDependency(ctx context.Context, mid coord.ModuleID, asOf time.Time) (*resolver.ResolvedModule, error) {
	r.ensureConfigured()

	res, err := r.FindDescriptor(ctx, mid, asOf)
	if err != nil {
		return nil, err
	}
	if res != nil {
		return &resolver.ResolvedModule{
			ModuleID:   mid,
			Resource:   res,
			Descriptor: true,
			ResolvedAt: time.Now(),
		}, nil
	}
	r.LogDescriptorNotFound(mid)

	jar := coord.Artifact{ModuleID: mid, Name: mid.Module, Type: "jar", Ext: "jar"}
	res, err = r.FindArtifact(ctx, jar, asOf)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return &resolver.ResolvedModule{
		ModuleID:   mid,
		Resource:   res,
		ResolvedAt: time.Now(),
	}, nil
}

// Publish implements resolver.Resolver. The ibiblio resolver targets a
// public, non-writable repository mirror and always refuses to publish.
func (r *Resolver) Publish(ctx context.Context, a coord.Artifact, src string) error {
	return errors.New(errors.ErrCodeUnsupported, "publish not supported by %s resolver", TypeName)
}

// lookupState ensures configuration and snapshots the layout flag and the
// active artifact pattern set for an operation, so network calls happen
// outside the configuration lock.
func (r *Resolver) lookupState() (m2 bool, patterns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureConfiguredLocked()
	return r.m2compatible, append([]string(nil), r.artifactPatterns...)
}

// artifactLookup snapshots the lookup inputs for a single-artifact
// operation: the coordinate is Maven2-converted when that layout is active.
func (r *Resolver) artifactLookup(a coord.Artifact) (coord.Artifact, []string) {
	m2, patterns := r.lookupState()
	if m2 {
		a = coord.ArtifactToM2(a)
	}
	return a, patterns
}
