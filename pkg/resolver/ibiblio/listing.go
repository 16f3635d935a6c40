package ibiblio

import (
	"context"
	"strings"

	"github.com/depstack/resolvekit/pkg/pattern"
)

// Enumeration policy. Organisation browsing is never allowed: the
// repository root is too large and its index pages are not organisation
// directories. Module browsing only makes sense under the Maven2 layout,
// where the organisation maps to a directory. Revision browsing works under
// both layouts.
//
//	token         legacy   maven2
//	organisation  empty    empty
//	module        empty    delegate
//	revision      delegate delegate

// ListOrganisations implements resolver.Resolver. It always returns an
// empty result, in both layout modes.
func (r *Resolver) ListOrganisations(ctx context.Context) ([]string, error) {
	return nil, nil
}

// ListModules implements resolver.Resolver. Under the legacy layout it
// returns an empty result; under the Maven2-compatible layout it enumerates
// the organisation's directory index.
func (r *Resolver) ListModules(ctx context.Context, organisation string) ([]string, error) {
	m2, _ := r.lookupState()
	if !m2 {
		return nil, nil
	}
	root := r.Root()
	if root == "" {
		return nil, nil
	}
	return r.finder.ListUnder(ctx, root+orgPath(organisation, true))
}

// ListRevisions implements resolver.Resolver. Revision enumeration is
// allowed under both layouts: the module directory is listed and its child
// directories are the candidate revisions.
func (r *Resolver) ListRevisions(ctx context.Context, organisation, module string) ([]string, error) {
	m2, _ := r.lookupState()

	dir := r.Root()
	if dir == "" {
		return nil, nil
	}
	if m2 {
		dir += orgPath(organisation, true) + "/"
	}
	return r.finder.ListUnder(ctx, dir+module)
}

// TokenValues enumerates the values of a single pattern token
// (organisation, module, or revision), applying the enumeration policy
// table. A token the active pattern never uses cannot be enumerated: its
// values would not change which paths the pattern produces, so the result
// is empty without delegation. The other map supplies the already-fixed
// tokens a lookup needs (module enumeration needs "organisation"; revision
// enumeration needs "organisation" and "module").
func (r *Resolver) TokenValues(ctx context.Context, token string, other map[string]string) ([]string, error) {
	switch token {
	case pattern.TokenOrganisation:
		return nil, nil
	case pattern.TokenModule:
		if !pattern.HasToken(r.activePattern(), pattern.TokenModule) {
			return nil, nil
		}
		return r.ListModules(ctx, other[pattern.TokenOrganisation])
	case pattern.TokenRevision:
		if !pattern.HasToken(r.activePattern(), pattern.TokenRevision) {
			return nil, nil
		}
		return r.ListRevisions(ctx, other[pattern.TokenOrganisation], other[pattern.TokenModule])
	}
	return nil, nil
}

// orgPath renders an organisation as a repository path segment.
func orgPath(organisation string, m2 bool) string {
	if m2 {
		return strings.ReplaceAll(organisation, ".", "/")
	}
	return organisation
}
