// Package pattern implements token substitution for repository path
// patterns.
//
// A pattern is a template string containing bracketed coordinate tokens,
// e.g.
//
//	[organisation]/[module]/[revision]/[artifact]-[revision].[ext]
//
// Substituting an artifact into the pattern yields a concrete repository
// path. The token vocabulary is fixed; unknown tokens are an error so that
// misconfigured patterns fail loudly at lookup time instead of producing
// URLs that can never match.
package pattern

import (
	"strings"

	"github.com/depstack/resolvekit/pkg/coord"
	"github.com/depstack/resolvekit/pkg/errors"
)

// Coordinate tokens recognised in patterns.
const (
	TokenOrganisation = "organisation"
	TokenModule       = "module"
	TokenRevision     = "revision"
	TokenArtifact     = "artifact"
	TokenType         = "type"
	TokenExt          = "ext"
)

// Substitute replaces every bracketed token in pattern with the
// corresponding field of a. It returns an error for an unterminated bracket
// or a token outside the fixed vocabulary.
func Substitute(pattern string, a coord.Artifact) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	rest := pattern
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:open])

		end := strings.IndexByte(rest[open:], ']')
		if end < 0 {
			return "", errors.New(errors.ErrCodeInvalidInput, "unterminated token in pattern %q", pattern)
		}
		token := rest[open+1 : open+end]
		value, ok := tokenValue(token, a)
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidInput, "unknown token [%s] in pattern %q", token, pattern)
		}
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}

// HasToken reports whether pattern contains the given token.
func HasToken(pattern, token string) bool {
	return strings.Contains(pattern, "["+token+"]")
}

func tokenValue(token string, a coord.Artifact) (string, bool) {
	switch token {
	case TokenOrganisation:
		return a.Organisation, true
	case TokenModule:
		return a.Module, true
	case TokenRevision:
		return a.Revision, true
	case TokenArtifact:
		return a.Name, true
	case TokenType:
		return a.Type, true
	case TokenExt:
		return a.Ext, true
	}
	return "", false
}
