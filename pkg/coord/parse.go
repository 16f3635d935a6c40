package coord

import (
	"strings"

	"github.com/depstack/resolvekit/pkg/errors"
)

// ParseModuleID parses the canonical "org/module@revision" rendering back
// into a ModuleID. The organisation may contain dots but not slashes.
func ParseModuleID(s string) (ModuleID, error) {
	rest, rev, ok := strings.Cut(s, "@")
	if !ok || rev == "" {
		return ModuleID{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid coordinate %q: want org/module@revision", s)
	}
	org, mod, ok := strings.Cut(rest, "/")
	if !ok || org == "" || mod == "" || strings.Contains(mod, "/") {
		return ModuleID{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid coordinate %q: want org/module@revision", s)
	}
	for _, part := range []string{org, mod, rev} {
		if err := errors.ValidateCoordinatePart(part); err != nil {
			return ModuleID{}, err
		}
	}
	return ModuleID{Organisation: org, Module: mod, Revision: rev}, nil
}
