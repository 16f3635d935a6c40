package coord

import "strings"

// ToM2 converts a module id from the legacy dotted-organisation form to the
// Maven2 canonical form used for repository path lookups: dots in the
// organisation become path separators ("org.example" -> "org/example").
// Module and revision pass through unchanged.
func ToM2(m ModuleID) ModuleID {
	m.Organisation = strings.ReplaceAll(m.Organisation, ".", "/")
	return m
}

// ArtifactToM2 applies [ToM2] to an artifact's module id, leaving the
// file-level attributes untouched.
func ArtifactToM2(a Artifact) Artifact {
	a.ModuleID = ToM2(a.ModuleID)
	return a
}
