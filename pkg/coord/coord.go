// Package coord defines the coordinate value types that identify modules
// and artifacts in a Maven-style repository.
//
// A ModuleID names a module version (organisation, module, revision). An
// Artifact extends a ModuleID with the file-level attributes (name, type,
// extension) needed to address a concrete file in the repository. Both are
// plain value types: construct them, pass them around, compare them with ==.
package coord

import "fmt"

// ModuleID identifies a single module revision.
type ModuleID struct {
	Organisation string
	Module       string
	Revision     string
}

// String returns the canonical "org/module@revision" rendering.
func (m ModuleID) String() string {
	return fmt.Sprintf("%s/%s@%s", m.Organisation, m.Module, m.Revision)
}

// Artifact identifies a concrete file belonging to a module revision.
//
// Name is the artifact name (usually the module name), Type the artifact
// kind ("jar", "pom", "source"), Ext the file extension. Type and Ext often
// coincide but need not ("source" artifacts carry a "jar" extension).
type Artifact struct {
	ModuleID
	Name string
	Type string
	Ext  string
}

// String returns the "org/module@revision name.ext (type)" rendering used
// in logs and error messages.
func (a Artifact) String() string {
	return fmt.Sprintf("%s %s.%s (%s)", a.ModuleID, a.Name, a.Ext, a.Type)
}

// Descriptor kinds passed to the fetch engine so it can report what it was
// looking for.
const (
	KindArtifact   = "artifact"
	KindDescriptor = "descriptor"
)

// NewDescriptor returns the synthetic descriptor artifact (POM-equivalent)
// for a module revision. Descriptor files are named after the module and
// always carry the "pom" type and extension.
func NewDescriptor(m ModuleID) Artifact {
	return Artifact{
		ModuleID: m,
		Name:     m.Module,
		Type:     "pom",
		Ext:      "pom",
	}
}
