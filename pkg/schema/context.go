package schema

import (
	"fmt"

	"github.com/pthm/kwicketgen/pkg/typeref"
)

// Artifact identifies one of the declarations generated per configuration.
type Artifact int

const (
	ArtifactConfigInterface Artifact = iota
	ArtifactConfigClass
	ArtifactTagClass
	ArtifactTagMethod
	ArtifactIncludeMethod
)

// Artifacts lists every artifact kind in generation order.
var Artifacts = []Artifact{
	ArtifactConfigInterface,
	ArtifactConfigClass,
	ArtifactTagClass,
	ArtifactTagMethod,
	ArtifactIncludeMethod,
}

func (a Artifact) String() string {
	switch a {
	case ArtifactConfigInterface:
		return "config interface"
	case ArtifactConfigClass:
		return "config class"
	case ArtifactTagClass:
		return "tag class"
	case ArtifactTagMethod:
		return "tag method"
	case ArtifactIncludeMethod:
		return "include method"
	}
	return fmt.Sprintf("artifact(%d)", int(a))
}

// IsMethod reports whether the artifact is a function rather than a type.
func (a Artifact) IsMethod() bool {
	return a == ArtifactTagMethod || a == ArtifactIncludeMethod
}

// Context is the generation context of one artifact. It is built once per
// artifact with NewContext and passed unchanged to every derivation.
type Context struct {
	Naming   *Naming
	Artifact Artifact

	// ModelParamNamed is false for the erased overload of a method, where
	// the caller's model type parameter is replaced by a wildcard.
	ModelParamNamed bool

	// ModelParam is the model type variable when named and the star
	// projection when erased.
	ModelParam *typeref.TypeRef
}

// NewContext returns the context for artifact a.
func NewContext(n *Naming, a Artifact, named bool) Context {
	param := typeref.Star()
	if named {
		param = n.ModelVar()
	}
	return Context{
		Naming:          n,
		Artifact:        a,
		ModelParamNamed: named,
		ModelParam:      param,
	}
}
