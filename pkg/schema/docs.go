package schema

import "fmt"

// DocFunc derives the documentation of a generated declaration.
type DocFunc func(cfg *Configuration, n *Naming) string

// Docs overrides the default documentation of a configuration's artifacts.
// Nil entries use the defaults.
type Docs struct {
	ConfigInterface DocFunc
	ConfigClass     DocFunc
	TagClass        DocFunc
	TagMethod       DocFunc
	IncludeMethod   DocFunc
}

// Doc returns the documentation for artifact a of c.
func (c *Configuration) Doc(a Artifact, n *Naming) string {
	var custom DocFunc
	switch a {
	case ArtifactConfigInterface:
		custom = c.Docs.ConfigInterface
	case ArtifactConfigClass:
		custom = c.Docs.ConfigClass
	case ArtifactTagClass:
		custom = c.Docs.TagClass
	case ArtifactTagMethod:
		custom = c.Docs.TagMethod
	case ArtifactIncludeMethod:
		custom = c.Docs.IncludeMethod
	}
	if custom != nil {
		return custom(c, n)
	}
	return defaultDoc(c, a, n)
}

func defaultDoc(c *Configuration, a Artifact, n *Naming) string {
	target := c.Name()
	if c.Component.Target != nil {
		target = c.Component.Target.SimpleName()
	}
	switch a {
	case ArtifactConfigInterface:
		return fmt.Sprintf("Configuration for creating a [%s] component.", target)
	case ArtifactConfigClass:
		return fmt.Sprintf("Implementation of [%s].", n.ConfigInterface.Name(c))
	case ArtifactTagClass:
		return fmt.Sprintf("Tag for a [%s] component.", target)
	case ArtifactTagMethod:
		return fmt.Sprintf("Creates a [%s] within the receiving HTML tag.", n.TagClass.Name(c))
	case ArtifactIncludeMethod:
		return fmt.Sprintf("Creates a [%s] and queues it for inclusion in the receiving container.", target)
	}
	return ""
}
