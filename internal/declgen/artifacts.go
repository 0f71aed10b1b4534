package declgen

import (
	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/pkg/schema"
)

// Artifacts is the ordered set of declarations generated for one
// configuration.
type Artifacts struct {
	Configuration *schema.Configuration
	Types         []decl.Type
	Funcs         []decl.Func
}

// Len returns the number of declarations in a.
func (a *Artifacts) Len() int {
	return len(a.Types) + len(a.Funcs)
}

// Artifacts builds every declaration of cfg: the config interface and class,
// and unless cfg is config-only the tag class followed by the tag and
// include methods for each overload.
func (b *Builder) Artifacts(cfg *schema.Configuration) (*Artifacts, error) {
	out := &Artifacts{Configuration: cfg}

	// Declarations refer to the parent chain by name too.
	for _, c := range append([]*schema.Configuration{cfg}, cfg.Ancestors()...) {
		if err := b.naming.CheckConfiguration(c); err != nil {
			return nil, err
		}
	}

	iface, err := b.ConfigInterface(cfg)
	if err != nil {
		return nil, err
	}
	class, err := b.ConfigClass(cfg)
	if err != nil {
		return nil, err
	}
	out.Types = append(out.Types, iface, class)

	if cfg.IsConfigOnly() {
		return out, nil
	}

	tag, err := b.TagClass(cfg)
	if err != nil {
		return nil, err
	}
	out.Types = append(out.Types, tag)

	overloads := b.Overloads(cfg)
	for _, named := range overloads {
		f, err := b.TagMethod(cfg, named)
		if err != nil {
			return nil, errors.Wrapf(err, "%s overload", overloadName(named))
		}
		out.Funcs = append(out.Funcs, f)
	}
	for _, named := range overloads {
		f, err := b.IncludeMethod(cfg, named)
		if err != nil {
			return nil, errors.Wrapf(err, "%s overload", overloadName(named))
		}
		out.Funcs = append(out.Funcs, f)
	}
	return out, nil
}

func overloadName(named bool) string {
	if named {
		return "named"
	}
	return "erased"
}
