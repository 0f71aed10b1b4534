package schema

import (
	"io"
	"sort"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/pkg/typeref"
)

// ClassInfo derives the package and name of a generated declaration from a
// configuration.
type ClassInfo struct {
	Package func(*Configuration) string
	Name    func(*Configuration) string

	// Check, when set, reports whether Package and Name can be derived
	// for a configuration. Package and Name return "" where it fails.
	Check func(*Configuration) error
}

// Ref returns the class reference ClassInfo derives for cfg.
func (ci ClassInfo) Ref(cfg *Configuration) *typeref.TypeRef {
	return typeref.Class(ci.Package(cfg), ci.Name(cfg))
}

func (ci ClassInfo) valid() bool {
	return ci.Package != nil && ci.Name != nil
}

// StaticClassInfo names the same declaration for every configuration.
func StaticClassInfo(pkg, name string) ClassInfo {
	return ClassInfo{
		Package: func(*Configuration) string { return pkg },
		Name:    func(*Configuration) string { return name },
	}
}

// PatternClassInfo places declarations in pkg and derives names from the
// basename with format, e.g. "I%sConfig".
func PatternClassInfo(pkg, format string) ClassInfo {
	return ClassInfo{
		Package: func(*Configuration) string { return pkg },
		Name: func(c *Configuration) string {
			return strings.ReplaceAll(format, "%s", c.Name())
		},
	}
}

// LowerCamelClassInfo places declarations in pkg named by the basename with
// its first letter lower-cased. Used for methods.
func LowerCamelClassInfo(pkg string) ClassInfo {
	return ClassInfo{
		Package: func(*Configuration) string { return pkg },
		Name:    func(c *Configuration) string { return LowerCamel(c.Name()) },
	}
}

// TemplateData is the value text/template naming patterns are executed with.
type TemplateData struct {
	Basename      string
	Target        string
	TargetPackage string
}

var templateFuncs = template.FuncMap{
	"lowerCamel": LowerCamel,
	"upperCamel": UpperCamel,
	"lower":      strings.ToLower,
	"upper":      strings.ToUpper,
}

// TemplateClassInfo builds a ClassInfo from text/template patterns such as
// "{{.Basename}}Tag" or "{{lowerCamel .Basename}}". It lets naming be
// configured from files.
func TemplateClassInfo(pkgPattern, namePattern string) (ClassInfo, error) {
	pkgTmpl, err := template.New("package").Funcs(templateFuncs).Parse(pkgPattern)
	if err != nil {
		return ClassInfo{}, errors.Wrapf(err, "parsing package pattern %q", pkgPattern)
	}
	nameTmpl, err := template.New("name").Funcs(templateFuncs).Parse(namePattern)
	if err != nil {
		return ClassInfo{}, errors.Wrapf(err, "parsing name pattern %q", namePattern)
	}
	sample := TemplateData{Basename: "Sample", Target: "Sample", TargetPackage: "sample"}
	for _, t := range []*template.Template{pkgTmpl, nameTmpl} {
		if err := t.Execute(io.Discard, sample); err != nil {
			return ClassInfo{}, errors.Wrapf(err, "executing %s pattern", t.Name())
		}
	}
	return ClassInfo{
		Package: func(c *Configuration) string { s, _ := execute(pkgTmpl, c); return s },
		Name:    func(c *Configuration) string { s, _ := execute(nameTmpl, c); return s },
		Check: func(c *Configuration) error {
			for _, t := range []*template.Template{pkgTmpl, nameTmpl} {
				if _, err := execute(t, c); err != nil {
					return errors.Wrapf(err, "executing %s pattern", t.Name())
				}
			}
			return nil
		},
	}, nil
}

func execute(t *template.Template, c *Configuration) (string, error) {
	data := TemplateData{Basename: c.Name()}
	if c.Component.Target != nil {
		data.Target = c.Component.Target.Name
		data.TargetPackage = c.Component.Target.Package
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// LowerCamel lower-cases the first letter of s.
func LowerCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperCamel upper-cases the first letter of s.
func UpperCamel(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TypeParamInfo names a type parameter and documents it.
type TypeParamInfo struct {
	Name string
	Doc  string
}

// Naming is the naming strategy: where each generated declaration lives and
// what it is called, plus the fixed identities generated code refers to.
type Naming struct {
	ConfigInterface ClassInfo
	ConfigClass     ClassInfo
	FactoryMethod   ClassInfo
	IncludeMethod   ClassInfo
	TagClass        ClassInfo
	TagMethod       ClassInfo
	BaseTagClass    ClassInfo
	IncludeFactory  ClassInfo

	// BlockTag is the markup interface tag classes implement.
	BlockTag *typeref.TypeRef
	// TagReceiver is the receiver of tag methods.
	TagReceiver *typeref.TypeRef
	// TagConsumer is the markup consumer class, used star-projected.
	TagConsumer *typeref.TypeRef
	// IncludeReceiver is the container receiver of include methods.
	IncludeReceiver *typeref.TypeRef
	// Visit is the member that renders a tag with a block.
	Visit *typeref.TypeRef

	ComponentParam TypeParamInfo
	ModelParam     TypeParamInfo
}

func (n *Naming) classInfos() map[string]ClassInfo {
	return map[string]ClassInfo{
		"config_interface": n.ConfigInterface,
		"config_class":     n.ConfigClass,
		"factory_method":   n.FactoryMethod,
		"include_method":   n.IncludeMethod,
		"tag_class":        n.TagClass,
		"tag_method":       n.TagMethod,
		"base_tag_class":   n.BaseTagClass,
		"include_factory":  n.IncludeFactory,
	}
}

// Check reports the naming entries that are not set.
func (n *Naming) Check() error {
	var missing []string
	for name, ci := range n.classInfos() {
		if !ci.valid() {
			missing = append(missing, name)
		}
	}
	for name, ref := range map[string]*typeref.TypeRef{
		"block_tag":        n.BlockTag,
		"tag_receiver":     n.TagReceiver,
		"tag_consumer":     n.TagConsumer,
		"include_receiver": n.IncludeReceiver,
		"visit":            n.Visit,
	} {
		if ref == nil {
			missing = append(missing, name)
		}
	}
	if n.ComponentParam.Name == "" {
		missing = append(missing, "component_param")
	}
	if n.ModelParam.Name == "" {
		missing = append(missing, "model_param")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Newf("naming strategy is missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// CheckConfiguration reports the first naming entry, in name order, that
// cannot name the declarations of cfg.
func (n *Naming) CheckConfiguration(cfg *Configuration) error {
	infos := n.classInfos()
	names := make([]string, 0, len(infos))
	for name := range infos {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ci := infos[name]
		if ci.Check == nil {
			continue
		}
		if err := ci.Check(cfg); err != nil {
			return errors.Wrapf(err, "%s: naming.%s", cfg.Name(), name)
		}
	}
	return nil
}

// ComponentVar returns the unbounded component type variable.
func (n *Naming) ComponentVar() *typeref.TypeRef {
	return typeref.Var(n.ComponentParam.Name)
}

// ModelVar returns the unbounded model type variable.
func (n *Naming) ModelVar() *typeref.TypeRef {
	return typeref.Var(n.ModelParam.Name)
}
