package kotlin

import (
	"sort"

	"github.com/pthm/kwicketgen/internal/emit"
	"github.com/pthm/kwicketgen/pkg/typeref"
)

// importSet decides how each class of a file is spelled. The first top level
// class to claim a simple name is referenced by it and imported when needed.
// Later classes with the same simple name stay qualified.
type importSet struct {
	pkg     string
	claimed map[string]string // simple name -> qualified top level name
	imports map[string]bool
}

func newImportSet(f *emit.File) *importSet {
	s := &importSet{pkg: f.Package, claimed: map[string]string{}, imports: map[string]bool{}}

	// Declarations of the file own their names.
	for i := range f.Types {
		s.claimed[f.Types[i].Name] = f.Types[i].ClassName().QualifiedName()
	}

	var refs []*typeref.TypeRef
	for i := range f.Types {
		refs = append(refs, f.Types[i].Refs()...)
	}
	for i := range f.Funcs {
		refs = append(refs, f.Funcs[i].Refs()...)
	}
	for _, r := range refs {
		s.claim(r)
	}
	return s
}

func (s *importSet) claim(r *typeref.TypeRef) {
	if r.Package == "" {
		return
	}
	top := r.TopLevel()
	qualified := top.QualifiedName()
	if _, ok := s.claimed[top.Name]; ok {
		return
	}
	s.claimed[top.Name] = qualified
	if top.Package != s.pkg && !typeref.IsDefaultImport(top.Package) {
		s.imports[qualified] = true
	}
}

// name spells the class r within the file.
func (s *importSet) name(r *typeref.TypeRef) string {
	if r.Package == "" {
		return r.Name
	}
	top := r.TopLevel()
	owner, ok := s.claimed[top.Name]
	switch {
	case ok && owner == top.QualifiedName():
		return r.Name
	case !ok && (top.Package == s.pkg || typeref.IsDefaultImport(top.Package)):
		// Implied types such as the Unit result of a lambda are never
		// collected as references.
		return r.Name
	}
	return r.QualifiedName()
}

// sorted returns the import statements in lexical order.
func (s *importSet) sorted() []string {
	out := make([]string, 0, len(s.imports))
	for q := range s.imports {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}
