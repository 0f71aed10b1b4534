package schema

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ViolationKind classifies a catalogue violation.
type ViolationKind string

const (
	ViolationEmptyName         ViolationKind = "empty-name"
	ViolationMissingTarget     ViolationKind = "missing-target"
	ViolationDuplicateBasename ViolationKind = "duplicate-basename"
	ViolationMissingParent     ViolationKind = "missing-parent"
	ViolationCycle             ViolationKind = "cycle"
	ViolationDuplicateProperty ViolationKind = "duplicate-property"
	ViolationShadowedProperty  ViolationKind = "shadowed-property"
	ViolationInvalidRule       ViolationKind = "invalid-rule"
)

// Violation is one problem found by Validate.
type Violation struct {
	Kind     ViolationKind
	Basename string
	Property string
	Message  string
}

func (v Violation) String() string {
	subject := v.Basename
	if subject == "" {
		subject = "<unnamed>"
	}
	if v.Property != "" {
		subject += "." + v.Property
	}
	return fmt.Sprintf("%s: %s (%s)", subject, v.Message, v.Kind)
}

// ValidationError lists every violation found in a catalogue.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = "  " + v.String()
	}
	return fmt.Sprintf("catalogue has %d violation(s):\n%s", len(e.Violations), strings.Join(lines, "\n"))
}

// Is reports whether target is ErrInvalidCatalogue.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidCatalogue
}

// Validate checks a catalogue for inconsistent inheritance and naming. It
// collects every violation instead of stopping at the first one. The
// returned error matches ErrInvalidCatalogue and unwraps to a
// *ValidationError.
func Validate(configs []*Configuration) error {
	v := &validator{members: make(map[*Configuration]bool, len(configs))}
	for _, c := range configs {
		v.members[c] = true
	}

	v.checkNames(configs)
	for _, c := range configs {
		v.checkConfiguration(c)
	}
	v.checkCycles(configs)

	if len(v.violations) == 0 {
		return nil
	}
	return errors.WithHint(&ValidationError{Violations: v.violations}, "no artifacts are generated until every violation is fixed")
}

type validator struct {
	members    map[*Configuration]bool
	violations []Violation
}

func (v *validator) add(kind ViolationKind, c *Configuration, prop, format string, args ...any) {
	v.violations = append(v.violations, Violation{
		Kind:     kind,
		Basename: c.Name(),
		Property: prop,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) checkNames(configs []*Configuration) {
	first := make(map[string]*Configuration)
	for _, c := range configs {
		name := c.Name()
		if name == "" {
			v.add(ViolationEmptyName, c, "", "configuration has no basename")
			continue
		}
		if _, dup := first[name]; dup {
			v.add(ViolationDuplicateBasename, c, "", "basename %q is used more than once", name)
			continue
		}
		first[name] = c
	}
}

func (v *validator) checkConfiguration(c *Configuration) {
	if c.Component.Target == nil {
		v.add(ViolationMissingTarget, c, "", "component has no target class")
	}
	if c.Parent != nil && !v.members[c.Parent] {
		v.add(ViolationMissingParent, c, "", "parent %q is not part of the catalogue", c.Parent.Name())
	}

	if c.Model != nil {
		if c.Model.Target == nil {
			if c.Model.Kind == Exact || c.Model.Generic != nil {
				v.add(ViolationInvalidRule, c, "", "model has no target type")
			}
		} else if err := c.Model.Target.Check(); err != nil {
			v.add(ViolationInvalidRule, c, "", "model target: %v", err)
		}
		if c.Model.Generic != nil {
			if err := c.Model.Generic.Check(); err != nil {
				v.add(ViolationInvalidRule, c, "", "model generic type: %v", err)
			}
		}
	}

	own := make(map[string]bool, len(c.Properties))
	for _, p := range c.Properties {
		if p.Name == "" {
			v.add(ViolationEmptyName, c, "", "property has no name")
			continue
		}
		if own[p.Name] {
			v.add(ViolationDuplicateProperty, c, p.Name, "property is declared more than once")
			continue
		}
		own[p.Name] = true
		if err := p.Type.Check(); err != nil {
			v.add(ViolationInvalidRule, c, p.Name, "%v", err)
		}
	}

	for _, a := range c.Ancestors() {
		for _, p := range a.Properties {
			if own[p.Name] {
				v.add(ViolationShadowedProperty, c, p.Name, "property is already declared by ancestor %q", a.Name())
			}
		}
	}
}

// color is the state of a configuration during cycle detection.
type color int

const (
	white color = iota // unvisited
	gray               // on the current path
	black              // done
)

// checkCycles walks parent links depth first with three-color marking and
// reports every cycle once.
func (v *validator) checkCycles(configs []*Configuration) {
	colors := make(map[*Configuration]color)
	for _, start := range configs {
		if colors[start] != white {
			continue
		}
		var path []*Configuration
		n := start
		for n != nil && colors[n] == white {
			colors[n] = gray
			path = append(path, n)
			n = n.Parent
		}
		if n != nil && colors[n] == gray {
			v.add(ViolationCycle, n, "", "parent chain is cyclic: %s", formatCycle(cycleFrom(path, n)))
		}
		for _, p := range path {
			colors[p] = black
		}
	}
}

// cycleFrom returns the part of path starting at the node that closes the
// cycle, with that node repeated at the end.
func cycleFrom(path []*Configuration, closing *Configuration) []*Configuration {
	for i, p := range path {
		if p == closing {
			cycle := append([]*Configuration(nil), path[i:]...)
			return append(cycle, closing)
		}
	}
	return nil
}

// formatCycle renders a cycle as "A → B → A".
func formatCycle(cycle []*Configuration) string {
	parts := make([]string, len(cycle))
	for i, c := range cycle {
		parts[i] = c.Name()
	}
	return strings.Join(parts, " → ")
}
