package schema

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for generation failures. Use the Is*Err helpers to test
// for them; wrapped errors carry the configuration and artifact involved.
var (
	// ErrUnresolvable is returned when a type rule cannot be resolved for a
	// configuration in a generation context.
	ErrUnresolvable = errors.New("schema: type cannot be resolved")

	// ErrInvalidRule is returned when a type rule is structurally malformed,
	// for example a generic rule without a base type.
	ErrInvalidRule = errors.New("schema: invalid type rule")

	// ErrInvalidCatalogue matches the error returned by Validate.
	ErrInvalidCatalogue = errors.New("schema: invalid catalogue")
)

// IsUnresolvableErr returns true if err is or wraps ErrUnresolvable.
func IsUnresolvableErr(err error) bool {
	return errors.Is(err, ErrUnresolvable)
}

// IsInvalidRuleErr returns true if err is or wraps ErrInvalidRule.
func IsInvalidRuleErr(err error) bool {
	return errors.Is(err, ErrInvalidRule)
}

// IsInvalidCatalogueErr returns true if err is or wraps ErrInvalidCatalogue.
func IsInvalidCatalogueErr(err error) bool {
	return errors.Is(err, ErrInvalidCatalogue)
}

func unresolvable(cfg *Configuration, ctx Context, format string, args ...any) error {
	return errors.Wrapf(ErrUnresolvable, "%s %s: %s", cfg.Name(), ctx.Artifact, fmt.Sprintf(format, args...))
}
