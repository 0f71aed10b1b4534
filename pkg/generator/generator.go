// Package generator is the batch API for generating kWicket builder code.
//
// A generation run validates the whole catalogue, derives the artifacts of
// every selected configuration and adds them to a sink in catalogue order:
//
//	unit, err := generator.NewUnit("kotlin", "Components", logger)
//	report, err := generator.Generate(ctx, generator.Request{
//	    Configs: catalogue.All(),
//	    Sink:    unit,
//	})
//	err = unit.WriteTo(ctx, emit.Dir("src/main/kotlin"))
//
// Configurations are independent of each other once validated, so their
// artifacts are derived concurrently. The sink only sees complete
// configurations, in a deterministic order.
package generator

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/internal/declgen"
	"github.com/pthm/kwicketgen/internal/emit"
	_ "github.com/pthm/kwicketgen/internal/emit/kotlin" // register renderers
	_ "github.com/pthm/kwicketgen/internal/emit/yaml"
	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/schema"
)

var (
	// ErrGeneration matches errors returned for configurations whose
	// artifacts could not be derived.
	ErrGeneration = errors.New("generator: generation failed")

	// ErrUnknownConfiguration is returned when Request.Only names a
	// configuration that is not in the catalogue.
	ErrUnknownConfiguration = errors.New("generator: unknown configuration")

	// ErrUnknownFormat is returned by NewUnit for unregistered formats.
	ErrUnknownFormat = errors.New("generator: unknown output format")
)

// generationError is a derivation failure. It matches ErrGeneration and
// unwraps to the cause.
type generationError struct {
	err error
}

func (e *generationError) Error() string { return e.err.Error() }
func (e *generationError) Unwrap() error { return e.err }

func (e *generationError) Is(target error) bool {
	return target == ErrGeneration
}

// IsGenerationErr returns true if err is or wraps ErrGeneration.
func IsGenerationErr(err error) bool {
	return errors.Is(err, ErrGeneration)
}

// IsUnknownConfigurationErr returns true if err is or wraps
// ErrUnknownConfiguration.
func IsUnknownConfigurationErr(err error) bool {
	return errors.Is(err, ErrUnknownConfiguration)
}

// Sink receives the declarations of a run.
type Sink interface {
	AddType(t decl.Type)
	AddFunc(f decl.Func)
}

// Request describes a generation run.
type Request struct {
	// Configs is the whole catalogue, parents before children. It is
	// validated as a unit.
	Configs []*schema.Configuration

	// Only restricts generation to the named configurations. Empty
	// generates everything.
	Only []string

	// Naming defaults to catalogue.DefaultNaming.
	Naming *schema.Naming

	Sink Sink

	// KeepGoing continues past configurations that fail. Their artifacts
	// are left out and the failures are returned together.
	KeepGoing bool

	// Parallelism bounds concurrent derivation. Zero uses GOMAXPROCS.
	Parallelism int

	Logger *zap.Logger
}

// Failure is a configuration whose artifacts could not be derived.
type Failure struct {
	Basename string
	Err      error
}

// Report summarizes a run.
type Report struct {
	// Generated lists the configurations that contributed declarations, in
	// the order they were added.
	Generated []string

	Failures []Failure
	Types    int
	Funcs    int
	Duration time.Duration
}

// Declarations returns the number of declarations added to the sink.
func (r *Report) Declarations() int {
	return r.Types + r.Funcs
}

// NewUnit returns an emission unit for the named format. Files of the unit
// are called name.
func NewUnit(format, name string, logger *zap.Logger) (*emit.Unit, error) {
	r := emit.Get(format)
	if r == nil {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrUnknownFormat, "%q", format),
			"available formats: %s", strings.Join(emit.List(), ", "),
		)
	}
	return emit.NewUnit(name, r, logger), nil
}

// Formats returns the registered output formats.
func Formats() []string {
	return emit.List()
}

// Generate runs req. Nothing reaches the sink when validation fails, and
// without KeepGoing nothing reaches it when any configuration fails.
func Generate(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	logger := req.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if req.Sink == nil {
		return nil, errors.AssertionFailedf("generator: request has no sink")
	}

	naming := req.Naming
	if naming == nil {
		naming = catalogue.DefaultNaming()
	}
	if err := naming.Check(); err != nil {
		return nil, err
	}
	if err := schema.Validate(req.Configs); err != nil {
		return nil, err
	}

	selected := req.Configs
	if len(req.Only) > 0 {
		var missing []string
		selected, missing = catalogue.Select(req.Configs, req.Only)
		if len(missing) > 0 {
			return nil, errors.WithHint(
				errors.Wrapf(ErrUnknownConfiguration, "%s", strings.Join(missing, ", ")),
				"run 'kwicketgen catalogue list' to see the available names",
			)
		}
	}

	parallelism := req.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	builder := declgen.NewBuilder(naming)
	results := make([]*declgen.Artifacts, len(selected))
	failures := make([]error, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, cfg := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := builder.Artifacts(cfg)
			if err != nil {
				err = &generationError{err: err}
				if !req.KeepGoing {
					return err
				}
				failures[i] = err
				return nil
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{}
	var errs []error
	for i, cfg := range selected {
		if failures[i] != nil {
			logger.Warn("configuration failed", zap.String("basename", cfg.Name()), zap.Error(failures[i]))
			report.Failures = append(report.Failures, Failure{Basename: cfg.Name(), Err: failures[i]})
			errs = append(errs, failures[i])
			continue
		}
		a := results[i]
		for _, t := range a.Types {
			req.Sink.AddType(t)
		}
		for _, f := range a.Funcs {
			req.Sink.AddFunc(f)
		}
		report.Generated = append(report.Generated, cfg.Name())
		report.Types += len(a.Types)
		report.Funcs += len(a.Funcs)
		logger.Debug("generated configuration",
			zap.String("basename", cfg.Name()),
			zap.Int("count", a.Len()),
		)
	}
	report.Duration = time.Since(start)

	logger.Info("generation finished",
		zap.Int("configurations", len(report.Generated)),
		zap.Int("failures", len(report.Failures)),
		zap.Int("declarations", report.Declarations()),
		zap.Duration("duration", report.Duration),
	)

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}
