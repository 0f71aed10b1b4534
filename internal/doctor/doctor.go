// Package doctor checks that a kwicketgen setup can generate code.
//
// The doctor command validates the naming configuration, every catalogue
// file, the combined catalogue and the output location, then derives the
// artifacts of every configuration without writing anything.
//
// Example usage:
//
//	d := doctor.New(doctor.Options{Builtin: true, Catalogues: files, Output: "gen"})
//	report, err := d.Run(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report.Print(os.Stdout, true) // verbose=true
package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/internal/decl"
	"github.com/pthm/kwicketgen/pkg/catalogue"
	"github.com/pthm/kwicketgen/pkg/catalogue/loader"
	"github.com/pthm/kwicketgen/pkg/generator"
	"github.com/pthm/kwicketgen/pkg/schema"
)

// Status represents the result of a health check.
type Status int

const (
	// StatusPass indicates the check passed.
	StatusPass Status = iota
	// StatusWarn indicates a non-critical issue.
	StatusWarn
	// StatusFail indicates an issue that stops generation.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns a status indicator symbol for terminal output.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✓"
	case StatusWarn:
		return "⚠"
	case StatusFail:
		return "✗"
	default:
		return "?"
	}
}

// CheckResult represents the outcome of a single health check.
type CheckResult struct {
	// Category groups related checks (e.g., "Catalogue", "Generation").
	Category string

	// Name is a short identifier for the check.
	Name string

	Status  Status
	Message string

	// Details provides additional information for verbose output.
	Details string

	// FixHint suggests how to resolve issues.
	FixHint string
}

// Report contains all health check results.
type Report struct {
	Checks []CheckResult

	Passed   int
	Warnings int
	Errors   int
}

// AddCheck adds a check result and updates summary counts.
func (r *Report) AddCheck(check CheckResult) {
	r.Checks = append(r.Checks, check)
	switch check.Status {
	case StatusPass:
		r.Passed++
	case StatusWarn:
		r.Warnings++
	case StatusFail:
		r.Errors++
	}
}

// Print writes the report to the given writer.
func (r *Report) Print(w io.Writer, verbose bool) {
	categories := make(map[string][]CheckResult)
	var categoryOrder []string
	for _, check := range r.Checks {
		if _, exists := categories[check.Category]; !exists {
			categoryOrder = append(categoryOrder, check.Category)
		}
		categories[check.Category] = append(categories[check.Category], check)
	}

	for _, cat := range categoryOrder {
		_, _ = fmt.Fprintf(w, "\n%s\n", cat)
		for _, check := range categories[cat] {
			_, _ = fmt.Fprintf(w, "  %s %s\n", check.Status.Symbol(), check.Message)
			if verbose && check.Details != "" {
				for _, line := range strings.Split(check.Details, "\n") {
					_, _ = fmt.Fprintf(w, "      %s\n", line)
				}
			}
			if check.Status != StatusPass && check.FixHint != "" {
				_, _ = fmt.Fprintf(w, "      Fix: %s\n", check.FixHint)
			}
		}
	}

	_, _ = fmt.Fprintf(w, "\nSummary: %d passed, %d warnings, %d errors\n",
		r.Passed, r.Warnings, r.Errors)
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Errors > 0
}

// Options is the setup to check.
type Options struct {
	Builtin    bool
	Catalogues []string

	// Naming is the naming strategy, or NamingErr when it could not be
	// built from the configuration.
	Naming    *schema.Naming
	NamingErr error

	Format string
	Output string
}

// Doctor performs health checks on a kwicketgen setup.
type Doctor struct {
	opts Options

	// Populated during Run.
	docs    []*loader.Document
	configs []*schema.Configuration
}

// New creates a new Doctor instance.
func New(opts Options) *Doctor {
	return &Doctor{opts: opts}
}

// Run executes all health checks and returns a report. Checks that depend
// on a failed check are skipped.
func (d *Doctor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	namingOK := d.checkNaming(report)
	d.checkFormat(report)
	d.checkOutput(report)
	filesOK := d.checkCatalogueFiles(report)
	if filesOK && d.checkCatalogue(report) && namingOK {
		if err := d.checkGeneration(ctx, report); err != nil {
			return nil, errors.Wrap(err, "checking generation")
		}
	}
	return report, nil
}

func (d *Doctor) checkNaming(report *Report) bool {
	err := d.opts.NamingErr
	if err == nil && d.opts.Naming != nil {
		err = d.opts.Naming.Check()
	}
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "naming",
			Status:   StatusFail,
			Message:  "Naming strategy is invalid",
			Details:  err.Error(),
			FixHint:  "Check the naming section of kwicketgen.yaml",
		})
		return false
	}
	report.AddCheck(CheckResult{
		Category: "Configuration",
		Name:     "naming",
		Status:   StatusPass,
		Message:  "Naming strategy is complete",
	})
	return true
}

func (d *Doctor) checkFormat(report *Report) {
	format := d.opts.Format
	for _, f := range generator.Formats() {
		if f == format {
			report.AddCheck(CheckResult{
				Category: "Configuration",
				Name:     "format",
				Status:   StatusPass,
				Message:  fmt.Sprintf("Output format %q is available", format),
			})
			return
		}
	}
	report.AddCheck(CheckResult{
		Category: "Configuration",
		Name:     "format",
		Status:   StatusFail,
		Message:  fmt.Sprintf("Output format %q is not available", format),
		FixHint:  "Use one of: " + strings.Join(generator.Formats(), ", "),
	})
}

func (d *Doctor) checkOutput(report *Report) {
	out := d.opts.Output
	if out == "" || out == "-" {
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "output",
			Status:   StatusPass,
			Message:  "Output is written to stdout",
		})
		return
	}
	info, err := os.Stat(out)
	switch {
	case err == nil && !info.IsDir():
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "output",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Output path %s is not a directory", out),
			FixHint:  "Point generate.output at a directory",
		})
	case err == nil:
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "output",
			Status:   StatusPass,
			Message:  fmt.Sprintf("Output directory %s exists", out),
		})
	case os.IsNotExist(err):
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "output",
			Status:   StatusWarn,
			Message:  fmt.Sprintf("Output directory %s does not exist yet", out),
			Details:  "It is created by the first generate run.",
		})
	default:
		report.AddCheck(CheckResult{
			Category: "Configuration",
			Name:     "output",
			Status:   StatusFail,
			Message:  fmt.Sprintf("Output directory %s cannot be accessed", out),
			Details:  err.Error(),
		})
	}
}

// checkCatalogueFiles decodes every catalogue file.
func (d *Doctor) checkCatalogueFiles(report *Report) bool {
	if len(d.opts.Catalogues) == 0 {
		if !d.opts.Builtin {
			report.AddCheck(CheckResult{
				Category: "Catalogue",
				Name:     "sources",
				Status:   StatusFail,
				Message:  "No catalogue configured",
				FixHint:  "Enable the builtin catalogue or list catalogue files",
			})
			return false
		}
		return true
	}

	ok := true
	for _, path := range d.opts.Catalogues {
		doc, err := loader.ReadFile(path)
		if err != nil {
			ok = false
			report.AddCheck(CheckResult{
				Category: "Catalogue",
				Name:     "file",
				Status:   StatusFail,
				Message:  fmt.Sprintf("Catalogue %s cannot be read", path),
				Details:  err.Error(),
				FixHint:  errors.FlattenHints(err),
			})
			continue
		}
		d.docs = append(d.docs, doc)
		report.AddCheck(CheckResult{
			Category: "Catalogue",
			Name:     "file",
			Status:   StatusPass,
			Message:  fmt.Sprintf("Catalogue %s declares %d configurations", path, len(doc.Configurations)),
		})
	}
	return ok
}

// checkCatalogue resolves parents and validates the combined catalogue.
func (d *Doctor) checkCatalogue(report *Report) bool {
	var base []*schema.Configuration
	if d.opts.Builtin {
		base = catalogue.All()
	}
	extra, err := loader.Resolve(d.docs, base)
	if err != nil {
		report.AddCheck(CheckResult{
			Category: "Catalogue",
			Name:     "parents",
			Status:   StatusFail,
			Message:  "Catalogue files cannot be combined",
			Details:  err.Error(),
			FixHint:  errors.FlattenHints(err),
		})
		return false
	}
	d.configs = append(base, extra...)

	if err := schema.Validate(d.configs); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for _, v := range verr.Violations {
				report.AddCheck(CheckResult{
					Category: "Catalogue",
					Name:     string(v.Kind),
					Status:   StatusFail,
					Message:  v.String(),
				})
			}
		} else {
			report.AddCheck(CheckResult{
				Category: "Catalogue",
				Name:     "valid",
				Status:   StatusFail,
				Message:  "Catalogue is invalid",
				Details:  err.Error(),
			})
		}
		return false
	}

	report.AddCheck(CheckResult{
		Category: "Catalogue",
		Name:     "valid",
		Status:   StatusPass,
		Message:  fmt.Sprintf("Catalogue is valid (%d configurations, %d from files)", len(d.configs), len(extra)),
	})
	return true
}

// counter is a sink that only counts.
type counter struct {
	types, funcs int
}

func (c *counter) AddType(decl.Type) { c.types++ }
func (c *counter) AddFunc(decl.Func) { c.funcs++ }

// checkGeneration derives every artifact without writing output.
func (d *Doctor) checkGeneration(ctx context.Context, report *Report) error {
	sink := &counter{}
	res, err := generator.Generate(ctx, generator.Request{
		Configs:   d.configs,
		Naming:    d.opts.Naming,
		Sink:      sink,
		KeepGoing: true,
	})
	if res == nil {
		return err
	}

	for _, f := range res.Failures {
		report.AddCheck(CheckResult{
			Category: "Generation",
			Name:     f.Basename,
			Status:   StatusFail,
			Message:  fmt.Sprintf("%s cannot be generated", f.Basename),
			Details:  f.Err.Error(),
			FixHint:  "Check the property and model types of the configuration",
		})
	}
	if len(res.Failures) == 0 {
		report.AddCheck(CheckResult{
			Category: "Generation",
			Name:     "artifacts",
			Status:   StatusPass,
			Message: fmt.Sprintf("All %d configurations generate (%d types, %d functions)",
				len(res.Generated), sink.types, sink.funcs),
		})
	}
	return nil
}
