// Package emit turns declarations into output files. A Unit accumulates
// declarations in memory, groups them into one file per package and writes
// every file in a single flush, either into a directory tree or as a txtar
// archive onto a stream.
package emit

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/txtar"

	"github.com/pthm/kwicketgen/internal/decl"
)

// Header is the first line of every rendered source file.
const Header = "// Code generated by kwicketgen. DO NOT EDIT."

// ErrEmit matches failures while rendering or writing output.
var ErrEmit = errors.New("emit failed")

// emitError is a render or write failure. It matches ErrEmit and unwraps
// to the underlying error.
type emitError struct {
	op  string
	err error
}

func (e *emitError) Error() string { return e.op + ": " + e.err.Error() }
func (e *emitError) Unwrap() error { return e.err }

func (e *emitError) Is(target error) bool {
	return target == ErrEmit
}

// IsEmitErr reports whether err was raised while emitting output.
func IsEmitErr(err error) bool {
	return errors.Is(err, ErrEmit)
}

// Sink collects declarations and writes them out in one step.
type Sink interface {
	AddType(t decl.Type)
	AddFunc(f decl.Func)
	WriteTo(ctx context.Context, target Target) error
}

// Target is where a Sink writes its files.
type Target struct {
	dir string
	w   io.Writer
}

// Dir places files below path, one directory per package segment.
func Dir(path string) Target {
	return Target{dir: path}
}

// Stream writes all files to w as a txtar archive.
func Stream(w io.Writer) Target {
	return Target{w: w}
}

// String describes the target for logs.
func (t Target) String() string {
	if t.w != nil {
		return "stream"
	}
	return t.dir
}

// File is the declarations of one package.
type File struct {
	Package string
	// Path is relative to the output root and uses forward slashes.
	Path  string
	Types []decl.Type
	Funcs []decl.Func
}

// Unit is an in-memory compilation unit. It is not safe for concurrent use;
// the order declarations are added in is the order they are rendered in.
type Unit struct {
	name     string
	renderer Renderer
	logger   *zap.Logger

	packages map[string]*File
}

// NewUnit returns an empty unit whose files are called name and rendered
// with r.
func NewUnit(name string, r Renderer, logger *zap.Logger) *Unit {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Unit{name: name, renderer: r, logger: logger, packages: map[string]*File{}}
}

func (u *Unit) file(pkg string) *File {
	f, ok := u.packages[pkg]
	if !ok {
		dir := strings.ReplaceAll(pkg, ".", "/")
		f = &File{Package: pkg, Path: pathJoin(dir, u.name+u.renderer.Ext())}
		u.packages[pkg] = f
	}
	return f
}

func pathJoin(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// AddType adds a type declaration to the file of its package.
func (u *Unit) AddType(t decl.Type) {
	f := u.file(t.Package)
	f.Types = append(f.Types, t)
}

// AddFunc adds a function declaration to the file of its package.
func (u *Unit) AddFunc(fn decl.Func) {
	f := u.file(fn.Package)
	f.Funcs = append(f.Funcs, fn)
}

// Files returns the files of the unit ordered by path.
func (u *Unit) Files() []*File {
	files := make([]*File, 0, len(u.packages))
	for _, f := range u.packages {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Len returns the number of declarations in the unit.
func (u *Unit) Len() int {
	n := 0
	for _, f := range u.packages {
		n += len(f.Types) + len(f.Funcs)
	}
	return n
}

// Render renders every file of the unit, keyed by path.
func (u *Unit) Render() ([]txtar.File, error) {
	var out []txtar.File
	for _, f := range u.Files() {
		data, err := u.renderer.Render(f)
		if err != nil {
			return nil, &emitError{op: "render " + f.Path, err: err}
		}
		out = append(out, txtar.File{Name: f.Path, Data: data})
	}
	return out, nil
}

// WriteTo renders the unit and writes it to target. Nothing is written when
// rendering fails. A directory target may be left partially written when a
// write fails.
//
// Render and write failures are returned with the failing file or stream
// prefixed to the message. They match ErrEmit and unwrap to the renderer or
// I/O error unchanged, so errors.Is and errors.As reach it.
func (u *Unit) WriteTo(ctx context.Context, target Target) error {
	files, err := u.Render()
	if err != nil {
		return err
	}

	if target.w != nil {
		ar := &txtar.Archive{Files: files}
		if _, err := target.w.Write(txtar.Format(ar)); err != nil {
			return &emitError{op: "write stream", err: err}
		}
		u.logger.Debug("wrote unit", zap.String("target", target.String()), zap.Int("files", len(files)))
		return nil
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(target.dir, filepath.FromSlash(f.Name))
		if err := writeFile(path, f.Data); err != nil {
			return &emitError{op: "write " + path, err: err}
		}
		u.logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(f.Data)))
	}
	return nil
}

// writeFile writes data to path unless the file already holds exactly data,
// so unchanged outputs keep their modification time.
func writeFile(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
