package emit

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/pthm/kwicketgen/internal/decl"
)

var errBoom = errors.New("boom")

// listRenderer prints one declaration name per line.
type listRenderer struct {
	fail bool
}

func (r *listRenderer) Name() string { return "list" }
func (r *listRenderer) Ext() string  { return ".txt" }

func (r *listRenderer) Render(f *File) ([]byte, error) {
	if r.fail {
		return nil, errBoom
	}
	var b strings.Builder
	b.WriteString(f.Package + "\n")
	for _, t := range f.Types {
		b.WriteString("type " + t.Name + "\n")
	}
	for _, fn := range f.Funcs {
		b.WriteString("func " + fn.Name + "\n")
	}
	return []byte(b.String()), nil
}

func testUnit(r Renderer) *Unit {
	u := NewUnit("Label", r, nil)
	u.AddType(decl.Type{Kind: decl.Interface, Package: "a.config", Name: "ILabelConfig"})
	u.AddType(decl.Type{Kind: decl.Class, Package: "a.config", Name: "LabelConfig"})
	u.AddFunc(decl.Func{Package: "a.tag", Name: "label"})
	u.AddType(decl.Type{Kind: decl.Class, Package: "a.tag", Name: "LabelTag"})
	return u
}

func TestUnitGroupsByPackage(t *testing.T) {
	u := testUnit(&listRenderer{})
	assert.Equal(t, 4, u.Len())

	files := u.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a/config/Label.txt", files[0].Path)
	assert.Equal(t, "a/tag/Label.txt", files[1].Path)
	assert.Len(t, files[0].Types, 2)
	assert.Equal(t, "ILabelConfig", files[0].Types[0].Name)
	assert.Len(t, files[1].Funcs, 1)
}

func TestUnitDefaultPackage(t *testing.T) {
	u := NewUnit("Root", &listRenderer{}, nil)
	u.AddFunc(decl.Func{Name: "f"})
	require.Len(t, u.Files(), 1)
	assert.Equal(t, "Root.txt", u.Files()[0].Path)
}

func TestWriteToStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testUnit(&listRenderer{}).WriteTo(context.Background(), Stream(&buf)))

	ar := txtar.Parse(buf.Bytes())
	require.Len(t, ar.Files, 2)
	assert.Equal(t, "a/config/Label.txt", ar.Files[0].Name)
	assert.Equal(t, "a.config\ntype ILabelConfig\ntype LabelConfig\n", string(ar.Files[0].Data))
	assert.Equal(t, "a.tag\ntype LabelTag\nfunc label\n", string(ar.Files[1].Data))
}

func TestWriteToDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testUnit(&listRenderer{}).WriteTo(context.Background(), Dir(dir)))

	data, err := os.ReadFile(filepath.Join(dir, "a", "tag", "Label.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a.tag\ntype LabelTag\nfunc label\n", string(data))
}

func TestWriteToDirKeepsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, testUnit(&listRenderer{}).WriteTo(context.Background(), Dir(dir)))

	path := filepath.Join(dir, "a", "config", "Label.txt")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, testUnit(&listRenderer{}).WriteTo(context.Background(), Dir(dir)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
}

func TestWriteToRenderFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	err := testUnit(&listRenderer{fail: true}).WriteTo(context.Background(), Dir(dir))
	require.Error(t, err)
	assert.True(t, IsEmitErr(err))
	assert.ErrorIs(t, err, ErrEmit)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "render a/config/Label.txt: boom", err.Error())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteToStreamFailureKeepsCause(t *testing.T) {
	werr := errors.New("pipe closed")
	err := testUnit(&listRenderer{}).WriteTo(context.Background(), Stream(failingWriter{err: werr}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmit)
	assert.ErrorIs(t, err, werr)
	assert.Equal(t, "write stream: pipe closed", err.Error())
}

func TestWriteToDirFailureKeepsCause(t *testing.T) {
	// A regular file where the output directory should be.
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(out, nil, 0o644))

	err := testUnit(&listRenderer{}).WriteTo(context.Background(), Dir(out))
	require.Error(t, err)
	assert.True(t, IsEmitErr(err))
	var perr *fs.PathError
	assert.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), out)
}

func TestWriteToCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := testUnit(&listRenderer{}).WriteTo(ctx, Dir(t.TempDir()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "out", Dir("out").String())
	assert.Equal(t, "stream", Stream(&bytes.Buffer{}).String())
}

type namedRenderer struct {
	listRenderer
	name string
}

func (r *namedRenderer) Name() string { return r.name }

func TestRegistry(t *testing.T) {
	r := &namedRenderer{name: "registry-test"}
	Register(r)
	t.Cleanup(func() { delete(registry, r.name) })

	assert.True(t, Registered("registry-test"))
	assert.Same(t, r, Get("registry-test"))
	assert.Contains(t, List(), "registry-test")
	assert.Nil(t, Get("nope"))
	assert.False(t, Registered("nope"))

	assert.PanicsWithValue(t, `emit: renderer "registry-test" already registered`, func() {
		Register(&namedRenderer{name: "registry-test"})
	})
}
