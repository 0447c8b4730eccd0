package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// orderSource is a package exercising embedding, qualified types, variadic
// writers and a few methods that are not builder-shaped.
const orderSource = `package svc

import (
	"time"

	"github.com/sghaida/builderbuilder/builder"
)

type Order struct{}

type Identified interface {
	WithID(id string) OrderBuilder
	ID() string
}

type OrderBuilder interface {
	Identified
	builder.Builder[Order]

	WithItems(items ...string) OrderBuilder
	WithDue(due time.Time) OrderBuilder
	WithMeta(meta map[string][]int) OrderBuilder
	WithHook(hook func(context string) (int, error)) OrderBuilder
	WithFeed(feed <-chan *Order) OrderBuilder
	Due() time.Time
	Validate() error
	Reset()
	Hash() int
}

type CounterBuilder interface {
	builder.Builder[int]
	Count(n int) CounterBuilder
	GetCount() int
}
`

// writePackage writes files (name -> content) into a fresh temp dir.
func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeTempFile(t, dir, name, content, 0o644)
	}
	return dir
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), perm))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// requireParses asserts src is syntactically valid Go.
func requireParses(t *testing.T, src string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.AllErrors)
	require.NoError(t, err, src)
}

// runCapture runs the generator and returns its exit code and stderr.
func runCapture(args ...string) (int, string) {
	var stderr bytes.Buffer
	code := run(args, &stderr)
	return code, stderr.String()
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets tests force errors on Write and Close without touching real files.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams puts the real file seams back when the test ends.
func restoreWriteSeams(t *testing.T) {
	t.Helper()
	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
