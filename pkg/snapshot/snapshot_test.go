package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/snapshot"
)

func testCtx(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 fixtureTree lays out a small project to snapshot
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	write("main.go", "package main\n\nfunc main() {}\n")
	write("pkg/util/util.go", "package util\n")
	write("README.md", "# demo\n")
	write("image.png", "\x89PNG")
	write("node_modules/pkg/index.js", "ignored\n")
	write("ignored.log", "x\n")
	write(".gitignore", "*.log\n")

	return root
}

func TestWriteXML(t *testing.T) {
	root := fixtureTree(t)

	var b strings.Builder
	err := snapshot.WriteXML(testCtx(t), snapshot.Options{Root: root}, &b)
	require.NoError(t, err)
	out := b.String()

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<codebase root="`)
	assert.Contains(t, out, `<file path="main.go" language="go"`)
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, `<directory name="pkg">`)
	assert.Contains(t, out, `<file path="pkg/util/util.go"`)

	// Binary content stays out, only metadata remains.
	assert.Contains(t, out, `status="binary"`)
	assert.NotContains(t, out, "\x89PNG")

	// Default excludes and gitignore rules hold.
	assert.NotContains(t, out, "node_modules")
	assert.NotContains(t, out, "ignored.log")
}

func TestWriteXML_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("data\n", 100)
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.txt"), []byte(big), 0644))

	var b strings.Builder
	err := snapshot.WriteXML(testCtx(t), snapshot.Options{Root: root, MaxFileSize: 10}, &b)
	require.NoError(t, err)

	assert.Contains(t, b.String(), `status="omitted_large"`)
	assert.NotContains(t, b.String(), "data\ndata")
}

func TestWriteXML_CDATAEscaping(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "tricky.txt"), []byte("a ]]> b\n"), 0644))

	var b strings.Builder
	err := snapshot.WriteXML(testCtx(t), snapshot.Options{Root: root}, &b)
	require.NoError(t, err)
	assert.Contains(t, b.String(), "]]]]><![CDATA[>")
}

func TestTree(t *testing.T) {
	root := fixtureTree(t)

	out, err := snapshot.Tree(testCtx(t), snapshot.Options{Root: root})
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Base(root)+"/")
	assert.Contains(t, out, "pkg/")
	assert.Contains(t, out, "main.go")
	assert.Contains(t, out, "├── ")
	assert.Contains(t, out, "└── ")
	assert.NotContains(t, out, "node_modules")
	assert.Contains(t, out, "2 directories, 4 files")
}

func TestTree_DepthLimit(t *testing.T) {
	root := fixtureTree(t)

	out, err := snapshot.Tree(testCtx(t), snapshot.Options{Root: root, Depth: 1})
	require.NoError(t, err)
	assert.Contains(t, out, "pkg/")
	assert.NotContains(t, out, "util.go")
}

func TestTree_UserExcludes(t *testing.T) {
	root := fixtureTree(t)

	out, err := snapshot.Tree(testCtx(t), snapshot.Options{Root: root, Excludes: []string{"*.md"}})
	require.NoError(t, err)
	assert.NotContains(t, out, "README.md")
}

func TestTree_MissingRoot(t *testing.T) {
	_, err := snapshot.Tree(testCtx(t), snapshot.Options{Root: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}
