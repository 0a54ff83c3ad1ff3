package apply_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/apply"
	"github.com/walteh/patchrc/pkg/mods"
)

// 🧪 newTestApplier builds an applier rooted in a fresh temp dir
func newTestApplier(t *testing.T, dryRun bool) (context.Context, *apply.Applier, string) {
	t.Helper()
	root := t.TempDir()

	cfg, err := apply.NewConfig(root, "", dryRun, 0.95)
	require.NoError(t, err)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	return ctx, apply.NewApplier(cfg), root
}

func writeTree(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readTree(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

func TestNewConfig(t *testing.T) {
	t.Run("missing_root_fails", func(t *testing.T) {
		_, err := apply.NewConfig(filepath.Join(t.TempDir(), "nope"), "", false, 0.95)
		require.Error(t, err)
	})

	t.Run("file_root_fails", func(t *testing.T) {
		root := t.TempDir()
		path := writeTree(t, root, "file.txt", "x")
		_, err := apply.NewConfig(path, "", false, 0.95)
		require.Error(t, err)
	})

	t.Run("zero_threshold_defaults", func(t *testing.T) {
		cfg, err := apply.NewConfig(t.TempDir(), "", false, 0)
		require.NoError(t, err)
		assert.Equal(t, apply.DefaultSimilarityThreshold, cfg.SimilarityThreshold)
	})

	t.Run("out_of_range_threshold_fails", func(t *testing.T) {
		_, err := apply.NewConfig(t.TempDir(), "", false, 1.5)
		require.Error(t, err)
	})

	t.Run("backup_dir_created", func(t *testing.T) {
		root := t.TempDir()
		backups := filepath.Join(t.TempDir(), "backups")
		_, err := apply.NewConfig(root, backups, false, 0.95)
		require.NoError(t, err)
		info, err := os.Stat(backups)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestCreateFile(t *testing.T) {
	t.Run("creates_with_parents", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		_, err := a.CreateFile(ctx, mods.Record{Kind: mods.KindCreateFile, Path: "sub/dir/new.go", Content: "package sub\n"})
		require.NoError(t, err)
		assert.Equal(t, "package sub\n", readTree(t, root, "sub/dir/new.go"))
	})

	t.Run("refuses_existing_path", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		writeTree(t, root, "exists.go", "old")

		_, err := a.CreateFile(ctx, mods.Record{Kind: mods.KindCreateFile, Path: "exists.go", Content: "new"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		assert.Equal(t, "old", readTree(t, root, "exists.go"))
	})

	t.Run("dry_run_writes_nothing", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, true)
		_, err := a.CreateFile(ctx, mods.Record{Kind: mods.KindCreateFile, Path: "ghost.go", Content: "x"})
		require.NoError(t, err)
		_, statErr := os.Stat(filepath.Join(root, "ghost.go"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestDeleteFile(t *testing.T) {
	t.Run("deletes_existing", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		writeTree(t, root, "old.go", "x")

		_, err := a.DeleteFile(ctx, mods.Record{Kind: mods.KindDeleteFile, Path: "old.go", Reason: "obsolete"})
		require.NoError(t, err)
		_, statErr := os.Stat(filepath.Join(root, "old.go"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("missing_file_fails", func(t *testing.T) {
		ctx, a, _ := newTestApplier(t, false)
		_, err := a.DeleteFile(ctx, mods.Record{Kind: mods.KindDeleteFile, Path: "nope.go"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory_fails", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		require.NoError(t, os.MkdirAll(filepath.Join(root, "dir"), 0755))

		_, err := a.DeleteFile(ctx, mods.Record{Kind: mods.KindDeleteFile, Path: "dir"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a regular file")
	})

	t.Run("dry_run_keeps_file", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, true)
		writeTree(t, root, "keep.go", "x")

		_, err := a.DeleteFile(ctx, mods.Record{Kind: mods.KindDeleteFile, Path: "keep.go"})
		require.NoError(t, err)
		assert.Equal(t, "x", readTree(t, root, "keep.go"))
	})
}

func manyLines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}

func TestReplaceFile(t *testing.T) {
	t.Run("replaces_content", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		writeTree(t, root, "app.go", "old content\n")

		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "app.go", Content: "new content\n"})
		require.NoError(t, err)
		assert.Equal(t, "new content\n", readTree(t, root, "app.go"))
	})

	t.Run("missing_file_fails", func(t *testing.T) {
		ctx, a, _ := newTestApplier(t, false)
		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "nope.go", Content: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("large_shrink_blocked", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		original := manyLines(100)
		writeTree(t, root, "big.go", original)

		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "big.go", Content: manyLines(10)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size reduction blocked")
		assert.Equal(t, original, readTree(t, root, "big.go"))
	})

	t.Run("moderate_shrink_allowed", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		writeTree(t, root, "big.go", manyLines(100))

		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "big.go", Content: manyLines(60)})
		require.NoError(t, err)
		assert.Equal(t, manyLines(60), readTree(t, root, "big.go"))
	})

	t.Run("small_file_may_shrink_freely", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, false)
		writeTree(t, root, "small.go", manyLines(50))

		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "small.go", Content: "x\n"})
		require.NoError(t, err)
	})

	t.Run("dry_run_keeps_content", func(t *testing.T) {
		ctx, a, root := newTestApplier(t, true)
		writeTree(t, root, "app.go", "old\n")

		_, err := a.ReplaceFile(ctx, mods.Record{Kind: mods.KindReplaceFile, Path: "app.go", Content: "new\n"})
		require.NoError(t, err)
		assert.Equal(t, "old\n", readTree(t, root, "app.go"))
	})
}
