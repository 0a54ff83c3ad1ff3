package apply_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/apply"
	"github.com/walteh/patchrc/pkg/mods"
	"github.com/walteh/patchrc/pkg/report"
)

func newTestEngine(t *testing.T, dryRun bool) (context.Context, *apply.Engine, string) {
	t.Helper()
	root := t.TempDir()

	cfg, err := apply.NewConfig(root, "", dryRun, 0.95)
	require.NoError(t, err)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	return ctx, apply.NewEngine(apply.Options{Config: cfg}), root
}

func TestEngine_IsolatesRecordFailures(t *testing.T) {
	ctx, e, root := newTestEngine(t, false)
	writeTree(t, root, "target.txt", "A\nB\nC\nD\n")

	records := []mods.Record{
		{Kind: mods.KindCreateFile, Path: "first.txt", Content: "one\n"},
		{Kind: mods.KindDeleteFile}, // malformed: missing path
		{Kind: mods.KindReplaceSection, Path: "target.txt", OldText: "B\nC", NewText: "X"},
	}

	outcomes := e.Apply(ctx, records)
	require.Len(t, outcomes, 3)

	succeeded, failed := report.Counts(outcomes)
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)

	// Sibling effects intact around the failure.
	assert.Equal(t, "one\n", readTree(t, root, "first.txt"))
	assert.Equal(t, "A\nX\nD\n", readTree(t, root, "target.txt"))

	assert.Equal(t, report.StatusSuccess, outcomes[0].Status)
	assert.Equal(t, report.StatusFailure, outcomes[1].Status)
	assert.Contains(t, outcomes[1].Err, "missing path")
	assert.Equal(t, "unknown", outcomes[1].Path)
	assert.Equal(t, report.StatusSuccess, outcomes[2].Status)
}

func TestEngine_PreservesRecordOrder(t *testing.T) {
	ctx, e, _ := newTestEngine(t, false)

	records := []mods.Record{
		{Kind: mods.KindCreateFile, Path: "a.txt", Content: "a\n"},
		{Kind: mods.KindCreateFile, Path: "b.txt", Content: "b\n"},
		{Kind: mods.KindCreateFile, Path: "c.txt", Content: "c\n"},
	}

	outcomes := e.Apply(ctx, records)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "a.txt", outcomes[0].Path)
	assert.Equal(t, "b.txt", outcomes[1].Path)
	assert.Equal(t, "c.txt", outcomes[2].Path)
}

func TestEngine_UnknownKindIsRecordLocal(t *testing.T) {
	ctx, e, root := newTestEngine(t, false)

	records := []mods.Record{
		{Kind: mods.KindUnknown, RawKind: "RENAME_FILE", Path: "x.txt"},
		{Kind: mods.KindCreateFile, Path: "y.txt", Content: "y\n"},
	}

	outcomes := e.Apply(ctx, records)
	require.Len(t, outcomes, 2)
	assert.Equal(t, report.StatusFailure, outcomes[0].Status)
	assert.Equal(t, "RENAME_FILE", outcomes[0].Kind)
	assert.Equal(t, report.StatusSuccess, outcomes[1].Status)
	assert.Equal(t, "y\n", readTree(t, root, "y.txt"))
}

func TestEngine_DryRunMutatesNothing(t *testing.T) {
	ctx, e, root := newTestEngine(t, true)
	writeTree(t, root, "existing.txt", "keep me\n")

	records := []mods.Record{
		{Kind: mods.KindCreateFile, Path: "new.txt", Content: "n\n"},
		{Kind: mods.KindReplaceFile, Path: "existing.txt", Content: "replaced\n"},
		{Kind: mods.KindDeleteFile, Path: "existing.txt"},
	}

	outcomes := e.Apply(ctx, records)
	succeeded, failed := report.Counts(outcomes)
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 0, failed)

	// Tree untouched: nothing created, nothing changed, nothing deleted.
	_, err := os.Stat(filepath.Join(root, "new.txt"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "keep me\n", readTree(t, root, "existing.txt"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "2 modification(s)", apply.Describe(make([]mods.Record, 2)))
}
