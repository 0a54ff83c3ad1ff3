package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/report"
)

func sampleOutcomes() []report.Outcome {
	return []report.Outcome{
		{Kind: "CREATE_FILE", Path: "a.go", Status: report.StatusSuccess},
		{Kind: "REPLACE_SECTION", Path: "b.go", Status: report.StatusFailure, Err: "no matching section found (best similarity: 61.00%)"},
		{Kind: "DELETE_FILE", Path: "c.go", Status: report.StatusSuccess},
	}
}

func TestBuild(t *testing.T) {
	meta := report.Meta{
		Root:        "/work/tree",
		DryRun:      true,
		GeneratedAt: time.Date(2025, 3, 9, 12, 30, 0, 0, time.UTC),
	}

	out := report.Build(meta, sampleOutcomes())

	assert.Contains(t, out, "CODE MODIFICATION REPORT")
	assert.Contains(t, out, "Timestamp: 2025-03-09 12:30:00")
	assert.Contains(t, out, "Root Path: /work/tree")
	assert.Contains(t, out, "Dry Run: Yes")
	assert.Contains(t, out, "SUCCESSFUL MODIFICATIONS (2):")
	assert.Contains(t, out, "✓ CREATE_FILE: a.go")
	assert.Contains(t, out, "FAILED MODIFICATIONS (1):")
	assert.Contains(t, out, "✗ REPLACE_SECTION: b.go")
	assert.Contains(t, out, "Error: no matching section found")
	assert.Contains(t, out, "Summary: 2 successful, 1 failed")
}

func TestBuild_Deterministic(t *testing.T) {
	meta := report.Meta{Root: "/r", GeneratedAt: time.Unix(0, 0).UTC()}
	outcomes := sampleOutcomes()
	require.Equal(t, report.Build(meta, outcomes), report.Build(meta, outcomes))
}

func TestBuild_EmptySections(t *testing.T) {
	meta := report.Meta{Root: "/r", GeneratedAt: time.Unix(0, 0).UTC()}
	out := report.Build(meta, nil)
	assert.NotContains(t, out, "SUCCESSFUL MODIFICATIONS")
	assert.NotContains(t, out, "FAILED MODIFICATIONS")
	assert.Contains(t, out, "Summary: 0 successful, 0 failed")
}

func TestBuild_OrderPreserved(t *testing.T) {
	meta := report.Meta{Root: "/r", GeneratedAt: time.Unix(0, 0).UTC()}
	out := report.Build(meta, sampleOutcomes())
	first := strings.Index(out, "a.go")
	second := strings.Index(out, "c.go")
	require.Greater(t, first, 0)
	assert.Greater(t, second, first)
}

func TestCounts(t *testing.T) {
	succeeded, failed := report.Counts(sampleOutcomes())
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, failed)
}
