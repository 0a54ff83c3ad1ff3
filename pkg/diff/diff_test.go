package diff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/walteh/patchrc/pkg/diff"
)

func TestPreview(t *testing.T) {
	t.Run("identical_is_empty", func(t *testing.T) {
		assert.Empty(t, diff.Preview("a\nb\n", "a\nb\n"))
	})

	t.Run("shows_removed_and_added_lines", func(t *testing.T) {
		got := diff.Preview("a\nb\nc\n", "a\nx\nc\n")
		assert.Contains(t, got, "- b")
		assert.Contains(t, got, "+ x")
		assert.Contains(t, got, "  a")
	})

	t.Run("truncates_huge_previews", func(t *testing.T) {
		old := strings.Repeat("old line\n", 500)
		new := strings.Repeat("new line\n", 500)
		got := diff.Preview(old, new)
		assert.Contains(t, got, "(preview truncated)")
		assert.LessOrEqual(t, len(strings.Split(got, "\n")), 202)
	})
}
