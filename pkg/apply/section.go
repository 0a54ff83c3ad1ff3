// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apply

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/mods"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ReplaceSection swaps one region of a file for new content. The anchor
// (old text) is located by exact substring match first; only when that
// misses does the fuzzy window scan run, so verbatim anchors never pay for
// similarity scoring.
func (a *Applier) ReplaceSection(ctx context.Context, rec mods.Record) (string, error) {
	target := a.target(rec.Path)

	raw, err := os.ReadFile(target)
	if err != nil {
		return "", errors.Errorf("file %s does not exist, cannot replace section", rec.Path)
	}
	content := string(raw)

	// Exact pass: replace the first occurrence only.
	if strings.Contains(content, rec.OldText) {
		if a.cfg.DryRun {
			zerolog.Ctx(ctx).Info().Str("path", rec.Path).Msg("[dry run] would replace section via exact match")
			a.preview(rec.Path, rec.OldText, rec.NewText)
			return "exact match", nil
		}

		a.backups.Backup(ctx, target)
		updated := strings.Replace(content, rec.OldText, rec.NewText, 1)
		if err := writeFileAtomic(target, []byte(updated)); err != nil {
			return "", errors.Errorf("writing section replacement: %w", err)
		}

		zerolog.Ctx(ctx).Info().Str("path", rec.Path).Msg("replaced section (exact match)")
		return "exact match", nil
	}

	// Fuzzy fallback: slide an anchor-sized window over the file.
	anchorLines := text.Lines(rec.OldText)
	fileLines := text.Lines(content)
	start, score := bestWindow(rec.OldText, anchorLines, fileLines)

	if score < a.cfg.SimilarityThreshold {
		return "", errors.Errorf("no matching section found (best similarity: %.2f%%)", score*100)
	}

	detail := fmt.Sprintf("fuzzy match at lines %d-%d, similarity %.2f%%", start+1, start+len(anchorLines), score*100)

	if a.cfg.DryRun {
		zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("match", detail).Msg("[dry run] would replace section")
		a.preview(rec.Path, strings.Join(fileLines[start:start+len(anchorLines)], "\n"), rec.NewText)
		return detail, nil
	}

	a.backups.Backup(ctx, target)

	var updated []string
	updated = append(updated, fileLines[:start]...)
	updated = append(updated, text.Lines(rec.NewText)...)
	updated = append(updated, fileLines[start+len(anchorLines):]...)

	joined := strings.Join(updated, "\n")
	if strings.HasSuffix(content, "\n") {
		joined += "\n"
	}
	if err := writeFileAtomic(target, []byte(joined)); err != nil {
		return "", errors.Errorf("writing section replacement: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("match", detail).Msg("replaced section")
	return detail, nil
}

// 🎯 bestWindow scans every anchor-sized line window of the file and returns
// the offset of the highest-scoring one. Ties keep the earliest window:
// the best score is only displaced by a strictly greater one. An anchor
// longer than the file yields (-1, 0) — no valid window.
func bestWindow(anchor string, anchorLines, fileLines []string) (int, float64) {
	bestStart, bestScore := -1, 0.0
	for i := 0; i+len(anchorLines) <= len(fileLines); i++ {
		window := strings.Join(fileLines[i:i+len(anchorLines)], "\n")
		score := text.Similarity(anchor, window)
		if score > bestScore {
			bestScore, bestStart = score, i
		}
	}
	return bestStart, bestScore
}
