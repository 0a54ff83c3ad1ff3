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

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/mods"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// shrinkGuard thresholds: a file over guardMinLines lines that would lose
// more than guardMaxShrink lines is assumed to be a mistaken truncation.
const (
	guardMinLines  = 50
	guardMaxShrink = 50
)

// 📝 ReplaceFile overwrites an existing file's full content, backing it up
// first. A large shrink of a large file trips the guard-rail and fails the
// record instead; intentional mass deletions should be re-submitted as
// DELETE_FILE plus CREATE_FILE.
func (a *Applier) ReplaceFile(ctx context.Context, rec mods.Record) (string, error) {
	target := a.target(rec.Path)

	existing, err := os.ReadFile(target)
	if err != nil {
		return "", errors.Errorf("file %s does not exist, cannot replace", rec.Path)
	}

	existingLines := len(text.Lines(string(existing)))
	newLines := len(text.Lines(rec.Content))
	if existingLines > guardMinLines && existingLines-newLines > guardMaxShrink {
		return "", errors.Errorf("significant size reduction blocked (%d -> %d lines)", existingLines, newLines)
	}

	detail := fmt.Sprintf("%d -> %d lines", existingLines, newLines)
	zerolog.Ctx(ctx).Debug().Str("reason", rec.ReasonOrDefault()).Msg("replace file reason")

	if a.cfg.DryRun {
		zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("lines", detail).Msg("[dry run] would replace file")
		a.preview(rec.Path, string(existing), rec.Content)
		return detail, nil
	}

	a.backups.Backup(ctx, target)
	if err := writeFileAtomic(target, []byte(rec.Content)); err != nil {
		return "", errors.Errorf("writing replacement: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("lines", detail).Msg("replaced file")
	return detail, nil
}
