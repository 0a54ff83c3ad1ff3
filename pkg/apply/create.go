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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/mods"
	"gitlab.com/tozd/go/errors"
)

// ✨ CreateFile writes a brand-new file. Refuses to clobber an existing
// path; parent directories are created as needed.
func (a *Applier) CreateFile(ctx context.Context, rec mods.Record) (string, error) {
	target := a.target(rec.Path)
	if _, err := os.Stat(target); err == nil {
		return "", errors.Errorf("file %s already exists, cannot create", rec.Path)
	}

	detail := fmt.Sprintf("%d chars", len(rec.Content))

	if a.cfg.DryRun {
		zerolog.Ctx(ctx).Info().Str("path", rec.Path).Int("chars", len(rec.Content)).Msg("[dry run] would create file")
		a.preview(rec.Path, "", rec.Content)
		return detail, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", errors.Errorf("creating parent directories: %w", err)
	}
	if err := writeFileAtomic(target, []byte(rec.Content)); err != nil {
		return "", errors.Errorf("writing new file: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", rec.Path).Msg("created file")
	return detail, nil
}
