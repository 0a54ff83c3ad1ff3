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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/mods"
	"gitlab.com/tozd/go/errors"
)

// 🗑️ DeleteFile removes an existing regular file, backing it up first
func (a *Applier) DeleteFile(ctx context.Context, rec mods.Record) (string, error) {
	target := a.target(rec.Path)

	info, err := os.Stat(target)
	if err != nil {
		return "", errors.Errorf("file %s does not exist, cannot delete", rec.Path)
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("path %s is not a regular file", rec.Path)
	}

	reason := rec.ReasonOrDefault()

	if a.cfg.DryRun {
		zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("reason", reason).Msg("[dry run] would delete file")
		return reason, nil
	}

	a.backups.Backup(ctx, target)
	if err := os.Remove(target); err != nil {
		return "", errors.Errorf("deleting file: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", rec.Path).Str("reason", reason).Msg("deleted file")
	return reason, nil
}
