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
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 Backups mirrors files about to be mutated into a backup root, keeping
// the same tree-relative layout. Backups are a best-effort side channel: a
// failed copy is logged and the mutation proceeds.
type Backups struct {
	root   string // working-tree root, for relative path computation
	dir    string // backup root; empty disables backups
	dryRun bool
}

// 🏭 NewBackups creates a backup manager
func NewBackups(root, dir string, dryRun bool) *Backups {
	return &Backups{root: root, dir: dir, dryRun: dryRun}
}

// 💾 Backup copies the file at absPath into the backup root before a
// destructive mutation. Returns the backup path and whether a backup was
// made. No-ops when backups are disabled, under dry-run, or when the target
// does not exist yet.
func (b *Backups) Backup(ctx context.Context, absPath string) (string, bool) {
	if b.dir == "" || b.dryRun {
		return "", false
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", false
	}

	logger := zerolog.Ctx(ctx)

	rel, err := filepath.Rel(b.root, absPath)
	if err != nil {
		logger.Warn().Err(err).Str("file", absPath).Msg("could not backup file")
		return "", false
	}

	backupPath := filepath.Join(b.dir, rel)
	if err := copyFilePreserving(absPath, backupPath); err != nil {
		logger.Warn().Err(err).Str("file", absPath).Msg("could not backup file")
		return "", false
	}

	logger.Debug().Str("file", absPath).Str("backup", backupPath).Msg("backed up file")
	return backupPath, true
}

// copyFilePreserving copies src to dst, creating parent directories and
// carrying over the source's mode and timestamps.
func copyFilePreserving(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}
	if err := os.Chmod(dst, info.Mode()); err != nil {
		return errors.Errorf("preserving file mode: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving file times: %w", err)
	}

	return nil
}
