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

// Package apply is the modification-application engine: it locates each
// record's target in the working tree, mutates it safely, and reports the
// outcome. Section replacement falls back from exact string matching to
// fuzzy window matching when the anchor text has drifted.
package apply

import (
	"os"
	"path/filepath"

	"github.com/walteh/patchrc/pkg/diff"
	"github.com/walteh/patchrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Config is the process-wide applier configuration, immutable for a run
type Config struct {
	Root                string  // absolute working-tree root
	BackupDir           string  // optional backup root; empty disables backups
	DryRun              bool    // report would-be actions, mutate nothing
	SimilarityThreshold float64 // minimum fuzzy-match score, 0..1
	ShowDiff            bool    // emit diff previews under dry-run
}

// DefaultSimilarityThreshold is the fuzzy-match cutoff used when none is
// configured.
const DefaultSimilarityThreshold = 0.95

// 🏭 NewConfig resolves and validates a run configuration. A missing or
// non-directory root is run-fatal. The backup directory is created up front
// unless this is a dry run.
func NewConfig(root, backupDir string, dryRun bool, threshold float64) (Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, errors.Errorf("resolving root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Config{}, errors.Errorf("root path is not accessible: %w", err)
	}
	if !info.IsDir() {
		return Config{}, errors.Errorf("root path is not a directory: %s", absRoot)
	}

	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	if threshold < 0 || threshold > 1 {
		return Config{}, errors.Errorf("similarity threshold must be within 0.0-1.0, got %v", threshold)
	}

	if backupDir != "" {
		if backupDir, err = filepath.Abs(backupDir); err != nil {
			return Config{}, errors.Errorf("resolving backup dir: %w", err)
		}
		if !dryRun {
			if err := os.MkdirAll(backupDir, 0755); err != nil {
				return Config{}, errors.Errorf("creating backup dir: %w", err)
			}
		}
	}

	return Config{
		Root:                absRoot,
		BackupDir:           backupDir,
		DryRun:              dryRun,
		SimilarityThreshold: threshold,
	}, nil
}

// 🎮 Applier performs single modifications against the working tree
type Applier struct {
	cfg     Config
	backups *Backups
	console *log.Logger // optional, for dry-run previews
}

// 🏭 NewApplier creates an applier for the given run configuration
func NewApplier(cfg Config) *Applier {
	return &Applier{
		cfg:     cfg,
		backups: NewBackups(cfg.Root, cfg.BackupDir, cfg.DryRun),
	}
}

// target resolves a tree-relative record path against the root
func (a *Applier) target(relPath string) string {
	return filepath.Join(a.cfg.Root, relPath)
}

// preview emits a dry-run diff preview when enabled
func (a *Applier) preview(path, old, new string) {
	if a.console == nil || !a.cfg.DryRun || !a.cfg.ShowDiff {
		return
	}
	a.console.Diff(path, diff.Preview(old, new))
}

// writeFileAtomic writes content via a temp file and rename so a failure
// never leaves a partially written target behind.
func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
