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

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/apply"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/mods"
	"github.com/walteh/patchrc/pkg/report"
	"gitlab.com/tozd/go/errors"
)

// ErrRecordsFailed signals that the batch ran to completion but at least one
// record could not be applied. The caller maps it to its own exit code.
var ErrRecordsFailed = errors.New("one or more modifications failed")

// NewApplyCmd creates a new apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		root       string
		backupDir  string
		dryRun     bool
		threshold  float64
		reportFile string
		showDiff   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <modifications.xml>",
		Short: "Apply a batch of modification records to the working tree",
		Long: `Apply reads an XML modification document and applies each record in
order. It will:
1. Parse and validate the document
2. Apply each record independently, backing up touched files
3. Print a report of successful and failed records

A record that cannot be applied never aborts the batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			// File config supplies defaults, explicit flags win.
			fileCfg := ro.Config
			if !cmd.Flags().Changed("root") && fileCfg.Root != "" {
				root = fileCfg.Root
			}
			if !cmd.Flags().Changed("backup-dir") && fileCfg.BackupDir != "" {
				backupDir = fileCfg.BackupDir
			}
			if !cmd.Flags().Changed("dry-run") && fileCfg.DryRun {
				dryRun = true
			}
			if !cmd.Flags().Changed("similarity-threshold") && fileCfg.SimilarityThreshold != 0 {
				threshold = fileCfg.SimilarityThreshold
			}
			if !cmd.Flags().Changed("report-file") && fileCfg.ReportFile != "" {
				reportFile = fileCfg.ReportFile
			}
			if !cmd.Flags().Changed("show-diff") && fileCfg.ShowDiff {
				showDiff = true
			}

			cfg, err := apply.NewConfig(root, backupDir, dryRun, threshold)
			if err != nil {
				return errors.Errorf("configuring run: %w", err)
			}
			cfg.ShowDiff = showDiff

			records, err := mods.ParseBatchFile(ctx, args[0])
			if err != nil {
				return errors.Errorf("reading modification document: %w", err)
			}

			console := ro.Console
			console.Header(fmt.Sprintf("applying %s from %s", apply.Describe(records), filepath.Base(args[0])))

			engine := apply.NewEngine(apply.Options{Config: cfg, Console: console})
			outcomes := engine.Apply(ctx, records)

			rpt := report.Build(report.Meta{
				Root:        cfg.Root,
				DryRun:      cfg.DryRun,
				GeneratedAt: time.Now(),
			}, outcomes)

			fmt.Println()
			fmt.Println(rpt)

			if reportFile != "" {
				if err := os.WriteFile(reportFile, []byte(rpt+"\n"), 0o644); err != nil {
					console.Warning(fmt.Sprintf("could not write report file: %v", err))
				} else {
					console.Infof("report written to %s", reportFile)
				}
			}

			succeeded, failed := report.Counts(outcomes)
			log.Summary(succeeded, failed, cfg.DryRun)

			if failed > 0 {
				return ErrRecordsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", ".", "working-tree root the record paths resolve against")
	cmd.Flags().StringVarP(&backupDir, "backup-dir", "b", "", "directory receiving pre-modification copies (disabled when empty)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report would-be actions without touching any file")
	cmd.Flags().Float64VarP(&threshold, "similarity-threshold", "t", apply.DefaultSimilarityThreshold, "minimum fuzzy-match score, 0..1")
	cmd.Flags().StringVar(&reportFile, "report-file", "", "also write the report to this file")
	cmd.Flags().BoolVar(&showDiff, "show-diff", false, "print diff previews for dry-run replacements")

	return cmd
}
