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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/snapshot"
	"gitlab.com/tozd/go/errors"
)

// NewSnapshotCmd creates a new snapshot command
func NewSnapshotCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		output        string
		excludes      []string
		maxFileSize   int64
		depth         int
		skipGitignore bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot [root]",
		Short: "Write an XML snapshot of a source tree",
		Long: `Snapshot walks a source tree and writes a single XML document holding
the directory structure and the content of every text file, suitable for
feeding to tools that produce modification documents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "snapshot").Logger().WithContext(cmd.Context())

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			sopts := snapshot.Options{
				Root:          root,
				Depth:         depth,
				Excludes:      append(append([]string{}, ro.Config.Excludes...), excludes...),
				MaxFileSize:   maxFileSize,
				SkipGitignore: skipGitignore,
			}

			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return errors.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := snapshot.WriteXML(ctx, sopts, w); err != nil {
				return errors.Errorf("writing snapshot: %w", err)
			}

			if output != "" {
				ro.Console.Success("snapshot written to " + output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot to this file instead of stdout")
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "e", nil, "extra glob patterns to skip")
	cmd.Flags().Int64Var(&maxFileSize, "max-file-size", 0, "omit file content above this many bytes (default 256KiB)")
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum traversal depth (default 10)")
	cmd.Flags().BoolVar(&skipGitignore, "no-gitignore", false, "do not honor .gitignore files")

	return cmd
}
