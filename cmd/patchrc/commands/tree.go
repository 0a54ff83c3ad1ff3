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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/snapshot"
	"gitlab.com/tozd/go/errors"
)

// NewTreeCmd creates a new tree command
func NewTreeCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		output        string
		excludes      []string
		depth         int
		skipGitignore bool
	)

	cmd := &cobra.Command{
		Use:   "tree [root]",
		Short: "Print a directory tree of a source tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "tree").Logger().WithContext(cmd.Context())

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			out, err := snapshot.Tree(ctx, snapshot.Options{
				Root:          root,
				Depth:         depth,
				Excludes:      append(append([]string{}, ro.Config.Excludes...), excludes...),
				SkipGitignore: skipGitignore,
			})
			if err != nil {
				return errors.Errorf("rendering tree: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
					return errors.Errorf("writing tree file: %w", err)
				}
				ro.Console.Success("tree written to " + output)
				return nil
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tree to this file instead of stdout")
	cmd.Flags().StringSliceVarP(&excludes, "exclude", "e", nil, "extra glob patterns to skip")
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum traversal depth (default 10)")
	cmd.Flags().BoolVar(&skipGitignore, "no-gitignore", false, "do not honor .gitignore files")

	return cmd
}
