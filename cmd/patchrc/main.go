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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

// Exit codes. Record-local failures and run-fatal errors are kept distinct
// so callers can tell a partially applied batch from one that never ran.
const (
	exitOK            = 0
	exitRecordsFailed = 1
	exitRunFatal      = 2
)

func main() {
	ro := &opts.RootOpts{}
	cmd := newRootCmd(ro)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, commands.ErrRecordsFailed) {
			// The report and summary already describe the failures.
			os.Exit(exitRecordsFailed)
		}
		fmt.Fprintf(os.Stderr, "patchrc: %v\n", err)
		os.Exit(exitRunFatal)
	}

	os.Exit(exitOK)
}
