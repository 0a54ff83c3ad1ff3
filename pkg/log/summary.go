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

package log

import (
	"fmt"

	"github.com/pterm/pterm"
)

// 📢 Summary prints the end-of-run verdict with pterm's prefix printers
func Summary(succeeded, failed int, dryRun bool) {
	msg := fmt.Sprintf("%d applied, %d failed", succeeded, failed)
	if dryRun {
		msg += " (dry run)"
	}

	switch {
	case failed > 0 && succeeded == 0:
		pterm.Error.Println(msg)
	case failed > 0:
		pterm.Warning.Println(msg)
	default:
		pterm.Success.Println(msg)
	}
}
