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

// Package diff renders line-oriented previews of pending file changes,
// used by dry-run output.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxPreviewLines caps how much of a preview we emit; huge payloads get
// truncated rather than flooding the console.
const maxPreviewLines = 200

// 📝 Preview returns a +/- line preview of replacing old with new. Returns
// the empty string when the contents are identical.
func Preview(old, new string) string {
	if old == new {
		return ""
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var out []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, prefix+line)
			if len(out) >= maxPreviewLines {
				out = append(out, "... (preview truncated)")
				return strings.Join(out, "\n")
			}
		}
	}

	return strings.Join(out, "\n")
}
