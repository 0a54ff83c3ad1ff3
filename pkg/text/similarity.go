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

package text

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// 📐 Similarity returns a 0..1 ratio describing how alike two code blocks
// are once normalized. The ratio is the Ratcliff/Obershelp longest-matching-
// blocks measure computed character by character, so formatting and comment
// drift between the two inputs does not count against the score.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	matcher := difflib.NewMatcher(splitChars(na), splitChars(nb))
	return matcher.Ratio()
}

// splitChars breaks a string into per-rune elements for the sequence matcher.
func splitChars(s string) []string {
	return strings.Split(s, "")
}
