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

// Package report accumulates per-record outcomes and renders the batch
// summary report.
package report

import (
	"fmt"
	"strings"
	"time"
)

// 📊 Status is the terminal state of one applied record
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

// String returns a string representation of Status
func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// 📄 Outcome records how a single modification ended. Outcomes are created
// once per record, in record order, and never mutated afterwards.
type Outcome struct {
	Kind   string // display name of the record's kind
	Path   string // tree-relative target path
	Status Status
	Err    string // failure detail, empty on success
}

// 📋 Meta carries the run-level facts the report header shows
type Meta struct {
	Root        string
	DryRun      bool
	GeneratedAt time.Time
}

const banner = "============================================================"

// 📝 Build renders the ordered outcome list into the human-readable batch
// report: header, successes, failures with their error text, and a numeric
// summary. Pure over its inputs; calling it twice yields the same text.
func Build(meta Meta, outcomes []Outcome) string {
	var succeeded, failed []Outcome
	for _, o := range outcomes {
		if o.Status == StatusSuccess {
			succeeded = append(succeeded, o)
		} else {
			failed = append(failed, o)
		}
	}

	dryRun := "No"
	if meta.DryRun {
		dryRun = "Yes"
	}

	lines := []string{
		banner,
		"CODE MODIFICATION REPORT",
		banner,
		fmt.Sprintf("Timestamp: %s", meta.GeneratedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Root Path: %s", meta.Root),
		fmt.Sprintf("Dry Run: %s", dryRun),
		"",
	}

	if len(succeeded) > 0 {
		lines = append(lines, fmt.Sprintf("SUCCESSFUL MODIFICATIONS (%d):", len(succeeded)))
		for _, o := range succeeded {
			lines = append(lines, fmt.Sprintf("✓ %s: %s", o.Kind, o.Path))
		}
		lines = append(lines, "")
	}

	if len(failed) > 0 {
		lines = append(lines, fmt.Sprintf("FAILED MODIFICATIONS (%d):", len(failed)))
		for _, o := range failed {
			lines = append(lines, fmt.Sprintf("✗ %s: %s\n  Error: %s", o.Kind, o.Path, o.Err))
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		fmt.Sprintf("Summary: %d successful, %d failed", len(succeeded), len(failed)),
		banner,
	)

	return strings.Join(lines, "\n")
}

// 🔢 Counts tallies the outcome list into (succeeded, failed)
func Counts(outcomes []Outcome) (int, int) {
	var succeeded, failed int
	for _, o := range outcomes {
		if o.Status == StatusSuccess {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
