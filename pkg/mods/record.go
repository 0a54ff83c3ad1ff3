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

// Package mods defines the modification record model and parses batches of
// records from their XML document form.
package mods

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind identifies the four supported modification operations.
type Kind int

const (
	KindUnknown Kind = iota
	KindCreateFile
	KindDeleteFile
	KindReplaceFile
	KindReplaceSection
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindCreateFile:
		return "CREATE_FILE"
	case KindDeleteFile:
		return "DELETE_FILE"
	case KindReplaceFile:
		return "REPLACE_FILE"
	case KindReplaceSection:
		return "REPLACE_SECTION"
	default:
		return "UNKNOWN"
	}
}

// 🔎 ParseKind maps a wire name onto a Kind, KindUnknown for anything else
func ParseKind(s string) Kind {
	switch s {
	case "CREATE_FILE":
		return KindCreateFile
	case "DELETE_FILE":
		return KindDeleteFile
	case "REPLACE_FILE":
		return KindReplaceFile
	case "REPLACE_SECTION":
		return KindReplaceSection
	default:
		return KindUnknown
	}
}

// 📦 Record is one requested change to the working tree. Payload fields are
// kind-dependent: Content carries the file body for CREATE_FILE and
// REPLACE_FILE, OldText/NewText carry the section anchor and its replacement
// for REPLACE_SECTION, Reason is optional human context for destructive kinds.
type Record struct {
	Kind    Kind
	RawKind string // kind attribute as written in the document
	Path    string
	Content string
	Reason  string
	OldText string
	NewText string
}

// 🔍 Validate checks the invariants a record must satisfy before it is
// applied: a known kind, a path, and the payload fields its kind requires.
// Violations are record-local failures, not run-fatal ones.
func (r *Record) Validate() error {
	if r.Kind == KindUnknown {
		return errors.Errorf("unknown modification type: %q", r.RawKind)
	}
	if strings.TrimSpace(r.Path) == "" {
		return errors.Errorf("%s missing path attribute", r.Kind)
	}

	switch r.Kind {
	case KindCreateFile:
		if strings.TrimSpace(r.Content) == "" {
			return errors.Errorf("no content found for %s", r.Path)
		}
	case KindReplaceFile:
		if strings.TrimSpace(r.Content) == "" {
			return errors.Errorf("no new content found for %s", r.Path)
		}
	case KindReplaceSection:
		if strings.TrimSpace(r.OldText) == "" {
			return errors.Errorf("no old_content found for %s", r.Path)
		}
		if strings.TrimSpace(r.NewText) == "" {
			return errors.Errorf("no new_content found for %s", r.Path)
		}
	case KindDeleteFile:
		// path is the whole payload; reason stays optional
	}

	return nil
}

// DisplayKind returns the kind name to use in outcomes and reports,
// preferring the raw document spelling for unrecognized kinds.
func (r *Record) DisplayKind() string {
	if r.Kind == KindUnknown && r.RawKind != "" {
		return r.RawKind
	}
	return r.Kind.String()
}

// ReasonOrDefault returns the record's reason, or a placeholder when the
// document omitted one.
func (r *Record) ReasonOrDefault() string {
	if strings.TrimSpace(r.Reason) == "" {
		return "No reason provided"
	}
	return strings.TrimSpace(r.Reason)
}
