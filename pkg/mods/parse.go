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

package mods

import (
	"context"
	"encoding/xml"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📄 xmlBatch is the document container. The root element must be
// <modifications>; anything else fails the whole run.
type xmlBatch struct {
	XMLName xml.Name          `xml:"modifications"`
	Mods    []xmlModification `xml:"modification"`
}

// 📄 xmlModification is one <modification> element. Body captures the
// element's own character data (the CDATA payload used by CREATE_FILE and
// REPLACE_FILE); section payloads arrive as child elements.
type xmlModification struct {
	Type       string `xml:"type,attr"`
	Path       string `xml:"path,attr"`
	Body       string `xml:",chardata"`
	Reason     string `xml:"reason"`
	OldContent string `xml:"old_content"`
	NewContent string `xml:"new_content"`
}

// 🎯 ParseBatch decodes an ordered batch of modification records from XML.
// Malformed documents are run-fatal; per-record problems (unknown kind,
// missing payload) are deliberately left for Record.Validate so one bad
// record cannot sink its siblings.
func ParseBatch(ctx context.Context, data []byte) ([]Record, error) {
	var batch xmlBatch
	if err := xml.Unmarshal(data, &batch); err != nil {
		return nil, errors.Errorf("invalid modifications XML: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("count", len(batch.Mods)).Msg("parsed modification records")

	records := make([]Record, 0, len(batch.Mods))
	for _, m := range batch.Mods {
		rec := Record{
			Kind:    ParseKind(m.Type),
			RawKind: m.Type,
			Path:    m.Path,
			Reason:  m.Reason,
			Content: Unwrap(m.Body),
			OldText: Unwrap(m.OldContent),
			NewText: Unwrap(m.NewContent),
		}
		records = append(records, rec)
	}

	return records, nil
}

// 🎯 ParseBatchFile reads and decodes a modifications document from disk
func ParseBatchFile(ctx context.Context, path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading modifications file: %w", err)
	}
	return ParseBatch(ctx, data)
}

// ✂️ Unwrap strips surrounding markdown code-fence lines from a payload.
// Upstream sources habitually wrap code in ```lang ... ``` fencing; only the
// marker lines are removed, the code between them is returned verbatim.
func Unwrap(content string) string {
	if content == "" {
		return ""
	}

	content = strings.TrimSpace(content)
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
