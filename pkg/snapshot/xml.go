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

package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// readConcurrency bounds how many files are read at once
const readConcurrency = 8

// languageMap maps extensions to the language attribute of file elements
var languageMap = map[string]string{
	".py": "python", ".js": "javascript", ".jsx": "javascript", ".mjs": "javascript",
	".cjs": "javascript", ".ts": "typescript", ".tsx": "typescript", ".html": "html",
	".css": "css", ".json": "json", ".xml": "xml", ".kt": "kotlin", ".kts": "kotlin",
	".java": "java", ".md": "markdown", ".sh": "bash", ".yml": "yaml", ".yaml": "yaml",
	".go": "go", ".rb": "ruby", ".php": "php", ".c": "c", ".cpp": "cpp", ".h": "c",
	".rs": "rust", ".swift": "swift", ".txt": "text", ".gradle": "groovy", ".sql": "sql",
	".pl": "perl", ".r": "r", ".scala": "scala", ".clj": "clojure",
}

// fileContent is the result of reading one file for serialization
type fileContent struct {
	content string
	status  string // "ok", or the reason content was omitted
	size    int64
	modTime int64
}

// 📸 WriteXML serializes the tree under opts.Root into the XML codebase
// document: a metadata header, a CDATA tree summary, and a nested structure
// of directory and file elements with file bodies in CDATA. File contents
// are read concurrently; output order follows the deterministic walk.
func WriteXML(ctx context.Context, opts Options, w io.Writer) error {
	root, err := walk(ctx, opts)
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return errors.Errorf("resolving root path: %w", err)
	}

	contents, err := readAll(ctx, opts, absRoot, root)
	if err != nil {
		return errors.Errorf("reading tree contents: %w", err)
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<codebase root=\"%s\">\n", escapeAttr(root.name))

	b.WriteString("  <metadata>\n")
	fmt.Fprintf(&b, "    <root_path>%s</root_path>\n", escapeAttr(absRoot))
	b.WriteString("  </metadata>\n")

	b.WriteString("  <summary>\n")
	fmt.Fprintf(&b, "    %s\n", cdata(renderTree(root)))
	b.WriteString("  </summary>\n")

	b.WriteString("  <structure>\n")
	writeNodes(&b, root.children, contents, "    ")
	b.WriteString("  </structure>\n")
	b.WriteString("</codebase>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Errorf("writing XML output: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("root", absRoot).Msg("serialized codebase to XML")
	return nil
}

// readAll loads every file in the tree, at most readConcurrency at a time
func readAll(ctx context.Context, opts Options, absRoot string, root *node) (map[string]fileContent, error) {
	var files []*node
	collectFiles(root, &files)

	results := make([]fileContent, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = readFile(filepath.Join(absRoot, filepath.FromSlash(f.rel)), f.name, opts.maxFileSize())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	contents := make(map[string]fileContent, len(files))
	for i, f := range files {
		contents[f.rel] = results[i]
	}
	return contents, nil
}

func collectFiles(n *node, out *[]*node) {
	for _, c := range n.children {
		if c.isDir {
			collectFiles(c, out)
		} else {
			*out = append(*out, c)
		}
	}
}

// readFile classifies and loads one file's content
func readFile(abs, name string, maxSize int64) fileContent {
	info, err := os.Stat(abs)
	if err != nil {
		return fileContent{status: "access_error"}
	}

	fc := fileContent{
		status:  "ok",
		size:    info.Size(),
		modTime: info.ModTime().Unix(),
	}

	switch {
	case info.Size() > maxSize:
		fc.status = "omitted_large"
	case binaryExtensions[strings.ToLower(filepath.Ext(name))]:
		fc.status = "binary"
	case lockFiles[name]:
		fc.status = "lock_file"
	default:
		data, err := os.ReadFile(abs)
		if err != nil {
			fc.status = "read_error"
			break
		}
		fc.content = string(data)
		if strings.TrimSpace(fc.content) == "" {
			fc.status = "empty"
		}
	}

	return fc
}

// writeNodes renders the nested directory/file elements
func writeNodes(b *strings.Builder, nodes []*node, contents map[string]fileContent, indent string) {
	for _, n := range nodes {
		if n.isDir {
			fmt.Fprintf(b, "%s<directory name=\"%s\">\n", indent, escapeAttr(n.name))
			writeNodes(b, n.children, contents, indent+"  ")
			fmt.Fprintf(b, "%s</directory>\n", indent)
			continue
		}

		fc := contents[n.rel]
		attrs := fmt.Sprintf(`path="%s" language="%s" size="%d" last_modified="%d"`,
			escapeAttr(n.rel), escapeAttr(language(n.name)), fc.size, fc.modTime)

		if fc.status == "ok" {
			attrs += fmt.Sprintf(` lines="%d"`, strings.Count(fc.content, "\n")+1)
			fmt.Fprintf(b, "%s<file %s>\n", indent, attrs)
			fmt.Fprintf(b, "%s  %s\n", indent, cdata(fc.content))
			fmt.Fprintf(b, "%s</file>\n", indent)
		} else {
			attrs += fmt.Sprintf(` status="%s" lines="0"`, escapeAttr(fc.status))
			fmt.Fprintf(b, "%s<file %s />\n", indent, attrs)
		}
	}
}

// language returns the language attribute for a file name
func language(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := languageMap[ext]; ok {
		return lang
	}
	return strings.TrimPrefix(ext, ".")
}

// escapeAttr escapes text for use inside an XML attribute value
func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// cdata wraps content in a CDATA section, splitting any embedded terminator
func cdata(content string) string {
	return "<![CDATA[" + strings.ReplaceAll(content, "]]>", "]]]]><![CDATA[>") + "]]>"
}
