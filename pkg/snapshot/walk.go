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

// Package snapshot produces read-only views of a working tree: the XML
// codebase document consumed by upstream AI tooling, and a markdown file
// tree. Both are stateless directory walkers with no coupling to the
// modification engine.
package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a snapshot walk
type Options struct {
	Root          string   // tree root
	Depth         int      // maximum traversal depth, 0 means DefaultDepth
	Excludes      []string // extra doublestar patterns to skip
	MaxFileSize   int64    // content-inclusion cap in bytes, 0 means DefaultMaxFileSize
	SkipGitignore bool     // do not honor .gitignore files
}

const (
	DefaultDepth       = 10
	DefaultMaxFileSize = 256 * 1024
)

// defaultExcludes are names never worth snapshotting
var defaultExcludes = []string{
	".git", ".vscode", "node_modules", "__pycache__", "dist", "build",
	".DS_Store", "coverage", ".next", "out", "logs", ".env",
	"file_tree.md", ".gitignore", "codebase.xml", "modifications.xml", "backups",
}

// lockFiles have their content omitted, only metadata is kept
var lockFiles = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
}

// binaryExtensions mark files whose content is never inlined
var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".svg": true, ".eot": true, ".ttf": true, ".woff": true, ".woff2": true,
	".otf": true, ".zip": true, ".gz": true, ".db": true, ".exe": true,
	".dll": true, ".so": true, ".dylib": true, ".pdf": true, ".doc": true,
	".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
}

// 🌲 node is one entry in the walked tree
type node struct {
	name     string
	rel      string // path relative to the root, "/" separated
	isDir    bool
	children []*node
}

// gitignoreRule is one pattern scoped to the directory whose .gitignore
// declared it.
type gitignoreRule struct {
	pattern string
	dir     string // directory the pattern is relative to
}

func (opts *Options) depth() int {
	if opts.Depth <= 0 {
		return DefaultDepth
	}
	return opts.Depth
}

func (opts *Options) maxFileSize() int64 {
	if opts.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return opts.MaxFileSize
}

// 🚶 walk builds the filtered tree under opts.Root
func walk(ctx context.Context, opts Options) (*node, error) {
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Errorf("root path is not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root path is not a directory: %s", absRoot)
	}

	root := &node{name: filepath.Base(absRoot), rel: ".", isDir: true}
	walkDir(ctx, opts, absRoot, absRoot, root, 0, nil)
	return root, nil
}

func walkDir(ctx context.Context, opts Options, absRoot, dir string, parent *node, depth int, inherited []gitignoreRule) {
	if depth >= opts.depth() {
		return
	}

	rules := inherited
	if !opts.SkipGitignore {
		rules = append(rules[:len(rules):len(rules)], readGitignore(ctx, dir)...)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("could not access directory")
		return
	}

	// Directories first, then case-insensitive by name.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, e := range entries {
		abs := filepath.Join(dir, e.Name())
		if excluded(abs, e.Name(), e.IsDir(), opts, rules) {
			continue
		}

		rel, err := filepath.Rel(absRoot, abs)
		if err != nil {
			continue
		}
		child := &node{
			name:  e.Name(),
			rel:   filepath.ToSlash(rel),
			isDir: e.IsDir(),
		}
		parent.children = append(parent.children, child)

		if e.IsDir() {
			walkDir(ctx, opts, absRoot, abs, child, depth+1, rules)
		}
	}
}

// 🙈 excluded decides whether a path is skipped by the default set, user
// patterns, or an applicable gitignore rule.
func excluded(abs, name string, isDir bool, opts Options, rules []gitignoreRule) bool {
	for _, ex := range defaultExcludes {
		if name == ex {
			return true
		}
	}

	for _, pattern := range opts.Excludes {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	for _, rule := range rules {
		pattern := rule.pattern
		dirOnly := strings.HasSuffix(pattern, "/")
		if dirOnly {
			if !isDir {
				continue
			}
			pattern = strings.TrimSuffix(pattern, "/")
		}

		rel, err := filepath.Rel(rule.dir, abs)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}

// readGitignore collects the patterns of dir/.gitignore, if any
func readGitignore(ctx context.Context, dir string) []gitignoreRule {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}

	var rules []gitignoreRule
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, gitignoreRule{pattern: line, dir: dir})
	}
	return rules
}
