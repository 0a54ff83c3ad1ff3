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
	"strings"
)

// tree drawing characters
const (
	treeSpace  = "    "
	treeBranch = "│   "
	treeTee    = "├── "
	treeCorner = "└── "
)

// 🌳 Tree renders the filtered file tree as text: one entry per line with
// branch characters, directories suffixed with "/", and a trailing
// directory/file count.
func Tree(ctx context.Context, opts Options) (string, error) {
	root, err := walk(ctx, opts)
	if err != nil {
		return "", err
	}

	var dirs, files int
	countNodes(root, &dirs, &files)

	var b strings.Builder
	b.WriteString(renderTree(root))
	fmt.Fprintf(&b, "\n\n%d directories, %d files\n", dirs, files)
	return b.String(), nil
}

// renderTree draws the tree without the trailing summary line
func renderTree(root *node) string {
	lines := []string{root.name + "/"}
	renderNodes(root.children, "", &lines)
	return strings.Join(lines, "\n")
}

func renderNodes(nodes []*node, prefix string, lines *[]string) {
	for i, n := range nodes {
		connector := treeTee
		childPrefix := prefix + treeBranch
		if i == len(nodes)-1 {
			connector = treeCorner
			childPrefix = prefix + treeSpace
		}

		name := n.name
		if n.isDir {
			name += "/"
		}
		*lines = append(*lines, prefix+connector+name)

		if n.isDir {
			renderNodes(n.children, childPrefix, lines)
		}
	}
}

func countNodes(n *node, dirs, files *int) {
	for _, c := range n.children {
		if c.isDir {
			*dirs++
			countNodes(c, dirs, files)
		} else {
			*files++
		}
	}
}
