// Copyright 2025 Naren Yellavula
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

package hbt

import (
	"fmt"
	"io"
)

// DrawLimit is the deepest level Fprint draws. A subtree starting below
// it is shown as a single "..." line.
const DrawLimit = 256

// connectors of the outline drawn by Fprint
const (
	connMiddle = "├─ "
	connLast   = "└─ "
	padMiddle  = "│  "
	padLast    = "   "
)

type drawItem struct {
	n      *Node
	indent string
	conn   string
	side   string
	level  int
}

// Fprint draws the tree as an indented outline, one node per line with
// its key and cached balance, left child before right. Children are
// tagged L or R. Returns the number of levels drawn.
func Fprint(w io.Writer, root *Node) int {
	if root == nil {
		return 0
	}

	levels := 0
	stack := []drawItem{{n: root, level: 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.level > DrawLimit {
			fmt.Fprintf(w, "%s%s...\n", it.indent, it.conn)
			continue
		}
		levels = max(levels, it.level)
		fmt.Fprintf(w, "%s%s%s%d %+d\n", it.indent, it.conn, it.side, it.n.Key, it.n.Balance)

		indent := it.indent
		switch it.conn {
		case connMiddle:
			indent += padMiddle
		case connLast:
			indent += padLast
		}

		// pushed in reverse so the left child comes out first
		if it.n.Right != nil {
			stack = append(stack, drawItem{n: it.n.Right, indent: indent, conn: connLast, side: "R ", level: it.level + 1})
		}
		if it.n.Left != nil {
			conn := connLast
			if it.n.Right != nil {
				conn = connMiddle
			}
			stack = append(stack, drawItem{n: it.n.Left, indent: indent, conn: conn, side: "L ", level: it.level + 1})
		}
	}
	return levels
}
