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

// StrictBST checks every node locally: the largest key of its left
// subtree must not exceed the node's key and the smallest key of its
// right subtree must be greater. The extremes are found by walking the
// outer edge of each subtree.
func StrictBST(root *Node) bool {
	if root == nil {
		return true
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Left != nil {
			if maxNode(n.Left).Key > n.Key {
				return false
			}
			stack = append(stack, n.Left)
		}
		if n.Right != nil {
			if minNode(n.Right).Key <= n.Key {
				return false
			}
			stack = append(stack, n.Right)
		}
	}
	return true
}

// InOrderBST checks that an in-order walk never steps to a smaller key.
// Unlike StrictBST it accepts a key equal to its parent in a right
// subtree. The evaluate report does not use it.
func InOrderBST(root *Node) bool {
	started := false
	last := int32(0)
	ok := true
	inOrder(root, func(n *Node) bool {
		if started && last > n.Key {
			ok = false
			return false
		}
		started = true
		last = n.Key
		return true
	})
	return ok
}

// heightFrame is a node of BalancedHeight's post-order walk. state counts
// the children already measured.
type heightFrame struct {
	n     *Node
	lh    int
	state int
}

// BalancedHeight returns the height of n, or -1 as soon as any subtree
// is found whose children differ in height by more than one.
func BalancedHeight(root *Node) int {
	if root == nil {
		return 0
	}

	// h is the height of the subtree finished last
	h := 0
	stack := []heightFrame{{n: root}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		switch f.state {
		case 0:
			f.state = 1
			if f.n.Left != nil {
				stack = append(stack, heightFrame{n: f.n.Left})
				continue
			}
			h = 0
		case 1:
			f.lh = h
			f.state = 2
			if f.n.Right != nil {
				stack = append(stack, heightFrame{n: f.n.Right})
				continue
			}
			h = 0
		default:
			lh, rh := f.lh, h
			if lh-rh > 1 || rh-lh > 1 {
				return -1
			}
			h = max(lh, rh) + 1
			stack = stack[:len(stack)-1]
		}
	}
	return h
}

// Balanced reports whether every node satisfies the AVL height condition
func Balanced(n *Node) bool {
	return BalancedHeight(n) >= 0
}
