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

// Package hbt is a height balanced (AVL) binary search tree over int32
// keys, built from a log of insert/delete operations and persisted in a
// compact pre-order binary format.
//
// Note: a tree is not safe for concurrent use. Every build or evaluate
// owns its tree for the whole of its lifetime.
//
// Duplicate keys are allowed and always descend to the left, so a
// valid tree keeps left <= key < right at every node.
package hbt

// Node is a single tree element. The key doubles as the payload.
type Node struct {
	Key   int32
	Left  *Node
	Right *Node

	// Balance is height(Left) - height(Right) as of the last time insert,
	// delete or a rotation touched this node. Ancestor rotations do not
	// refresh it and no algorithm reads it back.
	Balance int
}

func newNode(key int32) *Node {
	return &Node{Key: key}
}

// Tree holds the root node of a tree
type Tree struct {
	root *Node
}

// New creates an initially empty tree
func New() *Tree {
	return &Tree{root: nil}
}

// FromRoot wraps an existing node structure, such as one returned by a
// Decoder.
func FromRoot(root *Node) *Tree {
	return &Tree{root: root}
}

// Root returns the root node, nil for an empty tree
func (tree *Tree) Root() *Node {
	return tree.root
}

// IsEmpty reports whether the tree holds no nodes
func (tree *Tree) IsEmpty() bool {
	return tree.root == nil
}

// Count walks the tree and returns the number of nodes
func (tree *Tree) Count() int {
	nodes := 0
	preOrder(tree.root, func(*Node) {
		nodes += 1
	})
	return nodes
}

// Insert adds key to the tree, rebalancing on the way back up.
func (tree *Tree) Insert(key int32) {
	tree.root = Insert(tree.root, key)
}

// Delete removes the first node matching key. Absent keys are ignored.
func (tree *Tree) Delete(key int32) {
	tree.root = Delete(tree.root, key)
}

// Height returns the height of the whole tree
func (tree *Tree) Height() int {
	return Height(tree.root)
}

// Keys returns the keys in in-order sequence
func (tree *Tree) Keys() []int32 {
	keys := make([]int32, 0)
	inOrder(tree.root, func(n *Node) bool {
		keys = append(keys, n.Key)
		return true
	})
	return keys
}

// Release drops every node of the tree.
func (tree *Tree) Release() {
	preOrder(tree.root, func(n *Node) {
		n.Left = nil
		n.Right = nil
	})
	tree.root = nil
}

// preOrder visits every node of the subtree. visit may clear the links
// of the node it is given; its children have already been queued.
func preOrder(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
		visit(n)
	}
}

// inOrder visits the subtree in key order until visit returns false
func inOrder(root *Node, visit func(*Node) bool) {
	var stack []*Node
	n := root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.Left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n) {
			return
		}
		n = n.Right
	}
}

// minNode and maxNode follow the outer edge of a non-empty subtree
func minNode(n *Node) *Node {
	for n.Left != nil {
		n = n.Left
	}
	return n
}

func maxNode(n *Node) *Node {
	for n.Right != nil {
		n = n.Right
	}
	return n
}
