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

// Delete removes the first node whose key equals key and returns the
// possibly new subtree root. Deleting an absent key leaves the shape
// unchanged, although the cached balance of every node on the search
// path is rewritten.
//
// A node with two children takes the key of its in-order predecessor,
// which is then deleted from the left subtree.
func Delete(root *Node, key int32) *Node {
	if root == nil {
		return nil
	}

	switch {
	case key < root.Key:
		root.Left = Delete(root.Left, key)
	case key > root.Key:
		root.Right = Delete(root.Right, key)
	default:
		if root.Left == nil || root.Right == nil {
			child := root.Left
			if child == nil {
				child = root.Right
			}
			detach(root)
			return child
		}

		pred := maxNode(root.Left)
		root.Key = pred.Key
		root.Left = Delete(root.Left, pred.Key)
	}

	root.Balance = balanceOf(root)

	// left heavy
	if root.Balance > 1 {
		if Height(root.Left.Left) < Height(root.Left.Right) {
			root.Left = rotateLeft(root.Left)
		}
		return rotateRight(root)
	}

	// right heavy
	if root.Balance < -1 {
		if Height(root.Right.Right) < Height(root.Right.Left) {
			root.Right = rotateRight(root.Right)
		}
		return rotateLeft(root)
	}

	return root
}

// detach clears the links of a node that has just been unhooked
func detach(n *Node) {
	n.Left = nil
	n.Right = nil
	n.Balance = 0
}
