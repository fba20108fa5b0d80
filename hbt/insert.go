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

// Insert adds key below root and returns the possibly new subtree root.
// A key equal to an existing one descends to the left.
//
// The rotation sub-case is picked by comparing the inserted key with
// the heavy child's key rather than by the child's balance factor.
func Insert(root *Node, key int32) *Node {
	if root == nil {
		return newNode(key)
	}

	if key <= root.Key {
		root.Left = Insert(root.Left, key)
	} else {
		root.Right = Insert(root.Right, key)
	}

	root.Balance = balanceOf(root)

	// left heavy
	if root.Balance > 1 {
		if key > root.Left.Key {
			// left-right
			root.Left = rotateLeft(root.Left)
		}
		return rotateRight(root)
	}

	// right heavy
	if root.Balance < -1 {
		if key <= root.Right.Key {
			// right-left
			root.Right = rotateRight(root.Right)
		}
		return rotateLeft(root)
	}

	return root
}
