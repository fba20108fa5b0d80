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

// Height returns the number of nodes on the longest path from n down to a
// leaf: 0 for an empty subtree, 1 for a leaf. There is no cached height,
// every call walks the full subtree.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return max(Height(n.Left), Height(n.Right)) + 1
}

// balanceOf recomputes height(left) - height(right) from scratch
func balanceOf(n *Node) int {
	return Height(n.Left) - Height(n.Right)
}
