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

// rotateRight promotes y.Left to the root of the subtree. y.Left must
// not be nil.
//
//	      y           x
//	     / \         / \
//	    x   c  =>   a   y
//	   / \             / \
//	  a   b           b   c
func rotateRight(y *Node) *Node {
	x := y.Left
	b := x.Right

	x.Right = y
	y.Left = b

	// demoted node first, it is now a child of x
	y.Balance = balanceOf(y)
	x.Balance = balanceOf(x)
	return x
}

// rotateLeft is the mirror of rotateRight. x.Right must not be nil.
func rotateLeft(x *Node) *Node {
	y := x.Right
	b := y.Left

	y.Left = x
	x.Right = b

	x.Balance = balanceOf(x)
	y.Balance = balanceOf(y)
	return y
}
