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

package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **hbtree %s**

Build height balanced (AVL) trees from operation logs, persist them, and check persisted trees.

Built with Go %s

# 1. Commands
* **build** *ops* *out* - apply an operation log and write the tree. Prints 1 on success, 0 on an I/O failure, -1 on a malformed log
* **evaluate** *tree...* - print *valid,strictBst,balanced* for each tree file
* **show** *tree* - draw a tree file with each node's key and cached balance
* **ops** *out* *op...* - write an operation log from text such as "i 5" "d 3"
* **-b** *ops* *out* and **-e** *tree* - short forms of build and evaluate

# 2. File formats
* Operation log: records of a 4 byte key and an opcode byte, *i* (insert) or *d* (delete)
* Tree file: pre-order records of a 4 byte key and a child mask, 0x02 left child follows, 0x01 right child follows

# 3. Trees
* Equal keys are inserted to the left
* Deleting a key that is not present changes nothing
* Writing a tree moves a right child holding its parent's key into an empty left slot

# Settings
Byte order, build progress and report caching are read from *~/.hbtree.yaml*. Run **hbtree settings** to create it.

`, version, runtime.Version())
	result := markdown.Render(string(message), 80, 3)
	return string(result)
}
