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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RecordSize is the width of one serialized node: an int32 key followed
// by a one byte child mask.
const RecordSize = 5

// child mask bits of a record
const (
	MaskRight byte = 1 << iota // a right subtree follows
	MaskLeft                   // a left subtree follows
)

// ErrTruncated is recorded by a Decoder that ran out of input in the
// middle of the pre-order stream.
var ErrTruncated = errors.New("truncated tree record")

// ParseByteOrder maps a configuration name to a byte order. The empty
// string selects the host's native order.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "native":
		return binary.NativeEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("unknown byte order %q", name)
}

// Encoder writes a tree as a pre-order sequence of records.
type Encoder struct {
	w     *bufio.Writer
	order binary.ByteOrder
	buf   [RecordSize]byte
}

// NewEncoder creates an encoder writing to w. A nil order selects the
// native byte order.
func NewEncoder(w io.Writer, order binary.ByteOrder) *Encoder {
	if order == nil {
		order = binary.NativeEndian
	}
	return &Encoder{
		w:     bufio.NewWriter(w),
		order: order,
	}
}

// Encode writes the subtree rooted at root. An empty tree produces no
// bytes.
//
// Encode mutates the tree it is given: a node without a left child whose
// right child carries the same key has that child moved to the left slot
// before the node is written.
func (e *Encoder) Encode(root *Node) error {
	if err := e.encode(root); err != nil {
		return err
	}
	return e.w.Flush()
}

func (e *Encoder) encode(root *Node) error {
	if root == nil {
		return nil
	}

	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Left == nil && n.Right != nil && n.Right.Key == n.Key {
			n.Left = n.Right
			n.Right = nil
		}

		mask := byte(0)
		if n.Left != nil {
			mask |= MaskLeft
		}
		if n.Right != nil {
			mask |= MaskRight
		}

		e.order.PutUint32(e.buf[:4], uint32(n.Key))
		e.buf[4] = mask
		if _, err := e.w.Write(e.buf[:]); err != nil {
			return fmt.Errorf("write record for key %d: %w", n.Key, err)
		}

		// pre-order: the left subtree is written before the right one
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}
	return nil
}

// Encode serializes the tree to w in the given byte order. See
// Encoder.Encode for the mutation it may apply.
func (tree *Tree) Encode(w io.Writer, order binary.ByteOrder) error {
	return NewEncoder(w, order).Encode(tree.root)
}

// Decoder rebuilds a tree from a pre-order record stream.
type Decoder struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [RecordSize]byte
	err   error
	nodes int
}

// NewDecoder creates a decoder reading from r. A nil order selects the
// native byte order.
func NewDecoder(r io.Reader, order binary.ByteOrder) *Decoder {
	if order == nil {
		order = binary.NativeEndian
	}
	return &Decoder{
		r:     bufio.NewReader(r),
		order: order,
	}
}

// Decode reads one pre-order tree. valid is false when the stream ended
// before a record the tree shape called for, including an empty stream.
// Whatever was built up to that point is still returned. Bytes following
// a complete tree are ignored.
func (d *Decoder) Decode() (root *Node, valid bool) {
	root = d.decode()
	return root, d.err == nil
}

// Err returns the error that invalidated the last Decode, if any
func (d *Decoder) Err() error {
	return d.err
}

// slot is a child link of an already decoded node whose subtree has not
// been read yet.
type slot struct {
	parent *Node
	left   bool
}

// decode rebuilds the tree with an explicit stack of pending slots, so a
// degenerate chain costs heap rather than goroutine stack.
func (d *Decoder) decode() *Node {
	if d.err != nil {
		return nil
	}
	root, mask := d.next()
	if root == nil {
		return nil
	}

	stack := pushSlots(nil, root, mask)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, mask := d.next()
		if n == nil {
			break
		}
		if s.left {
			s.parent.Left = n
		} else {
			s.parent.Right = n
		}
		stack = pushSlots(stack, n, mask)
	}
	return root
}

// pushSlots queues the children announced by mask, left on top so it is
// read first.
func pushSlots(stack []slot, n *Node, mask byte) []slot {
	if mask&MaskRight != 0 {
		stack = append(stack, slot{parent: n, left: false})
	}
	if mask&MaskLeft != 0 {
		stack = append(stack, slot{parent: n, left: true})
	}
	return stack
}

// next reads one record. A nil node means the stream failed and d.err
// says why.
func (d *Decoder) next() (*Node, byte) {
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			d.err = fmt.Errorf("after %d records: %w", d.nodes, ErrTruncated)
		} else {
			d.err = fmt.Errorf("read record %d: %w", d.nodes, err)
		}
		return nil, 0
	}
	d.nodes += 1
	return newNode(int32(d.order.Uint32(d.buf[:4]))), d.buf[4]
}

// ReadTree is a convenience wrapper around Decoder.Decode
func ReadTree(r io.Reader, order binary.ByteOrder) (*Tree, bool) {
	root, valid := NewDecoder(r, order).Decode()
	return FromRoot(root), valid
}
