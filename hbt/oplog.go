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
)

// OpSize is the width of one operation log record: an int32 key
// followed by a one byte opcode.
const OpSize = 5

// opcodes of the operation log
const (
	OpInsert byte = 'i'
	OpDelete byte = 'd'
)

// ErrMalformedOp is returned when the operation log holds an opcode
// other than OpInsert or OpDelete.
var ErrMalformedOp = errors.New("malformed operation")

// Op is a single operation log record
type Op struct {
	Key  int32
	Code byte
}

// String renders an op the way the ops script spells it, e.g. "i 5"
func (op Op) String() string {
	return fmt.Sprintf("%c %d", op.Code, op.Key)
}

// Valid reports whether the opcode is one Build understands
func (op Op) Valid() bool {
	return op.Code == OpInsert || op.Code == OpDelete
}

// OpReader reads operation records one at a time.
type OpReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [OpSize]byte
	index int
}

// NewOpReader creates a reader over an operation log. A nil order
// selects the native byte order.
func NewOpReader(r io.Reader, order binary.ByteOrder) *OpReader {
	if order == nil {
		order = binary.NativeEndian
	}
	return &OpReader{
		r:     bufio.NewReader(r),
		order: order,
	}
}

// Next returns the next record. io.EOF marks the end of the log; a
// trailing partial record also ends the log and is discarded.
func (o *OpReader) Next() (Op, error) {
	if _, err := io.ReadFull(o.r, o.buf[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Op{}, io.EOF
		}
		return Op{}, err
	}
	o.index += 1
	return Op{
		Key:  int32(o.order.Uint32(o.buf[:4])),
		Code: o.buf[4],
	}, nil
}

// Index returns the number of records read so far
func (o *OpReader) Index() int {
	return o.index
}

// OpWriter writes operation records.
type OpWriter struct {
	w     *bufio.Writer
	order binary.ByteOrder
	buf   [OpSize]byte
}

// NewOpWriter creates a writer for an operation log. A nil order selects
// the native byte order.
func NewOpWriter(w io.Writer, order binary.ByteOrder) *OpWriter {
	if order == nil {
		order = binary.NativeEndian
	}
	return &OpWriter{
		w:     bufio.NewWriter(w),
		order: order,
	}
}

// Write appends one record. The opcode is written as given so that
// malformed logs can be produced too.
func (o *OpWriter) Write(op Op) error {
	o.order.PutUint32(o.buf[:4], uint32(op.Key))
	o.buf[4] = op.Code
	_, err := o.w.Write(o.buf[:])
	return err
}

// Flush writes any buffered records to the underlying writer
func (o *OpWriter) Flush() error {
	return o.w.Flush()
}

// Build folds an operation log into a new tree. observe, if not nil, is
// called after every applied operation.
//
// An unknown opcode aborts the build: the partial tree is released and
// an error wrapping ErrMalformedOp is returned.
func Build(r io.Reader, order binary.ByteOrder, observe func(Op)) (*Tree, error) {
	tree := New()
	ops := NewOpReader(r, order)
	for {
		op, err := ops.Next()
		if errors.Is(err, io.EOF) {
			return tree, nil
		}
		if err != nil {
			tree.Release()
			return nil, fmt.Errorf("read operation %d: %w", ops.Index(), err)
		}

		if !op.Valid() {
			tree.Release()
			return nil, fmt.Errorf("record %d opcode %q: %w", ops.Index()-1, op.Code, ErrMalformedOp)
		}
		if op.Code == OpInsert {
			tree.Insert(op.Key)
		} else {
			tree.Delete(op.Key)
		}

		if observe != nil {
			observe(op)
		}
	}
}
