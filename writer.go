// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"math"

	"code.hybscloud.com/netmsg/internal/netlog"
)

// Writer encodes primitives and Serializable values into a Write-mode
// Stream. A write that would cause Length+n >= Capacity is rejected: the
// buffer is unchanged and the method reports -1. This is a strict
// "less-than" boundary by design: a write that would land exactly on
// Capacity is also rejected, so callers must keep at least one byte of
// headroom.
type Writer struct {
	s *Stream
}

// NewWriter returns a Writer view over s. s must be in Write mode; a
// Writer over a Read-mode Stream is inert (every write reports -1).
func NewWriter(s *Stream) *Writer { return &Writer{s: s} }

// Stream returns the underlying Stream.
func (w *Writer) Stream() *Stream { return w.s }

func (w *Writer) checkMode() bool {
	if w.s.mode != Write {
		netlog.L().Warnw("netmsg: write in wrong mode", "mode", w.s.mode)
		return false
	}
	return true
}

// reserve appends n bytes past Length, enforcing the strict "<" boundary,
// and returns the slice to fill plus whether the reservation succeeded.
func (w *Writer) reserve(n int) ([]byte, bool) {
	if !w.checkMode() {
		return nil, false
	}
	if w.s.length+n >= cap(w.s.buf) {
		netlog.L().Warnw("netmsg: buffer overflow", "length", w.s.length, "n", n, "capacity", cap(w.s.buf), "over", w.s.length+n-cap(w.s.buf)+1)
		return nil, false
	}
	p := w.s.buf[w.s.length : w.s.length+n]
	w.s.length += n
	return p, true
}

// WriteByte writes one unreversed byte. Returns -1 on overflow or wrong mode.
func (w *Writer) WriteByte(v byte) int {
	p, ok := w.reserve(1)
	if !ok {
		return -1
	}
	p[0] = v
	return 1
}

// WriteBool writes one byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) int {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// WriteInt8 writes a signed 8-bit integer.
func (w *Writer) WriteInt8(v int8) int { return w.WriteByte(byte(v)) }

// WriteUint16 writes an unsigned 16-bit integer in canonical wire order.
func (w *Writer) WriteUint16(v uint16) int {
	p, ok := w.reserve(2)
	if !ok {
		return -1
	}
	p[0] = byte(v >> 8)
	p[1] = byte(v)
	return 2
}

// WriteInt16 writes a signed 16-bit integer in canonical wire order.
func (w *Writer) WriteInt16(v int16) int { return w.WriteUint16(uint16(v)) }

// WriteUint32 writes an unsigned 32-bit integer in canonical wire order.
func (w *Writer) WriteUint32(v uint32) int {
	p, ok := w.reserve(4)
	if !ok {
		return -1
	}
	p[0] = byte(v >> 24)
	p[1] = byte(v >> 16)
	p[2] = byte(v >> 8)
	p[3] = byte(v)
	return 4
}

// WriteInt32 writes a signed 32-bit integer in canonical wire order.
func (w *Writer) WriteInt32(v int32) int { return w.WriteUint32(uint32(v)) }

// WriteUint64 writes an unsigned 64-bit integer in canonical wire order.
func (w *Writer) WriteUint64(v uint64) int {
	p, ok := w.reserve(8)
	if !ok {
		return -1
	}
	for i := 0; i < 8; i++ {
		p[7-i] = byte(v >> (8 * i))
	}
	return 8
}

// WriteInt64 writes a signed 64-bit integer in canonical wire order.
func (w *Writer) WriteInt64(v int64) int { return w.WriteUint64(uint64(v)) }

// WriteFloat32 writes an IEEE-754 single-precision float in canonical wire order.
func (w *Writer) WriteFloat32(v float32) int { return w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes an IEEE-754 double-precision float in canonical wire order.
func (w *Writer) WriteFloat64(v float64) int { return w.WriteUint64(math.Float64bits(v)) }

// WriteString writes a u16 length prefix followed by the ASCII bytes of s.
// Returns the total bytes written (2+len(s)), or -1 on overflow/wrong mode
// (in which case neither the length nor the payload is written).
func (w *Writer) WriteString(s string) int {
	if !w.checkMode() {
		return -1
	}
	if w.s.length+2+len(s) >= cap(w.s.buf) {
		netlog.L().Warnw("netmsg: buffer overflow", "length", w.s.length, "n", 2+len(s), "capacity", cap(w.s.buf))
		return -1
	}
	w.WriteUint16(uint16(len(s)))
	if len(s) == 0 {
		return 2
	}
	p, _ := w.reserve(len(s))
	copy(p, s)
	return 2 + len(s)
}

// WriteBytes writes a u16 length prefix followed by b, symmetric with
// WriteString.
func (w *Writer) WriteBytes(b []byte) int {
	if !w.checkMode() {
		return -1
	}
	if w.s.length+2+len(b) >= cap(w.s.buf) {
		netlog.L().Warnw("netmsg: buffer overflow", "length", w.s.length, "n", 2+len(b), "capacity", cap(w.s.buf))
		return -1
	}
	w.WriteUint16(uint16(len(b)))
	if len(b) == 0 {
		return 2
	}
	p, _ := w.reserve(len(b))
	copy(p, b)
	return 2 + len(b)
}

// WriteValue delegates to v's Serialize method, returning the bytes written.
func (w *Writer) WriteValue(v Serializable) int {
	return v.Serialize(w)
}
