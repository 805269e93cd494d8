// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"math"

	"code.hybscloud.com/netmsg/internal/netlog"
)

// Reader decodes primitives and Serializable values from a Read-mode
// Stream. A read that would pass Stream.Length returns the type's zero
// value and logs ErrBufferUnderflow rather than panicking; a read attempted
// on a Write-mode Stream returns the zero value and logs ErrWrongMode.
// Neither case advances Position.
type Reader struct {
	s *Stream
}

// NewReader returns a Reader view over s. s must be in Read mode; a Reader
// over a Write-mode Stream is inert (every read reports ErrWrongMode).
func NewReader(s *Stream) *Reader { return &Reader{s: s} }

// Stream returns the underlying Stream.
func (r *Reader) Stream() *Stream { return r.s }

func (r *Reader) checkMode() bool {
	if r.s.mode != Read {
		netlog.L().Warnw("netmsg: read in wrong mode", "mode", r.s.mode)
		return false
	}
	return true
}

// reserve returns the slice of the next n unread bytes, or false if n bytes
// are not available (wrong mode or past Length).
func (r *Reader) reserve(n int) ([]byte, bool) {
	if !r.checkMode() {
		return nil, false
	}
	if r.s.position+n > r.s.length {
		netlog.L().Warnw("netmsg: buffer underflow", "position", r.s.position, "n", n, "length", r.s.length)
		return nil, false
	}
	p := r.s.buf[r.s.position : r.s.position+n]
	r.s.position += n
	return p, true
}

// ReadByte reads one unreversed byte. Returns 0 on underflow or wrong mode.
func (r *Reader) ReadByte() byte {
	p, ok := r.reserve(1)
	if !ok {
		return 0
	}
	return p[0]
}

// ReadBool reads one byte, non-zero meaning true. Returns false on underflow.
func (r *Reader) ReadBool() bool {
	return r.ReadByte() != 0
}

// ReadInt8 reads a signed 8-bit integer.
func (r *Reader) ReadInt8() int8 { return int8(r.ReadByte()) }

// ReadUint16 reads an unsigned 16-bit integer in canonical wire order.
func (r *Reader) ReadUint16() uint16 {
	p, ok := r.reserve(2)
	if !ok {
		return 0
	}
	return uint16(p[0])<<8 | uint16(p[1])
}

// ReadInt16 reads a signed 16-bit integer in canonical wire order.
func (r *Reader) ReadInt16() int16 { return int16(r.ReadUint16()) }

// ReadUint32 reads an unsigned 32-bit integer in canonical wire order.
func (r *Reader) ReadUint32() uint32 {
	p, ok := r.reserve(4)
	if !ok {
		return 0
	}
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

// ReadInt32 reads a signed 32-bit integer in canonical wire order.
func (r *Reader) ReadInt32() int32 { return int32(r.ReadUint32()) }

// ReadUint64 reads an unsigned 64-bit integer in canonical wire order.
func (r *Reader) ReadUint64() uint64 {
	p, ok := r.reserve(8)
	if !ok {
		return 0
	}
	var v uint64
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

// ReadInt64 reads a signed 64-bit integer in canonical wire order.
func (r *Reader) ReadInt64() int64 { return int64(r.ReadUint64()) }

// ReadFloat32 reads an IEEE-754 single-precision float in canonical wire order.
func (r *Reader) ReadFloat32() float32 { return math.Float32frombits(r.ReadUint32()) }

// ReadFloat64 reads an IEEE-754 double-precision float in canonical wire order.
func (r *Reader) ReadFloat64() float64 { return math.Float64frombits(r.ReadUint64()) }

// ReadString reads a u16-length-prefixed ASCII string. A declared length of
// zero returns "" without consuming further bytes. A declared length
// exceeding the remaining buffer is a buffer underflow: Position is left
// just past the length prefix and "" is returned.
func (r *Reader) ReadString() string {
	n := r.ReadUint16()
	if n == 0 {
		return ""
	}
	p, ok := r.reserve(int(n))
	if !ok {
		return ""
	}
	return string(p)
}

// ReadBytes reads a u16-length-prefixed byte slice, symmetric with
// ReadString. The returned slice is a copy.
func (r *Reader) ReadBytes() []byte {
	n := r.ReadUint16()
	if n == 0 {
		return nil
	}
	p, ok := r.reserve(int(n))
	if !ok {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

// ReadValue delegates to v's Deserialize method. v must already be
// allocated by the caller; ReadValue does not reset it to its zero value
// first.
func (r *Reader) ReadValue(v Serializable) error {
	return v.Deserialize(r)
}
