// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_StrictOverflowBoundary_RejectsWriteLandingExactlyOnCapacity(t *testing.T) {
	// Capacity 4: writing a uint16 at length 2 would land exactly at
	// offset 4 == capacity, which the strict "<" boundary rejects even
	// though it does not read or write past the backing array.
	s := NewStream(4, Write)
	w := NewWriter(s)
	require.Equal(t, 2, w.WriteUint16(1))
	require.Equal(t, -1, w.WriteUint16(2))
	require.Equal(t, 2, s.Length(), "rejected write must not mutate Length")
}

func TestWriter_WrongMode_ReportsFailureWithoutMutating(t *testing.T) {
	s := NewStream(16, Read)
	w := NewWriter(s)
	require.Equal(t, -1, w.WriteByte(1))
	require.Equal(t, 0, s.Length())
}

func TestWriter_WriteString_AtomicOnOverflow(t *testing.T) {
	// Capacity 4 leaves no room for a 2-byte length prefix plus 3-byte
	// payload; the whole write must be rejected, not just the payload.
	s := NewStream(4, Write)
	w := NewWriter(s)
	require.Equal(t, -1, w.WriteString("abc"))
	require.Equal(t, 0, s.Length(), "partial header must not be written on overflow")
}

func TestWriter_WriteString_ZeroLength_WritesOnlyThePrefix(t *testing.T) {
	s := NewStream(16, Write)
	w := NewWriter(s)
	require.Equal(t, 2, w.WriteString(""))
	require.Equal(t, 2, s.Length())
}

func TestWriter_WriteBytes_AtomicOnOverflow(t *testing.T) {
	s := NewStream(4, Write)
	w := NewWriter(s)
	require.Equal(t, -1, w.WriteBytes([]byte{1, 2, 3}))
	require.Equal(t, 0, s.Length())
}

func TestWriter_WriteUint32_EmitsCanonicalBigEndianBytes(t *testing.T) {
	s := NewStream(16, Write)
	w := NewWriter(s)
	require.Equal(t, 4, w.WriteUint32(0x01020304))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, s.Bytes())
}

func TestWriter_WriteString_EmitsBigEndianLengthPrefix(t *testing.T) {
	s := NewStream(16, Write)
	w := NewWriter(s)
	require.Equal(t, 4, w.WriteString("hi"))
	require.Equal(t, []byte{0x00, 0x02, 'h', 'i'}, s.Bytes())
}

func TestWriter_MultiByteFields_RoundTripThroughCanonicalOrder(t *testing.T) {
	s := NewStream(64, Write)
	w := NewWriter(s)
	w.WriteUint16(0xBEEF)
	w.WriteInt32(-123456)
	w.WriteUint64(0x0102030405060708)
	w.WriteFloat64(3.5)

	r := NewReader(NewStreamFromBytes(s.Bytes()))
	require.Equal(t, uint16(0xBEEF), r.ReadUint16())
	require.Equal(t, int32(-123456), r.ReadInt32())
	require.Equal(t, uint64(0x0102030405060708), r.ReadUint64())
	require.Equal(t, 3.5, r.ReadFloat64())
}
