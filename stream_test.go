// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStream_DefaultsCapacityWhenZeroOrNegative(t *testing.T) {
	s := NewStream(0, Write)
	require.Equal(t, DefaultCapacity, s.Capacity())

	s = NewStream(-5, Read)
	require.Equal(t, DefaultCapacity, s.Capacity())
}

func TestStream_RawWriteAt_ExtendsLengthPastPreviousWrites(t *testing.T) {
	s := NewStream(16, Write)
	require.NoError(t, s.RawWriteAt(4, []byte{0xAA, 0xBB}))
	require.Equal(t, 6, s.Length())
	require.Equal(t, []byte{0, 0, 0, 0, 0xAA, 0xBB}, s.Bytes())
}

func TestStream_RawWriteAt_DoesNotShrinkLength(t *testing.T) {
	s := NewStream(16, Write)
	w := NewWriter(s)
	w.WriteUint32(0x11223344)
	require.NoError(t, s.RawWriteAt(0, []byte{0, 0}))
	require.Equal(t, 4, s.Length())
}

func TestStream_RawWriteAt_OverflowReportsError(t *testing.T) {
	s := NewStream(4, Write)
	err := s.RawWriteAt(2, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrBufferOverflow)
}

func TestStream_RawBytesAt_RejectsPastLength(t *testing.T) {
	s := NewStreamFromBytes([]byte{1, 2, 3})
	_, ok := s.RawBytesAt(1, 3)
	require.False(t, ok)

	got, ok := s.RawBytesAt(1, 2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 3}, got)
}

func TestStream_Reset_RewindsBothCursorsNotMode(t *testing.T) {
	s := NewStream(16, Write)
	NewWriter(s).WriteUint16(7)
	s.Reset()
	require.Equal(t, 0, s.Length())
	require.Equal(t, 0, s.Position())
	require.Equal(t, Write, s.Mode())
}
