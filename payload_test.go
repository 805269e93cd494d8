// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientConnectionInfo_RoundTrip(t *testing.T) {
	s := NewStream(64, Write)
	w := NewWriter(s)
	want := ClientConnectionInfo{Name: "bob", ID: 7, Success: true}
	require.Greater(t, w.WriteValue(&want), 0)

	r := NewReader(NewStreamFromBytes(s.Bytes()))
	var got ClientConnectionInfo
	require.NoError(t, r.ReadValue(&got))
	require.Equal(t, want, got)
}

func TestClientMessageTagRegistration_RoundTrip(t *testing.T) {
	s := NewStream(64, Write)
	w := NewWriter(s)
	want := ClientMessageTagRegistration{Tags: []uint16{10, 20, 30}}
	require.Greater(t, w.WriteValue(&want), 0)

	r := NewReader(NewStreamFromBytes(s.Bytes()))
	var got ClientMessageTagRegistration
	require.NoError(t, r.ReadValue(&got))
	require.Equal(t, want, got)
}

func TestClientMessageTagRegistration_EmptyRoundTrip(t *testing.T) {
	s := NewStream(64, Write)
	w := NewWriter(s)
	want := ClientMessageTagRegistration{}
	require.Greater(t, w.WriteValue(&want), 0)

	r := NewReader(NewStreamFromBytes(s.Bytes()))
	var got ClientMessageTagRegistration
	require.NoError(t, r.ReadValue(&got))
	require.Empty(t, got.Tags)
}
