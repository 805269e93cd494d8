// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHeartbeat_InitialPhaseIsAwaitingPong(t *testing.T) {
	h := NewHeartbeat(10*time.Second, 5*time.Second)
	require.Equal(t, AwaitingPong, h.Phase())
	require.Equal(t, 10*time.Second, h.Remaining())
}

func TestHeartbeat_Update_FiresExactlyOneEventPerWindowClosure(t *testing.T) {
	var pongEnded, pingEnded int
	h := NewHeartbeat(10*time.Second, 5*time.Second)
	h.OnPongWindowEnded = func() { pongEnded++ }
	h.OnPingWindowEnded = func() { pingEnded++ }

	h.Update(9 * time.Second)
	require.Equal(t, AwaitingPong, h.Phase())
	require.Zero(t, pongEnded)

	h.Update(2 * time.Second)
	require.Equal(t, AwaitingPing, h.Phase())
	require.Equal(t, 1, pongEnded)
	require.Zero(t, pingEnded)

	h.Update(6 * time.Second)
	require.Equal(t, AwaitingPong, h.Phase())
	require.Equal(t, 1, pingEnded)
}

func TestHeartbeat_Update_DtSpanningMultipleWindows_StillFiresOnlyOneEvent(t *testing.T) {
	var pongEnded int
	h := NewHeartbeat(1*time.Second, 1*time.Second)
	h.OnPongWindowEnded = func() { pongEnded++ }

	h.Update(100 * time.Second)
	require.Equal(t, 1, pongEnded)
	require.Equal(t, AwaitingPing, h.Phase())
}

func TestHeartbeat_Update_ResetsRemainingOnTransition(t *testing.T) {
	h := NewHeartbeat(10*time.Second, 5*time.Second)
	h.Update(10 * time.Second)
	require.Equal(t, 5*time.Second, h.Remaining())
}
