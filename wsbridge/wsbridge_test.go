// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsbridge

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/netmsg"
)

// loopConn is a minimal io.ReadWriter standing in for a *websocket.Conn:
// each Write is one message, delivered whole to the next Read.
type loopConn struct {
	in  chan []byte
	out *bytes.Buffer
}

func newLoopConn() *loopConn {
	return &loopConn{in: make(chan []byte, 8), out: &bytes.Buffer{}}
}

func (c *loopConn) Read(p []byte) (int, error) {
	msg, ok := <-c.in
	if !ok {
		return 0, io.EOF
	}
	return copy(p, msg), nil
}

func (c *loopConn) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	c.out.Write(cp)
	return len(p), nil
}

func TestBridge_Run_StagesDecodedMessagesOntoDispatcher(t *testing.T) {
	conn := newLoopConn()
	dispatch := netmsg.NewDispatcher()
	b := New(conn, dispatch, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	msg := netmsg.NewOutgoingMessage(netmsg.TagPing)
	conn.in <- msg.Bytes()

	require.Eventually(t, func() bool {
		return dispatch.Pending() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBridge_Send_WritesFramedBytes(t *testing.T) {
	conn := newLoopConn()
	b := New(conn, netmsg.NewDispatcher(), 0)

	require.NoError(t, b.Send(netmsg.NewOutgoingMessage(netmsg.TagPong)))
	out := netmsg.NewIncomingMessage(conn.out.Bytes())
	require.Equal(t, netmsg.TagPong, out.Tag())
}
