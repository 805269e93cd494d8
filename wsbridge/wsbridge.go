// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wsbridge is the one hook the UDP core exposes toward a
// WebSocket facade: it decodes framed netmsg datagrams off any
// io.ReadWriter presenting one message per Read/Write (the contract
// implemented by pascaldekloe's *websocket.Conn) and stages them onto a
// netmsg.Dispatcher. It does not implement HTTP upgrade, framing, or
// anything else websocket-specific — that stays out of scope.
package wsbridge

import (
	"context"
	"io"

	"code.hybscloud.com/netmsg"
	"code.hybscloud.com/netmsg/internal/netlog"
)

// Bridge reads whole messages off Conn and stages them onto Dispatch,
// and writes outgoing Messages back out in the opposite direction.
type Bridge struct {
	Conn       io.ReadWriter
	Dispatch   *netmsg.Dispatcher
	BufferSize int
}

// New constructs a Bridge. bufferSize bounds the largest single message
// Run can receive; zero means netmsg.DefaultCapacity.
func New(conn io.ReadWriter, dispatch *netmsg.Dispatcher, bufferSize int) *Bridge {
	if bufferSize <= 0 {
		bufferSize = netmsg.DefaultCapacity
	}
	return &Bridge{Conn: conn, Dispatch: dispatch, BufferSize: bufferSize}
}

// Run reads messages off Conn until ctx is cancelled or Conn.Read returns
// an error, staging each decoded Message onto Dispatch under its tag.
func (b *Bridge) Run(ctx context.Context) error {
	buf := make([]byte, b.BufferSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, err := b.Conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		msg := netmsg.NewIncomingMessage(data)
		netlog.L().Debugw("netmsg/wsbridge: staged message", "tag", msg.Tag())
		b.Dispatch.Stage(msg.Tag(), msg)
	}
}

// Send writes msg's framed bytes to Conn as a single message.
func (b *Bridge) Send(msg *netmsg.Message) error {
	_, err := b.Conn.Write(msg.Bytes())
	return err
}
