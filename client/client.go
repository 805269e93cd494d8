// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package client implements the UDP message-oriented client half of the
// protocol described in package netmsg: handshake, heartbeat response,
// and a cancellable receive loop that routes reserved tags internally and
// surfaces everything else to the embedder (typically via a
// netmsg.Dispatcher fed from OnMessageReceived).
package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/netmsg"
	"code.hybscloud.com/netmsg/config"
	"code.hybscloud.com/netmsg/internal/netlog"
)

// Option configures a Client; re-exported from package config so callers
// only import package client.
type Option = config.Option

var (
	WithName            = config.WithName
	WithBufferCapacity  = config.WithBufferCapacity
	WithTagRegistration = config.WithTagRegistration
	WithLogger          = config.WithLogger
)

// State is the client's connection state machine:
// Disconnected -> Connecting -> Connected -> Disconnected.
type State uint8

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// unassignedID is the sentinel id a Client carries before a successful
// handshake.
const unassignedID = -1

// Client is a UDP client handle. The zero value is not usable; construct
// with New.
type Client struct {
	opts config.Options
	name string

	conn *net.UDPConn

	id    atomic.Int32
	state atomic.Uint32

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// OnConnected fires once the handshake ack has been processed and the
	// client's id adopted.
	OnConnected func()
	// OnDisconnected fires on both a server-initiated eviction (local=false)
	// and the client's own Disconnect (local=true).
	OnDisconnected func(local bool)
	// OnServerUnregistered fires when the server replies UnknownClient: the
	// server has no record of this id and the client must re-register.
	OnServerUnregistered func()
	// OnMessageReceived fires for every datagram whose tag is not one of
	// the reserved protocol tags. Typically wired to a netmsg.Dispatcher's
	// Stage method.
	OnMessageReceived func(msg *netmsg.Message)
}

// New constructs a disconnected Client.
func New(opts ...Option) *Client {
	o := config.Apply(opts...)
	c := &Client{opts: o, name: o.Name}
	c.id.Store(unassignedID)
	c.state.Store(uint32(Disconnected))
	if o.Logger != nil {
		netlog.SetLogger(o.Logger)
	}
	return c
}

// ID reports the server-assigned id, or -1 before a successful handshake.
func (c *Client) ID() int16 { return int16(c.id.Load()) }

// Name reports the client's handshake name.
func (c *Client) Name() string { return c.name }

// State reports the current connection state.
func (c *Client) State() State { return State(c.state.Load()) }

// Connect resolves host:port and opens a UDP socket bound to that remote
// peer. Does not register with the server; call SendConnectionInformation
// to perform the handshake.
func (c *Client) Connect(host string, port int) error {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return err
	}
	return c.ConnectAddr(addr)
}

// ConnectAddr opens a UDP socket bound to addr directly, skipping DNS
// resolution.
func (c *Client) ConnectAddr(addr *net.UDPAddr) error {
	c.state.Store(uint32(Connecting))
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		c.state.Store(uint32(Disconnected))
		return err
	}
	c.conn = conn
	c.state.Store(uint32(Connected))
	return nil
}

// SendConnectionInformation sends the handshake request: a
// TagClientConnected message carrying ClientConnectionInfo{name, id=0,
// success=false}.
func (c *Client) SendConnectionInformation() error {
	msg := netmsg.NewOutgoingMessage(netmsg.TagClientConnected, netmsg.WithCapacity(c.capacity()))
	info := netmsg.ClientConnectionInfo{Name: c.name, ID: 0, Success: false}
	if msg.Writer().WriteValue(&info) < 0 {
		return netmsg.ErrBufferOverflow
	}
	return c.Send(msg)
}

// RegisterTags sends a ClientMessageTagRegistration message declaring the
// given tags so the server can log which user tags this client expects to
// receive.
func (c *Client) RegisterTags(tags ...uint16) error {
	msg := netmsg.NewOutgoingMessage(netmsg.TagRegisterTags, netmsg.WithCapacity(c.capacity()))
	reg := netmsg.ClientMessageTagRegistration{Tags: tags}
	if msg.Writer().WriteValue(&reg) < 0 {
		return netmsg.ErrBufferOverflow
	}
	return c.Send(msg)
}

func (c *Client) capacity() int {
	if c.opts.BufferCapacity > 0 {
		return c.opts.BufferCapacity
	}
	return netmsg.DefaultCapacity
}

// Send patches the message's senderId with the client's assigned id and
// transmits it. Returns ErrNotConnected if the socket isn't open.
func (c *Client) Send(msg *netmsg.Message) error {
	if c.conn == nil {
		return netmsg.ErrNotConnected
	}
	if err := msg.SetSenderID(c.ID()); err != nil {
		return err
	}
	_, err := c.conn.Write(msg.Bytes())
	return err
}

// Listen enters the receive loop, blocking until ctx is cancelled or the
// socket is closed. Safe to run on its own goroutine.
func (c *Client) Listen(ctx context.Context) error {
	if c.conn == nil {
		return netmsg.ErrNotConnected
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	// Unblock a pending Read once ctx is done so the loop can exit.
	conn := c.conn
	go func() {
		<-ctx.Done()
		_ = conn.SetReadDeadline(time.Now())
	}()
	buf := make([]byte, c.capacity())
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, err := c.conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			netlog.L().Debugw("netmsg/client: transient listen error", "error", err)
			continue
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		c.handle(netmsg.NewIncomingMessage(datagram))
	}
}

func (c *Client) handle(msg *netmsg.Message) {
	switch msg.Tag() {
	case netmsg.TagClientConnected:
		var info netmsg.ClientConnectionInfo
		_ = msg.Reader().ReadValue(&info)
		c.id.Store(int32(info.ID))
		c.state.Store(uint32(Connected))
		netlog.L().Infow("netmsg/client: handshake acknowledged", "id", info.ID, "name", info.Name)
		if c.opts.TagRegistration {
			if err := c.RegisterTags(c.opts.RegisteredTags...); err != nil {
				netlog.L().Warnw("netmsg/client: tag registration failed", "error", err)
			}
		}
		if c.OnConnected != nil {
			c.OnConnected()
		}
	case netmsg.TagClientDisconnected:
		var info netmsg.ClientConnectionInfo
		_ = msg.Reader().ReadValue(&info)
		c.state.Store(uint32(Disconnected))
		if c.OnDisconnected != nil {
			c.OnDisconnected(info.Success)
		}
	case netmsg.TagPing:
		pong := netmsg.NewOutgoingMessage(netmsg.TagPong, netmsg.WithCapacity(c.capacity()))
		_ = c.Send(pong)
	case netmsg.TagUnknownClient:
		if c.OnServerUnregistered != nil {
			c.OnServerUnregistered()
		}
	default:
		if c.OnMessageReceived != nil {
			c.OnMessageReceived(msg)
		}
	}
}

// Disconnect fires the local Disconnected event, sends a graceful
// TagClientDisconnected notice, then cancels the receive loop and closes
// the socket.
func (c *Client) Disconnect() error {
	if c.OnDisconnected != nil {
		c.OnDisconnected(true)
	}
	var sendErr error
	if c.conn != nil {
		msg := netmsg.NewOutgoingMessage(netmsg.TagClientDisconnected, netmsg.WithCapacity(c.capacity()))
		info := netmsg.ClientConnectionInfo{Name: c.name, ID: c.ID(), Success: true}
		msg.Writer().WriteValue(&info)
		sendErr = c.Send(msg)
	}
	c.close()
	return sendErr
}

// DisconnectAsync runs Disconnect on its own goroutine, matching spec
// §4.5's DisconnectAsync variant for embedders that can't block the
// caller.
func (c *Client) DisconnectAsync() <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- c.Disconnect() }()
	return ch
}

func (c *Client) close() {
	if c.cancel != nil {
		c.cancel()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.state.Store(uint32(Disconnected))
}
