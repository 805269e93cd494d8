// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package server implements the UDP message-oriented server half of the
// protocol described in package netmsg: a roster of connected clients keyed
// by id and name, bidirectional heartbeat-driven eviction, and fan-out send
// helpers built on golang.org/x/sync/errgroup and go.uber.org/multierr.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/netmsg"
	"code.hybscloud.com/netmsg/config"
	"code.hybscloud.com/netmsg/internal/netlog"
)

// Option configures a Server; re-exported from package config so callers
// only import package server.
type Option = config.Option

var (
	WithBufferCapacity = config.WithBufferCapacity
	WithHeartbeat      = config.WithHeartbeat
	WithStartID        = config.WithStartID
	WithLogger         = config.WithLogger
)

// Server is a UDP server handle bound to one local port. The zero value is
// not usable; construct with New.
type Server struct {
	opts   config.Options
	conn   *net.UDPConn
	roster *roster
	hb     *netmsg.Heartbeat

	cancel context.CancelFunc

	// OnClientConnected fires after a client completes the handshake and is
	// inserted into the roster.
	OnClientConnected func(rec *ClientRecord)
	// OnClientDisconnected fires after a client is evicted, whether by its
	// own graceful TagClientDisconnected notice or by heartbeat timeout.
	// timedOut distinguishes the two.
	OnClientDisconnected func(rec *ClientRecord, timedOut bool)
	// OnMessageReceived fires for every datagram from a known client whose
	// tag is not one of the reserved protocol tags.
	OnMessageReceived func(rec *ClientRecord, msg *netmsg.Message)
	// OnTagRegistration fires when a client sends a
	// ClientMessageTagRegistration message declaring the user tags it
	// expects. The server does not use this to filter delivery.
	OnTagRegistration func(rec *ClientRecord, tags []uint16)
}

// New constructs a Server. It does not bind a socket; call Listen for that.
func New(opts ...Option) *Server {
	o := config.Apply(opts...)
	s := &Server{opts: o, roster: newRoster(o.StartID)}
	if o.Logger != nil {
		netlog.SetLogger(o.Logger)
	}
	if o.PongInterval > 0 && o.PingInterval > 0 {
		s.hb = netmsg.NewHeartbeat(o.PongInterval, o.PingInterval)
		s.hb.OnPongWindowEnded = s.onPongWindowEnded
		s.hb.OnPingWindowEnded = s.onPingWindowEnded
	}
	return s
}

func (s *Server) capacity() int {
	if s.opts.BufferCapacity > 0 {
		return s.opts.BufferCapacity
	}
	return netmsg.DefaultCapacity
}

// Clients returns a stable snapshot of every connected client record.
func (s *Server) Clients() []*ClientRecord { return s.roster.snapshot() }

// Listen binds addr, then runs the receive loop (and heartbeat ticker, if
// configured) until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr *net.UDPAddr) error {
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	s.conn = conn

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Unblock a pending ReadFromUDP once ctx is done so the loop can exit.
	go func() {
		<-ctx.Done()
		_ = conn.SetReadDeadline(time.Now())
	}()

	if s.hb != nil {
		go s.hb.Run(ctx.Done(), s.opts.PingInterval/4+1)
	}

	buf := make([]byte, s.capacity())
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, from, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			netlog.L().Debugw("netmsg/server: transient listen error", "error", err)
			continue
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		s.handle(netmsg.NewIncomingMessage(datagram), from)
	}
}

// Shutdown stops the receive loop and closes the socket.
func (s *Server) Shutdown() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Server) handle(msg *netmsg.Message, from *net.UDPAddr) {
	switch msg.Tag() {
	case netmsg.TagClientConnected:
		s.processConnectionMessage(msg, from)
	case netmsg.TagClientDisconnected:
		s.processDisconnectionMessage(msg)
	case netmsg.TagPong:
		if !s.roster.markAlive(msg.SenderID()) {
			s.sendUnknownClient(from)
		}
	case netmsg.TagRegisterTags:
		s.processTagRegistration(msg)
	default:
		rec, ok := s.roster.get(msg.SenderID())
		if !ok {
			s.sendUnknownClient(from)
			return
		}
		if s.OnMessageReceived != nil {
			s.OnMessageReceived(rec, msg)
		}
	}
}

// processConnectionMessage implements the handshake: allocate a new id,
// drop any stale record still held under the message's sender id (a
// re-handshake replaces it), insert the record, and ack with the assigned
// id.
func (s *Server) processConnectionMessage(msg *netmsg.Message, from *net.UDPAddr) {
	var info netmsg.ClientConnectionInfo
	if err := msg.Reader().ReadValue(&info); err != nil {
		netlog.L().Warnw("netmsg/server: malformed handshake", "error", err)
		return
	}

	if stale, ok := s.roster.evict(msg.SenderID()); ok {
		netlog.L().Infow("netmsg/server: replacing stale record on re-handshake", "id", stale.ID, "name", stale.Name)
	}

	s.roster.mu.Lock()
	id := s.roster.allocate()
	s.roster.mu.Unlock()

	rec := &ClientRecord{ID: id, Name: info.Name, Addr: from, Alive: true}
	s.roster.insert(rec)

	ack := netmsg.NewOutgoingMessage(netmsg.TagClientConnected, netmsg.WithCapacity(s.capacity()))
	ackInfo := netmsg.ClientConnectionInfo{Name: info.Name, ID: id, Success: true}
	ack.Writer().WriteValue(&ackInfo)
	if err := s.sendTo(ack, from); err != nil {
		netlog.L().Warnw("netmsg/server: handshake ack send failed", "error", err)
	}

	netlog.L().Infow("netmsg/server: client connected", "id", id, "name", info.Name, "addr", from)
	if s.OnClientConnected != nil {
		s.OnClientConnected(rec)
	}
}

func (s *Server) processDisconnectionMessage(msg *netmsg.Message) {
	rec, ok := s.roster.evict(msg.SenderID())
	if !ok {
		return
	}
	netlog.L().Infow("netmsg/server: client disconnected", "id", rec.ID, "name", rec.Name)
	if s.OnClientDisconnected != nil {
		s.OnClientDisconnected(rec, false)
	}
}

func (s *Server) processTagRegistration(msg *netmsg.Message) {
	rec, ok := s.roster.get(msg.SenderID())
	if !ok {
		return
	}
	var reg netmsg.ClientMessageTagRegistration
	if err := msg.Reader().ReadValue(&reg); err != nil {
		netlog.L().Warnw("netmsg/server: malformed tag registration", "error", err)
		return
	}
	netlog.L().Debugw("netmsg/server: tag registration", "id", rec.ID, "tags", reg.Tags)
	if s.OnTagRegistration != nil {
		s.OnTagRegistration(rec, reg.Tags)
	}
}

func (s *Server) sendUnknownClient(to *net.UDPAddr) {
	msg := netmsg.NewOutgoingMessage(netmsg.TagUnknownClient, netmsg.WithCapacity(s.capacity()))
	if err := s.sendTo(msg, to); err != nil {
		netlog.L().Debugw("netmsg/server: unknown-client reply failed", "error", err)
	}
}

func (s *Server) sendTo(msg *netmsg.Message, to *net.UDPAddr) error {
	_, err := s.conn.WriteToUDP(msg.Bytes(), to)
	return err
}

// onPongWindowEnded marks every client suspect and pings them all; any
// that reply within the ping window set their Alive bit again via
// TagPong handling.
func (s *Server) onPongWindowEnded() {
	s.roster.markAll(false)
	_ = s.SendAll(netmsg.NewOutgoingMessage(netmsg.TagPing, netmsg.WithCapacity(s.capacity())))
}

// onPingWindowEnded evicts every client that never answered the Ping and
// notifies both the evicted client (best-effort) and the embedder.
func (s *Server) onPingWindowEnded() {
	for _, id := range s.roster.deadIDs() {
		rec, ok := s.roster.evict(id)
		if !ok {
			continue
		}
		notice := netmsg.NewOutgoingMessage(netmsg.TagClientDisconnected, netmsg.WithCapacity(s.capacity()))
		info := netmsg.ClientConnectionInfo{Name: rec.Name, ID: rec.ID, Success: false}
		notice.Writer().WriteValue(&info)
		_ = s.sendTo(notice, rec.Addr)

		netlog.L().Infow("netmsg/server: client evicted (heartbeat timeout)", "id", rec.ID, "name", rec.Name)
		if s.OnClientDisconnected != nil {
			s.OnClientDisconnected(rec, true)
		}
	}
}

// Send transmits msg to the client with the given id.
func (s *Server) Send(id int16, msg *netmsg.Message) error {
	rec, ok := s.roster.get(id)
	if !ok {
		return netmsg.ErrUnknownClient
	}
	return s.sendTo(msg, rec.Addr)
}

// SendByName transmits msg to every client registered under name.
func (s *Server) SendByName(name string, msg *netmsg.Message) error {
	recs := s.roster.getByName(name)
	if len(recs) == 0 {
		return netmsg.ErrUnknownClient
	}
	return s.fanOut(recs, msg)
}

// SendAll broadcasts msg to every connected client.
func (s *Server) SendAll(msg *netmsg.Message) error {
	return s.fanOut(s.roster.snapshot(), msg)
}

// SendOthers broadcasts msg to every connected client except exceptID.
func (s *Server) SendOthers(exceptID int16, msg *netmsg.Message) error {
	all := s.roster.snapshot()
	recs := make([]*ClientRecord, 0, len(all))
	for _, rec := range all {
		if rec.ID != exceptID {
			recs = append(recs, rec)
		}
	}
	return s.fanOut(recs, msg)
}

// fanOut sends msg to every record concurrently, aggregating per-peer
// failures with go.uber.org/multierr rather than aborting on the first
// error.
func (s *Server) fanOut(recs []*ClientRecord, msg *netmsg.Message) error {
	g, _ := errgroup.WithContext(context.Background())
	var mu sync.Mutex
	var errs error
	for _, rec := range recs {
		rec := rec
		g.Go(func() error {
			if err := s.sendTo(msg, rec.Addr); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("client %d: %w", rec.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
