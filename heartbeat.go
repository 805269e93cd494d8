// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"time"

	"code.hybscloud.com/netmsg/internal/netlog"
)

// HeartbeatPhase is one of the two consecutive windows making up a full
// liveness cycle.
type HeartbeatPhase uint8

const (
	// AwaitingPong is the window between Ping rounds; when it closes,
	// OnPongWindowEnded fires and the Pings go out.
	AwaitingPong HeartbeatPhase = iota
	// AwaitingPing is the window opened by a Ping round, during which Pong
	// replies are counted; when it closes, OnPingWindowEnded fires.
	AwaitingPing
)

func (p HeartbeatPhase) String() string {
	if p == AwaitingPong {
		return "AwaitingPong"
	}
	return "AwaitingPing"
}

// Heartbeat is a two-phase monotonic timer advanced by Update. Exactly one
// event fires per window closure; events do not coalesce across missed
// ticks — a dt exceeding a full window still advances only one phase.
//
// Initial phase is AwaitingPong with remaining = pongWindow.
type Heartbeat struct {
	pongWindow time.Duration
	pingWindow time.Duration
	remaining  time.Duration
	phase      HeartbeatPhase

	// OnPongWindowEnded fires when AwaitingPong's window closes: time to
	// send Pings and mark clients suspect. May block; Update returns only
	// after the handler completes.
	OnPongWindowEnded func()
	// OnPingWindowEnded fires when AwaitingPing's window closes: clients
	// that did not respond must be evicted. May block; Update returns only
	// after the handler completes.
	OnPingWindowEnded func()
}

// NewHeartbeat constructs a Heartbeat in AwaitingPong with remaining set to
// pongWindow.
func NewHeartbeat(pongWindow, pingWindow time.Duration) *Heartbeat {
	return &Heartbeat{
		pongWindow: pongWindow,
		pingWindow: pingWindow,
		remaining:  pongWindow,
		phase:      AwaitingPong,
	}
}

// Phase reports the current window.
func (h *Heartbeat) Phase() HeartbeatPhase { return h.phase }

// Remaining reports the time left in the current window.
func (h *Heartbeat) Remaining() time.Duration { return h.remaining }

// Update advances the timer by dt, firing at most one event even if dt
// spans more than one full window.
func (h *Heartbeat) Update(dt time.Duration) {
	h.remaining -= dt
	if h.remaining > 0 {
		return
	}
	switch h.phase {
	case AwaitingPong:
		h.phase = AwaitingPing
		h.remaining = h.pingWindow
		netlog.L().Debugw("netmsg: heartbeat pong window ended")
		if h.OnPongWindowEnded != nil {
			h.OnPongWindowEnded()
		}
	case AwaitingPing:
		h.phase = AwaitingPong
		h.remaining = h.pongWindow
		netlog.L().Debugw("netmsg: heartbeat ping window ended")
		if h.OnPingWindowEnded != nil {
			h.OnPingWindowEnded()
		}
	}
}

// Run drives Update on a ticker until done is closed, intended for an
// embedder that wants the heartbeat on its own goroutine rather than
// stepped from a game-loop/timer tick. tick sets both the ticker period
// and the dt passed to Update.
func (h *Heartbeat) Run(done <-chan struct{}, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			h.Update(tick)
		}
	}
}
