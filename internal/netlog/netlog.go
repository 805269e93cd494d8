// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package netlog is the structured-logging collaborator used across
// netmsg's codec, heartbeat, dispatcher, client, and server: a thin
// process-wide go.uber.org/zap.SugaredLogger holder, grounded on the
// zap.SugaredLogger usage in sakateka-yanet2's module command entry points.
package netlog

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	mu      sync.Mutex
	current atomic.Pointer[zap.SugaredLogger]
)

func init() {
	l, _ := zap.NewProduction()
	current.Store(l.Sugar())
}

// L returns the process-wide logger. Safe for concurrent use.
func L() *zap.SugaredLogger {
	return current.Load()
}

// SetLogger replaces the process-wide logger, e.g. with a development or
// test logger (zaptest.NewLogger(t).Sugar()). Passing nil restores a
// no-op logger.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	current.Store(l)
}
