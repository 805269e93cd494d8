// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpfacade is a deliberately minimal HTTP surface: a single
// read-only status handler an embedder can mount next to the UDP core for
// liveness checks, grounded on nabbar-golib/httpcli's thin client-wrapper
// shape (NewClient/Check) but inverted into a server-side http.Handler,
// since this module has no outbound HTTP client to wrap. It does not
// implement routing, auth, or anything beyond this one handler.
package httpfacade

import (
	"encoding/json"
	"net/http"

	"code.hybscloud.com/netmsg/internal/netlog"
)

// ClientStatus is the JSON-serializable view of one connected client.
type ClientStatus struct {
	ID   int16  `json:"id"`
	Name string `json:"name"`
}

// StatusProvider adapts a server's roster into the JSON shape this
// handler reports, keeping httpfacade free of a direct dependency on
// package server.
type StatusProvider func() []ClientStatus

// StatusHandler returns an http.Handler that reports the server's current
// roster as JSON. Intended to be mounted at a single path (e.g. /status)
// by the embedder; this package has no opinion on routing.
func StatusHandler(provider StatusProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clients := provider()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clients); err != nil {
			netlog.L().Warnw("netmsg/httpfacade: status encode failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	})
}
