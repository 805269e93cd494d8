// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package httpfacade

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusHandler_EncodesProviderResultAsJSON(t *testing.T) {
	provider := func() []ClientStatus {
		return []ClientStatus{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	StatusHandler(provider).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []ClientStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []ClientStatus{{ID: 1, Name: "alice"}, {ID: 2, Name: "bob"}}, got)
}

func TestStatusHandler_EmptyRoster(t *testing.T) {
	provider := func() []ClientStatus { return nil }

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	StatusHandler(provider).ServeHTTP(rec, req)

	require.Equal(t, "null\n", rec.Body.String())
}
