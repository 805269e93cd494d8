// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package server

import (
	"net"
	"sync"
)

// ClientRecord is the server's bookkeeping for one connected client: its
// assigned id, declared name, UDP return address, and liveness bit used by
// the heartbeat eviction sweep.
type ClientRecord struct {
	ID    int16
	Name  string
	Addr  *net.UDPAddr
	Alive bool
}

// roster is the server's dual-indexed client table: id -> record for O(1)
// lookup by id, name -> []id for the name-addressed Send/SendOthers
// variants. Guarded by a single RWMutex; reads (Send fan-out, Clients
// snapshot) vastly outnumber writes (connect/evict).
type roster struct {
	mu      sync.RWMutex
	byID    map[int16]*ClientRecord
	byName  map[string][]int16
	nextID  int32
	startID int16
}

func newRoster(startID int16) *roster {
	return &roster{
		byID:    make(map[int16]*ClientRecord),
		byName:  make(map[string][]int16),
		nextID:  int32(startID),
		startID: startID,
	}
}

// allocate returns the next monotonic id. Not safe to call without mu held.
func (r *roster) allocate() int16 {
	id := int16(r.nextID)
	r.nextID++
	return id
}

// insert adds or replaces rec in both indexes.
func (r *roster) insert(rec *ClientRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[rec.ID]; ok {
		r.removeName(old.Name, old.ID)
	}
	r.byID[rec.ID] = rec
	r.byName[rec.Name] = append(r.byName[rec.Name], rec.ID)
}

// evict removes id from both indexes and returns the removed record, if
// any.
func (r *roster) evict(id int16) (*ClientRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	r.removeName(rec.Name, id)
	return rec, true
}

// removeName deletes id from byName[name]'s slice; caller holds mu.
func (r *roster) removeName(name string, id int16) {
	ids := r.byName[name]
	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(r.byName, name)
		return
	}
	r.byName[name] = ids
}

func (r *roster) get(id int16) (*ClientRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	return rec, ok
}

func (r *roster) getByName(name string) []*ClientRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byName[name]
	recs := make([]*ClientRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.byID[id]; ok {
			recs = append(recs, rec)
		}
	}
	return recs
}

// snapshot returns a stable copy of every connected record, safe to range
// over without holding the lock.
func (r *roster) snapshot() []*ClientRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ClientRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		out = append(out, rec)
	}
	return out
}

// markAll sets every record's Alive bit, used at the start of a pong
// window before Pings are sent.
func (r *roster) markAll(alive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.byID {
		rec.Alive = alive
	}
}

// markAlive flips one record's Alive bit, used when a Pong arrives. Reports
// whether id was known, so callers can reply UnknownClient on a miss.
func (r *roster) markAlive(id int16) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return false
	}
	rec.Alive = true
	return true
}

// deadIDs returns the ids of every record whose Alive bit is false,
// i.e. the clients to evict at the end of a ping window.
func (r *roster) deadIDs() []int16 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []int16
	for id, rec := range r.byID {
		if !rec.Alive {
			ids = append(ids, id)
		}
	}
	return ids
}
