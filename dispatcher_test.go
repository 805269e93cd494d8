// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_Tick_DeliversOneStagedEventAtATime(t *testing.T) {
	d := NewDispatcher()
	var got []Tag
	d.Register(TagPing, func(msg *Message) { got = append(got, msg.Tag()) })

	d.Stage(TagPing, NewOutgoingMessage(TagPing))
	d.Stage(TagPing, NewOutgoingMessage(TagPing))
	require.Equal(t, 2, d.Pending())

	require.True(t, d.Tick())
	require.Equal(t, 1, d.Pending())
	require.True(t, d.Tick())
	require.Equal(t, 0, d.Pending())
	require.False(t, d.Tick())
	require.Len(t, got, 2)
}

func TestDispatcher_Unregister_RemovesOnlyThatSubscription(t *testing.T) {
	d := NewDispatcher()
	var a, b int
	idA := d.Register(TagPong, func(*Message) { a++ })
	d.Register(TagPong, func(*Message) { b++ })

	d.Unregister(TagPong, idA)
	d.Stage(TagPong, NewOutgoingMessage(TagPong))
	d.Tick()

	require.Zero(t, a)
	require.Equal(t, 1, b)
}

func TestDispatcher_Unregister_LastSubscriptionDropsTagEntirely(t *testing.T) {
	d := NewDispatcher()
	id := d.Register(TagPong, func(*Message) {})
	d.Unregister(TagPong, id)
	_, ok := d.routes[TagPong]
	require.False(t, ok, "single delete must remove the map entry, not leave an empty slice")
}

func TestDispatcher_Clear_EmptiesRoutesButNotQueue(t *testing.T) {
	d := NewDispatcher()
	d.Register(TagPing, func(*Message) {})
	d.Stage(TagPing, NewOutgoingMessage(TagPing))
	d.Clear()

	require.Equal(t, 1, d.Pending())
	require.True(t, d.Tick(), "clearing routes still drains the queue, just with no callbacks")
}

func TestDispatcher_PanickingCallback_DoesNotBlockSiblingCallbacks(t *testing.T) {
	d := NewDispatcher()
	var ran bool
	d.Register(TagPing, func(*Message) { panic("boom") })
	d.Register(TagPing, func(*Message) { ran = true })

	d.Stage(TagPing, NewOutgoingMessage(TagPing))
	require.NotPanics(t, func() { d.Tick() })
	require.True(t, ran)
}

func TestDispatcher_ConcurrentStageAndTick(t *testing.T) {
	d := NewDispatcher()
	var mu sync.Mutex
	var count int
	d.Register(TagPing, func(*Message) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Stage(TagPing, NewOutgoingMessage(TagPing))
		}()
	}
	wg.Wait()

	for d.Tick() {
	}
	require.Equal(t, 50, count)
}
