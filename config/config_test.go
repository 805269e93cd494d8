// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApply_StartsFromDefaultAndFoldsOptionsInOrder(t *testing.T) {
	o := Apply(
		WithName("bob"),
		WithBufferCapacity(1024),
		WithHeartbeat(10*time.Second, 5*time.Second),
		WithTagRegistration(1, 2, 3),
		WithStartID(100),
	)
	require.Equal(t, "bob", o.Name)
	require.Equal(t, 1024, o.BufferCapacity)
	require.Equal(t, 10*time.Second, o.PongInterval)
	require.Equal(t, 5*time.Second, o.PingInterval)
	require.True(t, o.TagRegistration)
	require.Equal(t, []uint16{1, 2, 3}, o.RegisteredTags)
	require.Equal(t, int16(100), o.StartID)
}

func TestApply_NoOptions_ReturnsDefault(t *testing.T) {
	require.Equal(t, Default(), Apply())
}

func TestWithName_OverwritesPreviousValue(t *testing.T) {
	o := Apply(WithName("a"), WithName("b"))
	require.Equal(t, "b", o.Name)
}
