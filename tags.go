// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import "strconv"

// Tag selects a message's semantic category: it drives both protocol
// handling (reserved tags below) and Dispatcher routing (user tags).
type Tag uint16

// Reserved tags. User tag values must avoid this set and should stay above
// TagReservedUpperBound; the tag space is a single shared 16-bit range.
const (
	TagClientConnected    Tag = 0
	TagClientDisconnected Tag = 1
	TagPong               Tag = 2
	TagPing               Tag = 3
	TagUnknownClient      Tag = 4

	// TagRegisterTags carries a ClientMessageTagRegistration payload; part
	// of the supplemented tag-registration feature, not the original
	// reserved set.
	TagRegisterTags Tag = 5

	// TagReservedUpperBound is reserved (unused) and marks the boundary of
	// the reserved tag range; values above it are user space.
	TagReservedUpperBound Tag = 200
)

// Reserved reports whether t falls in the protocol-reserved range.
func (t Tag) Reserved() bool {
	return t == TagClientConnected || t == TagClientDisconnected ||
		t == TagPong || t == TagPing || t == TagUnknownClient ||
		t == TagRegisterTags || t == TagReservedUpperBound
}

// String renders a human-readable tag name for reserved tags and the raw
// numeric value otherwise.
func (t Tag) String() string {
	switch t {
	case TagClientConnected:
		return "ClientConnected"
	case TagClientDisconnected:
		return "ClientDisconnected"
	case TagPong:
		return "Pong"
	case TagPing:
		return "Ping"
	case TagUnknownClient:
		return "UnknownClient"
	case TagRegisterTags:
		return "RegisterTags"
	case TagReservedUpperBound:
		return "Reserved"
	default:
		return "Tag(" + strconv.Itoa(int(t)) + ")"
	}
}
