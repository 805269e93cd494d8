// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

// headerLen is the on-wire header size: a 2-byte senderId (i16) followed by
// a 2-byte tag (u16), 4 bytes total. See DESIGN.md for why this width was
// chosen over an alternative six-byte reading.
const (
	senderIDOffset = 0
	senderIDLen    = 2
	tagOffset      = 2
	tagLen         = 2
	headerLen      = tagOffset + tagLen
)

// Message wraps a datagram buffer with its (senderId, tag) header and hands
// out the codec view matching its direction: Reader for an incoming
// (received) Message, Writer for an outgoing one. Requesting the wrong
// view returns an inert codec — see Stream's mode enforcement — rather
// than panicking.
type Message struct {
	stream   *Stream
	tag      Tag
	senderID int16
}

// NewOutgoingMessage allocates a Write-mode Message for tag. The header is
// written immediately: a placeholder senderId of zero, then tag. The
// sender later patches the real id in place via SetSenderID just before
// transmission, using a raw write at a fixed offset so it doesn't disturb
// whatever payload has already been appended past the header.
func NewOutgoingMessage(tag Tag, opts ...Option) *Message {
	o := resolveOptions(opts)
	s := NewStream(o.Capacity, Write)
	m := &Message{stream: s, tag: tag, senderID: 0}
	w := NewWriter(s)
	w.WriteInt16(0)
	w.WriteUint16(uint16(tag))
	return m
}

// NewIncomingMessage wraps a received datagram in a Read-mode Message and
// immediately decodes (senderId, tag), leaving the read cursor at the
// payload start.
func NewIncomingMessage(data []byte) *Message {
	s := NewStreamFromBytes(data)
	m := &Message{stream: s}
	r := NewReader(s)
	m.senderID = r.ReadInt16()
	m.tag = Tag(r.ReadUint16())
	return m
}

// Tag reports the message's tag.
func (m *Message) Tag() Tag { return m.tag }

// SenderID reports the decoded (or, for an outgoing message, placeholder)
// sender id.
func (m *Message) SenderID() int16 { return m.senderID }

// Stream returns the underlying Stream.
func (m *Message) Stream() *Stream { return m.stream }

// Bytes returns the full framed datagram (header + payload) ready for
// transmission, for an outgoing Message, or the original received bytes
// for an incoming one.
func (m *Message) Bytes() []byte { return m.stream.Bytes() }

// Len reports the total framed length in bytes.
func (m *Message) Len() int { return m.stream.length }

// Reader returns the Message's Reader view. If the Message is in Write
// mode, the returned Reader is inert: every read reports underflow/wrong
// mode without panicking.
func (m *Message) Reader() *Reader { return NewReader(m.stream) }

// Writer returns the Message's Writer view. If the Message is in Read
// mode, the returned Writer is inert: every write reports -1 without
// panicking.
func (m *Message) Writer() *Writer { return NewWriter(m.stream) }

// SetSenderID patches the senderId field in place, without disturbing the
// payload already written past the header. Used exclusively to stamp the
// client's assigned id into an already-framed outgoing Message immediately
// before send.
func (m *Message) SetSenderID(id int16) error {
	var buf [senderIDLen]byte
	v := uint16(id)
	buf[0] = byte(v >> 8)
	buf[1] = byte(v)
	if err := m.stream.RawWriteAt(senderIDOffset, buf[:]); err != nil {
		return err
	}
	m.senderID = id
	return nil
}
