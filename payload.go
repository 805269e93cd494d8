// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

// ClientConnectionInfo is the payload carried by TagClientConnected and
// TagClientDisconnected messages: string name, i16 id, bool success.
type ClientConnectionInfo struct {
	Name    string
	ID      int16
	Success bool
}

// Serialize writes Name, ID, Success in that order.
func (c *ClientConnectionInfo) Serialize(w *Writer) int {
	n := w.WriteString(c.Name)
	if n < 0 {
		return -1
	}
	n2 := w.WriteInt16(c.ID)
	if n2 < 0 {
		return -1
	}
	n3 := w.WriteBool(c.Success)
	if n3 < 0 {
		return -1
	}
	return n + n2 + n3
}

// Deserialize reads Name, ID, Success in that order.
func (c *ClientConnectionInfo) Deserialize(r *Reader) error {
	c.Name = r.ReadString()
	c.ID = r.ReadInt16()
	c.Success = r.ReadBool()
	return nil
}

// ClientMessageTagRegistration is the optional payload a Client may send
// after a successful handshake to declare the user tags it wants to
// receive: u16 count followed by that many u16 tag values. The server logs
// the declared set (see Server.OnTagRegistration) but does not use it to
// filter delivery — filtering remains a Dispatcher-side decision.
type ClientMessageTagRegistration struct {
	Tags []uint16
}

// Serialize writes the count followed by each tag value.
func (c *ClientMessageTagRegistration) Serialize(w *Writer) int {
	total := w.WriteUint16(uint16(len(c.Tags)))
	if total < 0 {
		return -1
	}
	for _, t := range c.Tags {
		n := w.WriteUint16(t)
		if n < 0 {
			return -1
		}
		total += n
	}
	return total
}

// Deserialize reads the count followed by that many tag values.
func (c *ClientMessageTagRegistration) Deserialize(r *Reader) error {
	count := r.ReadUint16()
	c.Tags = make([]uint16, 0, count)
	for i := uint16(0); i < count; i++ {
		c.Tags = append(c.Tags, r.ReadUint16())
	}
	return nil
}
