// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

// Serializable is the contract a user-defined value implements to opt into
// the codec. Serialize writes the value's fields via w and returns the
// number of bytes written (or -1, following Writer's overflow convention,
// if any underlying write failed). Deserialize reads the value's fields
// via r; the receiver is expected to already be the zero value or a
// freshly default-constructed instance — ReadValue never allocates one
// for the caller.
type Serializable interface {
	Serialize(w *Writer) int
	Deserialize(r *Reader) error
}
