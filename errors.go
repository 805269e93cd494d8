// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package netmsg

import "errors"

var (
	// ErrInvalidArgument reports an invalid configuration or a nil reader/writer.
	ErrInvalidArgument = errors.New("netmsg: invalid argument")

	// ErrWrongMode reports a read attempted on a Write-mode Stream, or a write
	// attempted on a Read-mode Stream. Cursors are left untouched.
	ErrWrongMode = errors.New("netmsg: wrong stream mode")

	// ErrBufferOverflow reports that a write would reach or exceed capacity.
	// The buffer is left unchanged.
	ErrBufferOverflow = errors.New("netmsg: buffer overflow")

	// ErrBufferUnderflow reports that a read would pass the written length.
	// The returned value is the type's default and cursors are untouched.
	ErrBufferUnderflow = errors.New("netmsg: buffer underflow")

	// ErrTooLong reports a string or byte-slice length prefix that exceeds
	// what the remaining buffer can hold.
	ErrTooLong = errors.New("netmsg: declared length exceeds buffer")

	// ErrUnknownClient is returned by Server.Send when no roster entry exists
	// for the requested id.
	ErrUnknownClient = errors.New("netmsg: unknown client")

	// ErrNotConnected is returned by Client operations that require an
	// established connection.
	ErrNotConnected = errors.New("netmsg: not connected")
)
