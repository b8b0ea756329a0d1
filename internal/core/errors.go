// Package core defines sentinel errors.
package core

import "errors"

// Sentinel errors. Callers wrap them with context and match with errors.Is.
var (
	// Input errors
	ErrMalformedHex = errors.New("bitpacket: malformed hex input")

	// Packet decoding errors
	ErrTruncated       = errors.New("bitpacket: truncated bit stream")
	ErrNoPacket        = errors.New("bitpacket: no packet in stream")
	ErrLiteralOverflow = errors.New("bitpacket: literal exceeds 64 bits")
	ErrDepthExceeded   = errors.New("bitpacket: packet nesting too deep")

	// Evaluation errors
	ErrArity = errors.New("bitpacket: wrong operand count")

	// Configuration errors
	ErrConfigInvalid = errors.New("bitpacket: invalid configuration")
)
