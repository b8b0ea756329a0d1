// Package bitstream implements a FIFO bit queue over 32-bit words.
//
// Bits are stored most significant first: stream bit p lives in word p/32 at
// bit position 31-p%32. Reads therefore return fields in the order they were
// written, with the earliest bit as the most significant bit of the result.
//
//	word   0                               1
//	      +-------------------------------+-----
//	      |31 30 29 ...                  0|31 ...
//	      +-------------------------------+-----
//	bit    0  1  2  ...                 31 32 ...
package bitstream

import "fmt"

const (
	wordBits  = 32
	wordShift = 5
	wordMask  = wordBits - 1

	// MaxRead is the widest field Pop and PushBits accept.
	MaxRead = 32
)

// Buffer is a queue of bits with a read cursor (head) and a write cursor
// (tail), both counted in bits from the start of words. head <= tail always.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	head  int
	tail  int
	words []uint32
}

// New returns an empty buffer with room for sizeHint bits.
func New(sizeHint int) *Buffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Buffer{words: make([]uint32, 0, (sizeHint+wordMask)>>wordShift)}
}

// Len returns the number of unread bits.
func (b *Buffer) Len() int {
	return b.tail - b.head
}

// Head returns the read cursor in bits.
func (b *Buffer) Head() int { return b.head }

// Tail returns the write cursor in bits.
func (b *Buffer) Tail() int { return b.tail }

// PushNibble appends the low 4 bits of v.
func (b *Buffer) PushNibble(v uint32) {
	b.PushBits(v, 4)
}

// PushBits appends the low n bits of v, most significant first.
func (b *Buffer) PushBits(v uint32, n int) {
	if n < 0 || n > MaxRead {
		panic(fmt.Sprintf("bitstream: push width %d out of range", n))
	}
	value := uint64(v) & (1<<uint(n) - 1)
	for n > 0 {
		idx, off := b.tail>>wordShift, b.tail&wordMask
		if idx == len(b.words) {
			b.words = append(b.words, 0)
		}
		room := wordBits - off
		take := min(n, room)
		chunk := (value >> uint(n-take)) & (1<<uint(take) - 1)
		b.words[idx] |= uint32(chunk << uint(room-take))
		b.tail += take
		n -= take
	}
}

// Pop removes the next n bits and returns them with the earliest bit most
// significant. Reading more bits than Len reports is a programming error
// and panics.
func (b *Buffer) Pop(n int) uint32 {
	if n < 0 || n > MaxRead {
		panic(fmt.Sprintf("bitstream: pop width %d out of range", n))
	}
	if b.Len() < n {
		panic(fmt.Sprintf("bitstream: pop of %d bits with %d available", n, b.Len()))
	}
	if n == 0 {
		return 0
	}
	idx, off := b.head>>wordShift, b.head&wordMask
	v := uint64(b.words[idx]) << wordBits
	if off+n > wordBits {
		v |= uint64(b.words[idx+1])
	}
	b.head += n
	return uint32((v << uint(off)) >> uint(64-n))
}

// Window returns an independent buffer holding the next length bits and
// advances the read cursor past them. The parent's storage is left as is;
// the window owns a copy and cannot read past length bits.
func (b *Buffer) Window(length int) *Buffer {
	if length < 0 || b.Len() < length {
		panic(fmt.Sprintf("bitstream: window of %d bits with %d available", length, b.Len()))
	}
	end := b.head + length
	from := b.head >> wordShift
	to := (end + wordMask) >> wordShift

	words := make([]uint32, to-from)
	copy(words, b.words[from:to])

	w := &Buffer{
		head:  b.head & wordMask,
		words: words,
	}
	w.tail = w.head + length
	// Clear bits past the window so later pushes start from zeros.
	if off := w.tail & wordMask; off != 0 {
		words[len(words)-1] &^= ^uint32(0) >> uint(off)
	}

	b.head = end
	return w
}

// String renders the unread bits as a binary string, for debugging.
func (b *Buffer) String() string {
	out := make([]byte, 0, b.Len())
	for p := b.head; p < b.tail; p++ {
		bit := b.words[p>>wordShift] >> uint(wordMask-p&wordMask) & 1
		out = append(out, '0'+byte(bit))
	}
	return string(out)
}
