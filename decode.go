// This base32 decoding implementation validates every consumed byte against
// the alphabet and reports the first offending byte with its position. By
// default it ignores the unused trailing bits of a final partial group, as
// RFC 4648 decoders commonly do. A Strict encoding instead rejects non-zero
// tail bits: if you are bit packing at a higher level to utilize these empty
// bits you are required to clear them before passing bytes to a strict
// decoder.

package base32

import (
	"encoding/binary"
	"slices"
	"unsafe"
)

const (
	decodeChunkLen = 8
	decodeBlockLen = decodeChunkLen * 4

	// Batched chunks are stored as full 64-bit words of which only the
	// first 5 bytes are output, so the store of the last chunk in a block
	// reaches 3 bytes past the block.
	decodeBlockOverhead = 3

	// Only these remainders are possible for valid un-padded base32:
	// 0, 2, 4, 5, 7. Others imply bad input.

	validDecodeRemainder = uint8((1 << 0) | (1 << 2) | (1 << 4) | (1 << 5) | (1 << 7))
)

// output bits carried by k symbols of a final group, -1 where no encoder
// emits k symbols. Non-empty input always leaves at least 2 bytes for the
// final group, so k is 0 only when it starts with padding.
var tailBits = [decodeChunkLen + 1]int8{-1, -1, 8, -1, 16, 24, -1, 32, 40}

// decodeChunk returns the 40 bits held by the 8 symbols at srcPtr in the top
// of a 64-bit word. It reports false if any symbol is not in the alphabet.
func decodeChunk(srcPtr unsafe.Pointer, tab *[256]byte) (uint64, bool) {
	c0 := tab[*(*byte)(srcPtr)]
	c1 := tab[*(*byte)(unsafe.Add(srcPtr, 1))]
	c2 := tab[*(*byte)(unsafe.Add(srcPtr, 2))]
	c3 := tab[*(*byte)(unsafe.Add(srcPtr, 3))]
	c4 := tab[*(*byte)(unsafe.Add(srcPtr, 4))]
	c5 := tab[*(*byte)(unsafe.Add(srcPtr, 5))]
	c6 := tab[*(*byte)(unsafe.Add(srcPtr, 6))]
	c7 := tab[*(*byte)(unsafe.Add(srcPtr, 7))]

	// valid values never set the top 3 bits
	if (c0 | c1 | c2 | c3 | c4 | c5 | c6 | c7) == b32Invalid {
		return 0, false
	}

	return uint64(c0)<<59 |
		uint64(c1)<<54 |
		uint64(c2)<<49 |
		uint64(c3)<<44 |
		uint64(c4)<<39 |
		uint64(c5)<<34 |
		uint64(c6)<<29 |
		uint64(c7)<<24, true
}

func storeWord(p unsafe.Pointer, w uint64) {
	binary.BigEndian.PutUint64((*[8]byte)(p)[:], w)
}

// invalidByteAt locates the first byte of src[i:i+n] missing from tab.
func invalidByteAt(tab *[256]byte, src []byte, i, n int) error {
	for j, b := range src[i : i+n] {
		if tab[b] == b32Invalid {
			return &InvalidByteError{Index: i + j, Byte: b}
		}
	}

	panic("base32: no invalid byte in rejected chunk")
}

// checkLength reports whether n bytes can be a complete encoded value.
func (e Encoding) checkLength(n int) error {
	rem := n % decodeChunkLen

	if (validDecodeRemainder & (uint8(1) << rem)) == 0 {
		return ErrInvalidBase32Length
	}

	if e.strict && e.hasPad && rem != 0 {
		return ErrInvalidBase32Length
	}

	return nil
}

// decode writes the decoded form of src to dst and returns the number of
// bytes written.
//
// invariants:
//
// - len(src) > 0
//
// - e.checkLength(len(src)) == nil
//
// - len(dst) >= decodeBound(len(src))
func (e Encoding) decode(dst, src []byte) (int, error) {
	tab := e.alpha.decodeTab()
	n := len(src)
	rem := n % decodeChunkLen

	// body holds the full chunks that precede the final, possibly padded or
	// partial, group
	body := n - rem
	if rem == 0 {
		body -= decodeChunkLen
	}

	// The batched stage always leaves at least one full chunk of output
	// after it so that the overhang of its last store stays inside dst.
	fast := n - decodeChunkLen - rem

	srcPtr := unsafe.Pointer(unsafe.SliceData(src))
	dstPtr := unsafe.Pointer(unsafe.SliceData(dst))

	var si, di int

	for ; fast-si >= decodeBlockLen; si, di = si+decodeBlockLen, di+20 {
		w0, ok0 := decodeChunk(unsafe.Add(srcPtr, si), tab)
		w1, ok1 := decodeChunk(unsafe.Add(srcPtr, si+8), tab)
		w2, ok2 := decodeChunk(unsafe.Add(srcPtr, si+16), tab)
		w3, ok3 := decodeChunk(unsafe.Add(srcPtr, si+24), tab)

		if !(ok0 && ok1 && ok2 && ok3) {
			return 0, invalidByteAt(tab, src, si, decodeBlockLen)
		}

		p := unsafe.Add(dstPtr, di)
		storeWord(p, w0)
		storeWord(unsafe.Add(p, 5), w1)
		storeWord(unsafe.Add(p, 10), w2)
		storeWord(unsafe.Add(p, 15), w3)
	}

	for ; body-si >= decodeChunkLen; si, di = si+decodeChunkLen, di+5 {
		w, ok := decodeChunk(unsafe.Add(srcPtr, si), tab)
		if !ok {
			return 0, invalidByteAt(tab, src, si, decodeChunkLen)
		}

		p := unsafe.Add(dstPtr, di)
		*(*byte)(p) = byte(w >> 56)
		*(*byte)(unsafe.Add(p, 1)) = byte(w >> 48)
		*(*byte)(unsafe.Add(p, 2)) = byte(w >> 40)
		*(*byte)(unsafe.Add(p, 3)) = byte(w >> 32)
		*(*byte)(unsafe.Add(p, 4)) = byte(w >> 24)
	}

	// Tail.
	var acc uint64
	var k int
	padAt := -1

	for i := si; i < n; i++ {
		b := src[i]
		if e.hasPad && b == e.pad {
			padAt = i
			break
		}

		c := tab[b]
		if c == b32Invalid {
			return 0, &InvalidByteError{Index: i, Byte: b}
		}

		acc |= uint64(c) << (59 - 5*k)
		k++
	}

	if padAt >= 0 {
		for i := padAt + 1; i < n; i++ {
			if src[i] != e.pad {
				return 0, &InvalidByteError{Index: i, Byte: src[i]}
			}
		}
	}

	bits := int(tailBits[k])
	if bits < 0 {
		// a bare symbol count is always valid after checkLength, so only
		// padding can end a group here
		return 0, &InvalidByteError{Index: padAt, Byte: e.pad}
	}

	if e.strict {
		if extra := 5*k - bits; extra > 0 && acc&((uint64(1)<<extra-1)<<(64-5*k)) != 0 {
			return 0, &InvalidByteError{Index: si + k - 1, Byte: src[si+k-1]}
		}
	}

	for j := 0; j < bits; j += 8 {
		dst[di] = byte(acc >> (56 - j))
		di++
	}

	return di, nil
}

// DecodeToSlice decodes the source slice into the destination slice and
// returns the number of bytes written, which can be less than DecodedSize
// when src is padded.
//
// ErrInvalidBase32Length is returned when len(src) cannot be produced by an
// encoder and an *InvalidByteError when a byte is not part of the alphabet.
// Nothing written to dst is meaningful when an error is returned; it is the
// parent context's responsibility to clear the dst slice should that be the
// ideal rollback state.
//
// This function panics if the destination does not have enough space in the
// slice for the decoded form of src. DecodedSize is sufficient for any src
// when e does not pad and for any src whose length is a multiple of 8 when it
// does. Padded encodings also accept unpadded input; such input needs
// (n/8)*5 + ((n%8)*5)/8 bytes where n is the length of src.
//
// invariants:
//
// - len(dst) >= e.DecodedSize(len(src)), see above for unpadded input to a
// padded encoding
func (e Encoding) DecodeToSlice(dst, src []byte) (int, error) {
	n := len(src)
	if n == 0 {
		return 0, nil
	}

	if err := e.checkLength(n); err != nil {
		return 0, err
	}

	// guard statement forcing panics rather than letting next call
	// lead to undefined behaviors

	if len(dst) < decodeBound(n) {
		panic("base32: decode destination too short")
	}

	return e.decode(dst, src)
}

// Decode returns the decoded form of src if src is not empty. If src is
// empty nil is returned.
//
// If an error occurs during decoding then a nil slice and the error are
// returned.
func (e Encoding) Decode(src []byte) ([]byte, error) {
	n := len(src)
	if n == 0 {
		return nil, nil
	}

	if err := e.checkLength(n); err != nil {
		return nil, err
	}

	dst := make([]byte, decodeBound(n))

	w, err := e.decode(dst, src)
	if err != nil {
		return nil, err
	}

	return dst[:w], nil
}

// DecodeString is like Decode but takes its input as a string.
func (e Encoding) DecodeString(src string) ([]byte, error) {
	// decode never writes to its source
	return e.Decode(unsafe.Slice(unsafe.StringData(src), len(src)))
}

// AppendDecode returns the decoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
//
// If an error occurs during decoding then dst is returned with its original
// length along with the error. Bytes between its length and capacity may
// have been overwritten.
func (e Encoding) AppendDecode(dst, src []byte) ([]byte, error) {
	n := len(src)
	if n == 0 {
		return dst, nil
	}

	if err := e.checkLength(n); err != nil {
		return dst, err
	}

	size := decodeBound(n)
	orig := len(dst)

	dst = slices.Grow(dst, size)

	w, err := e.decode(dst[orig:orig+size], src)
	if err != nil {
		return dst[:orig], err
	}

	return dst[:orig+w], nil
}
