package base32

import (
	"encoding/binary"
	"slices"
	"unsafe"
)

const (
	encodeChunkLen = 5
	encodeBlockLen = encodeChunkLen * 4

	// Each batched iteration reads four 40-bit groups as overlapping 64-bit
	// words, the last one starting 15 bytes in, so 3 bytes past the block
	// must be readable.
	encodeBlockOverhead = 3
)

var (
	// symbols written for a trailing partial group, indexed by n%5
	encodeTailLen = [encodeChunkLen]int{0, 2, 4, 5, 7}

	// pad bytes that complete the final 8 byte block, indexed by n%5
	padLen = [encodeChunkLen]int{0, 6, 4, 3, 1}
)

// encodeWord writes the eight symbols held in the top 40 bits of w.
func encodeWord(dstPtr unsafe.Pointer, tab *[32]byte, w uint64) {
	*(*byte)(dstPtr) = tab[(w>>59)&31]
	*(*byte)(unsafe.Add(dstPtr, 1)) = tab[(w>>54)&31]
	*(*byte)(unsafe.Add(dstPtr, 2)) = tab[(w>>49)&31]
	*(*byte)(unsafe.Add(dstPtr, 3)) = tab[(w>>44)&31]
	*(*byte)(unsafe.Add(dstPtr, 4)) = tab[(w>>39)&31]
	*(*byte)(unsafe.Add(dstPtr, 5)) = tab[(w>>34)&31]
	*(*byte)(unsafe.Add(dstPtr, 6)) = tab[(w>>29)&31]
	*(*byte)(unsafe.Add(dstPtr, 7)) = tab[(w>>24)&31]
}

func loadWord(p unsafe.Pointer) uint64 {
	return binary.BigEndian.Uint64((*[8]byte)(p)[:])
}

// encodeSymbols writes the unpadded encoded form of the n bytes at srcPtr and
// returns the number of symbols written.
//
// invariants:
//
// - n > 0
//
// - dstPtr addresses at least (n*8+4)/5 writable bytes
func encodeSymbols(dstPtr, srcPtr unsafe.Pointer, n int, tab *[32]byte) int {
	var written int

	for ; n >= encodeBlockLen+encodeBlockOverhead; n -= encodeBlockLen {
		w0 := loadWord(srcPtr)
		w1 := loadWord(unsafe.Add(srcPtr, 5))
		w2 := loadWord(unsafe.Add(srcPtr, 10))
		w3 := loadWord(unsafe.Add(srcPtr, 15))

		encodeWord(dstPtr, tab, w0)
		encodeWord(unsafe.Add(dstPtr, 8), tab, w1)
		encodeWord(unsafe.Add(dstPtr, 16), tab, w2)
		encodeWord(unsafe.Add(dstPtr, 24), tab, w3)

		srcPtr = unsafe.Add(srcPtr, encodeBlockLen)
		dstPtr = unsafe.Add(dstPtr, 32)
		written += 32
	}

	written += (n/encodeChunkLen)*8 + encodeTailLen[n%encodeChunkLen]

	for range n / encodeChunkLen {
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))
		b3 := *(*byte)(unsafe.Add(srcPtr, 3))
		b4 := *(*byte)(unsafe.Add(srcPtr, 4))

		*(*byte)(dstPtr) = tab[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = tab[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = tab[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = tab[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = tab[((b2<<1)|(b3>>7))&31]
		*(*byte)(unsafe.Add(dstPtr, 5)) = tab[(b3>>2)&31]
		*(*byte)(unsafe.Add(dstPtr, 6)) = tab[((b3<<3)|(b4>>5))&31]
		*(*byte)(unsafe.Add(dstPtr, 7)) = tab[b4&31]

		srcPtr = unsafe.Add(srcPtr, encodeChunkLen)
		dstPtr = unsafe.Add(dstPtr, 8)
	}

	// Tail (no padding).
	switch n % encodeChunkLen {
	case 1:
		b0 := *(*byte)(srcPtr)

		*(*byte)(dstPtr) = tab[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = tab[(b0<<2)&31]
	case 2:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))

		*(*byte)(dstPtr) = tab[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = tab[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = tab[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = tab[(b1<<4)&31]
	case 3:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))

		*(*byte)(dstPtr) = tab[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = tab[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = tab[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = tab[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = tab[(b2<<1)&31]
	case 4:
		b0 := *(*byte)(srcPtr)
		b1 := *(*byte)(unsafe.Add(srcPtr, 1))
		b2 := *(*byte)(unsafe.Add(srcPtr, 2))
		b3 := *(*byte)(unsafe.Add(srcPtr, 3))

		*(*byte)(dstPtr) = tab[b0>>3]
		*(*byte)(unsafe.Add(dstPtr, 1)) = tab[((b0<<2)|(b1>>6))&31]
		*(*byte)(unsafe.Add(dstPtr, 2)) = tab[(b1>>1)&31]
		*(*byte)(unsafe.Add(dstPtr, 3)) = tab[((b1<<4)|(b2>>4))&31]
		*(*byte)(unsafe.Add(dstPtr, 4)) = tab[((b2<<1)|(b3>>7))&31]
		*(*byte)(unsafe.Add(dstPtr, 5)) = tab[(b3>>2)&31]
		*(*byte)(unsafe.Add(dstPtr, 6)) = tab[(b3<<3)&31]
	}

	return written
}

// encode fills dst with the padded encoded form of the n bytes at srcPtr.
//
// invariants:
//
// - n > 0
//
// - len(dst) >= e.EncodedSize(n)
func (e Encoding) encode(dst []byte, srcPtr unsafe.Pointer, n int) int {
	written := encodeSymbols(unsafe.Pointer(&dst[0]), srcPtr, n, e.alpha.encodeTab())

	return written + e.AddPadding(dst[written:], n)
}

// AddPadding writes the pad bytes that follow the symbols of an inputLen byte
// input and returns how many were written. It writes nothing when e does not
// pad. EncodeToSlice already calls it, so it is only needed when symbols are
// produced some other way.
//
// It panics if dst cannot hold the padding.
func (e Encoding) AddPadding(dst []byte, inputLen int) int {
	if !e.hasPad {
		return 0
	}

	if inputLen < 0 {
		panic("base32: invalid encode source length")
	}

	n := padLen[inputLen%encodeChunkLen]
	if len(dst) < n {
		panic("base32: padding destination too short")
	}

	for i := range n {
		dst[i] = e.pad
	}

	return n
}

// EncodeToSlice fills dst with the encoded form of src, padding included, and
// returns the number of bytes written.
//
// This function panics if the destination does not have enough space in the
// slice for the encoded form of src. Size dst with EncodedSize.
//
// invariants:
//
// - len(dst) >= e.EncodedSize(len(src))
func (e Encoding) EncodeToSlice(dst, src []byte) int {
	// guard statements forcing panics rather than letting next call
	// lead to undefined behaviors

	n := e.EncodedSize(len(src))
	if len(dst) < n {
		panic("base32: encode destination too short")
	}

	if n == 0 {
		return 0
	}

	return e.encode(dst, unsafe.Pointer(&src[0]), len(src))
}

// Encode returns nil if src is empty, otherwise it returns the
// encoded form of src.
func (e Encoding) Encode(src []byte) []byte {
	n := len(src)
	if n == 0 {
		return nil
	}

	dst := make([]byte, e.EncodedSize(n))

	e.encode(dst, unsafe.Pointer(&src[0]), n)

	return dst
}

// EncodeString returns "" if src is empty, otherwise it returns the
// encoded form of src.
func (e Encoding) EncodeString(src string) string {
	n := len(src)
	if n == 0 {
		return ""
	}

	dst := make([]byte, e.EncodedSize(n))

	e.encode(dst, unsafe.Pointer(unsafe.StringData(src)), n)

	return string(dst)
}

// AppendEncode returns the encoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (e Encoding) AppendEncode(dst, src []byte) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	size := e.EncodedSize(n)
	orig := len(dst)

	dst = slices.Grow(dst, size)
	dst = dst[:orig+size]

	e.encode(dst[orig:], unsafe.Pointer(&src[0]), n)

	return dst
}

// AppendEncodeString returns the encoded form of src appended to dst
// if src is not empty. If src is empty dst is returned as-is.
func (e Encoding) AppendEncodeString(dst []byte, src string) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	size := e.EncodedSize(n)
	orig := len(dst)

	dst = slices.Grow(dst, size)
	dst = dst[:orig+size]

	e.encode(dst[orig:], unsafe.Pointer(unsafe.StringData(src)), n)

	return dst
}
