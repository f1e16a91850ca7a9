package base32

import "math"

const (
	StdPadding rune = '='
	NoPadding  rune = -1
)

// Encoding is an immutable base32 configuration: an alphabet plus an optional
// padding byte. The zero value is the standard alphabet without padding.
type Encoding struct {
	alpha  Alphabet
	pad    byte
	hasPad bool
	strict bool
}

var (
	// Standard is the RFC 4648 encoding, padded with '='.
	Standard = Encoding{alpha: AlphabetStandard, pad: '=', hasPad: true}

	// ExtendedHex is the RFC 4648 "base32hex" encoding, padded with '='.
	ExtendedHex = Encoding{alpha: AlphabetExtendedHex, pad: '=', hasPad: true}

	// Crockford is Douglas Crockford's encoding without padding or check
	// symbols.
	Crockford = Encoding{alpha: AlphabetCrockford}

	// ZBase32 is the z-base-32 encoding without padding.
	ZBase32 = Encoding{alpha: AlphabetZBase32}
)

// WithPadding returns a copy of e that pads with the given byte, or does not
// pad at all when padding is NoPadding.
//
// It panics if padding is not a single byte, is '\r' or '\n', or is one of the
// alphabet's symbols.
func (e Encoding) WithPadding(padding rune) Encoding {
	if padding == NoPadding {
		e.pad, e.hasPad = 0, false
		return e
	}

	if padding < 0 || padding > 0xFF || padding == '\r' || padding == '\n' {
		panic("base32: invalid padding")
	}

	if e.alpha.decodeTab()[byte(padding)] != b32Invalid {
		panic("base32: padding contained in alphabet")
	}

	e.pad, e.hasPad = byte(padding), true
	return e
}

// Strict returns a copy of e that rejects non-canonical input: a final
// partial group must have its unused trailing bits cleared and, when padding
// is enabled, input must be fully padded to a multiple of 8 bytes.
func (e Encoding) Strict() Encoding {
	e.strict = true
	return e
}

func (e Encoding) Alphabet() Alphabet {
	return e.alpha
}

// Padding returns the padding byte as a rune, or NoPadding.
func (e Encoding) Padding() rune {
	if !e.hasPad {
		return NoPadding
	}

	return rune(e.pad)
}

func (e Encoding) IsStrict() bool {
	return e.strict
}

// EncodedSize returns the exact number of bytes EncodeToSlice writes for n
// input bytes, padding included.
//
// It panics if n is negative or the result does not fit in an int.
func (e Encoding) EncodedSize(n int) int {
	if n < 0 {
		panic("base32: invalid encode source length")
	}

	q, r := n/5, n%5

	if e.hasPad {
		// ((n+4)/5)*8
		if r != 0 {
			q++
		}

		if q > math.MaxInt/8 {
			panic("base32: invalid encode source length")
		}

		return q * 8
	}

	// (n*8+4)/5
	tail := (r*8 + 4) / 5
	if q > (math.MaxInt-tail)/8 {
		panic("base32: invalid encode source length")
	}

	return q*8 + tail
}

// DecodedSize returns an upper bound on the number of bytes DecodeToSlice
// writes for m input bytes. For padded encodings the bound assumes m is a
// multiple of 8, as fully padded input always is.
//
// It panics if m is negative.
func (e Encoding) DecodedSize(m int) int {
	if m < 0 {
		panic("base32: invalid decode source length")
	}

	if e.hasPad {
		return (m / 8) * 5
	}

	return decodeBound(m)
}

// decodeBound is floor(m*5/8) evaluated without overflow. It is the exact
// output length of unpadded input and an upper bound for padded input of any
// length, so the decoder checks destinations against it.
func decodeBound(m int) int {
	return (m/8)*5 + ((m%8)*5)/8
}
