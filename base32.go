// Package base32 implements the base32 family of binary-to-text encodings:
// the RFC 4648 standard and extended hex alphabets, Crockford's alphabet
// (without check symbols) and z-base-32.
//
// Encodings are plain values. Pick one of Standard, ExtendedHex, Crockford or
// ZBase32, optionally derive a variant with WithPadding or Strict, and either
// use the allocating helpers or size a buffer with EncodedSize / DecodedSize
// and call EncodeToSlice / DecodeToSlice.
//
// Size calculations panic when a length cannot be represented, and the
// to-slice forms panic when handed a destination smaller than the size
// functions report. Malformed encoded input is never a panic: it is reported
// as ErrInvalidBase32Length or an *InvalidByteError.
//
// Decoding tables are exact inverses of the alphabets. Lower case input is
// rejected by the upper case alphabets and vice versa, and Crockford's
// aliases (O, I, L) are not accepted.
package base32

// Encode returns the Standard encoding of src, or nil if src is empty.
func Encode(src []byte) []byte {
	return Standard.Encode(src)
}

// EncodeString returns the Standard encoding of src.
func EncodeString(src string) string {
	return Standard.EncodeString(src)
}

func AppendEncode(dst, src []byte) []byte {
	return Standard.AppendEncode(dst, src)
}

func AppendEncodeString(dst []byte, src string) []byte {
	return Standard.AppendEncodeString(dst, src)
}

// Decode decodes Standard encoded src.
func Decode(src []byte) ([]byte, error) {
	return Standard.Decode(src)
}

func DecodeString(src string) ([]byte, error) {
	return Standard.DecodeString(src)
}

func AppendDecode(dst, src []byte) ([]byte, error) {
	return Standard.AppendDecode(dst, src)
}
