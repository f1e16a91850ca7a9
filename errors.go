package base32

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidBase32Length = errors.New("invalid base32 length")
	ErrInvalidBase32Char   = errors.New("invalid base32 character")
)

// InvalidByteError reports the first input byte that is not part of the
// alphabet, or a padding byte found where the encoded block cannot end.
//
// It matches ErrInvalidBase32Char with errors.Is.
type InvalidByteError struct {
	Index int
	Byte  byte
}

func (e *InvalidByteError) Error() string {
	return ErrInvalidBase32Char.Error() + " " + strconv.QuoteRune(rune(e.Byte)) + " at index " + strconv.Itoa(e.Index)
}

func (e *InvalidByteError) Is(target error) bool {
	return target == ErrInvalidBase32Char
}
