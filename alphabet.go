package base32

import (
	"errors"
	"strconv"
	"strings"
)

// Alphabet selects one of the built-in symbol sets.
type Alphabet uint8

const (
	// AlphabetStandard is the RFC 4648 section 6 alphabet: A-Z followed by 2-7.
	AlphabetStandard Alphabet = iota
	// AlphabetExtendedHex is the RFC 4648 section 7 alphabet: 0-9 followed by A-V.
	AlphabetExtendedHex
	// AlphabetCrockford is Douglas Crockford's alphabet, which drops I, L, O
	// and U. Check symbols are not supported.
	AlphabetCrockford
	// AlphabetZBase32 is the permuted, lower-case z-base-32 alphabet.
	AlphabetZBase32

	numAlphabets = iota
)

var ErrUnknownAlphabet = errors.New("unknown base32 alphabet")

var alphabetNames = [numAlphabets]string{
	AlphabetStandard:    "std",
	AlphabetExtendedHex: "hex",
	AlphabetCrockford:   "crockford",
	AlphabetZBase32:     "zbase32",
}

var alphabetAliases = map[string]Alphabet{
	"standard":     AlphabetStandard,
	"rfc4648":      AlphabetStandard,
	"extended-hex": AlphabetExtendedHex,
	"extendedhex":  AlphabetExtendedHex,
	"base32hex":    AlphabetExtendedHex,
	"crock":        AlphabetCrockford,
	"z-base-32":    AlphabetZBase32,
	"z-base32":     AlphabetZBase32,
}

// String returns the canonical short name of the alphabet.
func (a Alphabet) String() string {
	if int(a) >= len(alphabetNames) {
		return "Alphabet(" + strconv.Itoa(int(a)) + ")"
	}

	return alphabetNames[a]
}

// ParseAlphabet returns the Alphabet with the given name. Matching is case
// insensitive and accepts the names returned by String plus a few common
// spellings.
func ParseAlphabet(name string) (Alphabet, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for i, v := range alphabetNames {
		if v == name {
			return Alphabet(i), nil
		}
	}

	if a, ok := alphabetAliases[name]; ok {
		return a, nil
	}

	return 0, ErrUnknownAlphabet
}

func (a Alphabet) encodeTab() *[32]byte {
	return &encodeTabs[a]
}

func (a Alphabet) decodeTab() *[256]byte {
	return &decodeTabs[a]
}
