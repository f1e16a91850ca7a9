package base32

const b32Invalid = 0xFF

// symbol sets indexed by Alphabet
var alphabetChars = [numAlphabets]string{
	AlphabetStandard:    "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567",
	AlphabetExtendedHex: "0123456789ABCDEFGHIJKLMNOPQRSTUV",
	AlphabetCrockford:   "0123456789ABCDEFGHJKMNPQRSTVWXYZ",
	AlphabetZBase32:     "ybndrfg8ejkmcpqxot1uwisza345h769",
}

//
// decode tables are exact inverses of the encode tables: every byte that is
// not one of the 32 symbols maps to b32Invalid, including other letter cases
//

var encodeTabs, decodeTabs = func() ([numAlphabets][32]byte, [numAlphabets][256]byte) {
	var enc [numAlphabets][32]byte
	var dec [numAlphabets][256]byte

	for a, chars := range alphabetChars {
		if len(chars) != 32 {
			panic("base32: alphabet must contain 32 symbols")
		}

		for i := range dec[a] {
			dec[a][i] = b32Invalid
		}

		for i := range chars {
			v := chars[i]
			if dec[a][v] != b32Invalid {
				panic("base32: alphabet symbols must be distinct")
			}

			enc[a][i] = v
			dec[a][v] = byte(i)
		}
	}

	return enc, dec
}()
