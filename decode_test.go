package base32

import (
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodedSize(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	for i := range 8 {
		n := (math.MaxInt-7)/8*8 + i

		is.Equal((n/8)*5+((n%8)*5)/8, Crockford.DecodedSize(n))
		is.Equal((n/8)*5, Standard.DecodedSize(n))
		is.Greater(Crockford.DecodedSize(n), 0)
	}

	for m := range 64 {
		is.Equal((m*5)/8, ZBase32.DecodedSize(m), m)
		is.Equal((m/8)*5, ExtendedHex.DecodedSize(m), m)
	}

	is.PanicsWithValue("base32: invalid decode source length", func() {
		Standard.DecodedSize(-1)
	})
}

func Test_checkLength(t *testing.T) {
	t.Parallel()

	is := assert.New(t)

	invalidRemainders := [8]bool{}
	invalidRemainders[1] = true
	invalidRemainders[3] = true
	invalidRemainders[6] = true

	for i := range 8 {
		n := (math.MaxInt-7)/8*8 + i

		if invalidRemainders[i] {
			is.ErrorIs(Standard.checkLength(n), ErrInvalidBase32Length)
			is.ErrorIs(Crockford.checkLength(n), ErrInvalidBase32Length)
			continue
		}

		is.NoError(Standard.checkLength(n))
		is.NoError(Crockford.checkLength(n))
		is.NoError(Crockford.Strict().checkLength(n))

		if i == 0 {
			is.NoError(Standard.Strict().checkLength(n))
		} else {
			is.ErrorIs(Standard.Strict().checkLength(n), ErrInvalidBase32Length)
		}
	}
}

// decodeVia selects which decode function a case drives.
type decodeVia uint8

const (
	decodeViaSlice decodeVia = iota + 1
	decodeViaDecode
	decodeViaAppend
	decodeViaString
)

type decodeCase struct {
	// given optionally rewrites the case and returns a description of the
	// starting conditions
	given func(decodeCase) (string, decodeCase)
	when  string
	then  string

	via decodeVia
	// enc is the configuration under test, Standard when nil
	enc *Encoding
	in  string
	buf []byte

	want      string
	wantMsg   string
	wantErr   error
	wantByte  *InvalidByteError
	wantPanic any
}

func (c decodeCase) encoding() Encoding {
	if c.enc == nil {
		return Standard
	}

	return *c.enc
}

func (c decodeCase) failing() bool {
	return c.wantErr != nil || c.wantMsg != "" || c.wantByte != nil
}

func givenStrict(c decodeCase) (string, decodeCase) {
	enc := c.encoding().Strict()
	c.enc = &enc

	return "a strict " + enc.Alphabet().String() + " encoding", c
}

func nestRun(t *testing.T, names []string, f func(*testing.T)) {
	t.Helper()

	if len(names) == 0 {
		f(t)
		return
	}

	t.Run(names[0], func(t *testing.T) {
		t.Helper()

		nestRun(t, names[1:], f)
	})
}

// runAll runs c and, for Decode cases, replays it through the other
// entry points.
func (c decodeCase) runAll(t *testing.T, i int) {
	t.Helper()

	id := strconv.Itoa(i)

	c.run(t, id)

	if c.via != decodeViaDecode || c.wantPanic != nil {
		return
	}

	str := c
	str.via = decodeViaString
	str.run(t, id, "string")

	app := c
	app.via = decodeViaAppend
	app.buf = []byte("test_")
	if !c.failing() {
		app.want = "test_" + c.want
	}
	app.run(t, id, "append")

	appNil := c
	appNil.via = decodeViaAppend
	appNil.run(t, id, "append-nil")

	if len(c.in) > 0 && !c.failing() {
		slice := c
		slice.via = decodeViaSlice
		slice.buf = make([]byte, decodeBound(len(c.in)))
		slice.run(t, id, "to-slice")
	}
}

func (c decodeCase) run(t *testing.T, names ...string) {
	t.Helper()

	c.buf = slices.Clone(c.buf)

	if c.given != nil {
		var desc string
		desc, c = c.given(c)
		names = append(names, "given "+desc)
	}

	then := c.then
	if then == "" {
		switch {
		case c.wantPanic != nil:
			then = "a panic should occur"
		case c.failing():
			then = "an error should occur"
		default:
			then = "no error should occur"
		}
	}

	nestRun(t, append(names, "when "+c.when, "then "+then), func(t *testing.T) {
		t.Helper()

		if c.failing() && c.wantPanic != nil {
			t.Fatal("misconfigured test case: expects both an error and a panic")
		}

		c.check(t)
	})
}

func (c decodeCase) check(t *testing.T) {
	t.Helper()

	is := assert.New(t)

	enc := c.encoding()

	var in []byte
	if len(c.in) > 0 {
		in = []byte(c.in)
	}

	if c.wantPanic != nil {
		is.Equal(decodeViaSlice, c.via, "misconfigured test case: only DecodeToSlice panics")
		is.PanicsWithValue(c.wantPanic, func() {
			_, _ = enc.DecodeToSlice(c.buf, in)
		})
		return
	}

	var (
		out []byte
		err error
	)

	switch c.via {
	case decodeViaSlice:
		var n int
		n, err = enc.DecodeToSlice(c.buf, in)
		if err != nil {
			// dst contents are unspecified after a failure
			is.Equal(0, n)
			break
		}
		out = c.buf[:n]
	case decodeViaDecode:
		out, err = enc.Decode(in)
		if len(in) == 0 {
			is.Nil(out)
		}
	case decodeViaString:
		out, err = enc.DecodeString(c.in)
	case decodeViaAppend:
		orig := string(c.buf)
		out, err = enc.AppendDecode(c.buf, in)
		if err != nil {
			// no partial output is appended
			is.Equal(orig, string(out))
			c.checkErr(t, err)
			return
		}
		if len(in) == 0 && c.buf == nil {
			is.Nil(out)
		}
	default:
		panic("misconfigured test case")
	}

	if c.failing() {
		c.checkErr(t, err)
		if c.via != decodeViaSlice {
			is.Nil(out)
		}
		return
	}

	is.NoError(err)
	is.Equal(c.want, string(out))
}

func (c decodeCase) checkErr(t *testing.T, err error) {
	t.Helper()

	is := assert.New(t)

	if !is.Error(err) {
		return
	}

	if c.wantErr != nil {
		is.ErrorIs(err, c.wantErr)
	}

	if c.wantByte != nil {
		is.ErrorIs(err, ErrInvalidBase32Char)

		var byteErr *InvalidByteError
		if is.ErrorAs(err, &byteErr) {
			is.Equal(*c.wantByte, *byteErr)
		}
	}

	if c.wantMsg != "" {
		is.Equal(c.wantMsg, err.Error())
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	crockford := Crockford
	zbase := ZBase32
	hex := ExtendedHex
	noPad := Standard.WithPadding(NoPadding)
	plusPad := Standard.WithPadding('+')

	tcs := []decodeCase{
		{
			when: "8 bytes",
			enc:  &crockford,
			in:   "64S36D1N",
			want: "12345",
		},
		{
			when:     "8 bytes where last is invalid",
			enc:      &crockford,
			in:       "64S36D1U",
			wantByte: &InvalidByteError{Index: 7, Byte: 'U'},
			wantMsg:  "invalid base32 character 'U' at index 7",
		},
		{
			when: "31 bytes",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6RVKGE8",
			want: "1234567890123456789",
		},
		{
			when:     "31 bytes where last is invalid",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RVKGEU",
			wantByte: &InvalidByteError{Index: 30, Byte: 'U'},
		},
		{
			when: "31 bytes with non-zero tail bits",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6RVKGE4",
			want: "1234567890123456788",
		},
		{
			given:    givenStrict,
			when:     "31 bytes with non-zero tail bits",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RVKGE4",
			wantByte: &InvalidByteError{Index: 30, Byte: '4'},
		},
		{
			when:    "30 bytes",
			enc:     &crockford,
			in:      "64S36D1N6RVKGE9G64S36D1N6RVKGE",
			wantErr: ErrInvalidBase32Length,
			wantMsg: ErrInvalidBase32Length.Error(),
		},
		{
			when: "29 bytes",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6RVKG",
			want: "123456789012345678",
		},
		{
			when:     "29 bytes where last is invalid",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RVKU",
			wantByte: &InvalidByteError{Index: 28, Byte: 'U'},
		},
		{
			given:    givenStrict,
			when:     "29 bytes with non-zero tail bits",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RVK1",
			wantByte: &InvalidByteError{Index: 28, Byte: '1'},
		},
		{
			when: "29 bytes with non-zero tail bits",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6RVK1",
			want: "123456789012345670",
		},
		{
			when:     "28 bytes where last is invalid",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RVU",
			wantByte: &InvalidByteError{Index: 27, Byte: 'U'},
		},
		{
			given:    givenStrict,
			when:     "28 bytes with non-zero tail bits",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6RV8",
			wantByte: &InvalidByteError{Index: 27, Byte: '8'},
		},
		{
			when: "28 bytes",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6RVG",
			want: "12345678901234567",
		},
		{
			when:    "27 bytes",
			enc:     &crockford,
			in:      "64S36D1N6RVKGE9G64S36D1N6RV",
			wantErr: ErrInvalidBase32Length,
			wantMsg: ErrInvalidBase32Length.Error(),
		},
		{
			when:     "26 bytes where last is invalid",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N6U",
			wantByte: &InvalidByteError{Index: 25, Byte: 'U'},
		},
		{
			given:    givenStrict,
			when:     "26 bytes with non-zero tail bits",
			enc:      &crockford,
			in:       "64S36D1N6RVKGE9G64S36D1N62",
			wantByte: &InvalidByteError{Index: 25, Byte: '2'},
		},
		{
			when: "26 bytes",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N6R",
			want: "1234567890123456",
		},
		{
			when:    "25 bytes",
			enc:     &crockford,
			in:      "64S36D1N6RVKGE9G64S36D1N6",
			wantErr: ErrInvalidBase32Length,
			wantMsg: ErrInvalidBase32Length.Error(),
		},
		{
			when: "24 bytes",
			enc:  &crockford,
			in:   "64S36D1N6RVKGE9G64S36D1N",
			want: "123456789012345",
		},
		{
			when:     "lower case input to an upper case alphabet",
			enc:      &crockford,
			in:       "64s36d1n",
			wantByte: &InvalidByteError{Index: 2, Byte: 's'},
		},
		{
			when:     "an alias symbol",
			enc:      &crockford,
			in:       "64S36D1O",
			wantByte: &InvalidByteError{Index: 7, Byte: 'O'},
		},
		{
			when: "0 bytes",
		},
		{
			when: "padded 1 byte",
			in:   "MY======",
			want: "f",
		},
		{
			when: "padded 6 bytes",
			in:   "MZXW6YTBOI======",
			want: "foobar",
		},
		{
			when: "extended hex padded 6 bytes",
			enc:  &hex,
			in:   "CPNMUOJ1E8======",
			want: "foobar",
		},
		{
			when: "z-base-32 6 bytes",
			enc:  &zbase,
			in:   "c3zs6aubqe",
			want: "foobar",
		},
		{
			when:     "z-base-32 upper case",
			enc:      &zbase,
			in:       "C3ZS6AUBQE",
			wantByte: &InvalidByteError{Index: 0, Byte: 'C'},
		},
		{
			when: "unpadded input to a padded encoding",
			in:   "MZXW6YTBOI",
			want: "foobar",
		},
		{
			given:   givenStrict,
			when:    "unpadded input to a padded encoding",
			in:      "MZXW6YTBOI",
			wantErr: ErrInvalidBase32Length,
		},
		{
			given: givenStrict,
			when:  "fully padded input",
			in:    "MZXW6YTBOI======",
			want:  "foobar",
		},
		{
			when: "a custom pad",
			enc:  &plusPad,
			in:   "MZXW6YTBOI++++++",
			want: "foobar",
		},
		{
			when:     "the default pad given to a custom pad encoding",
			enc:      &plusPad,
			in:       "MZXW6YTBOI======",
			wantByte: &InvalidByteError{Index: 10, Byte: '='},
		},
		{
			when:     "padding given to an unpadded encoding",
			enc:      &noPad,
			in:       "MY======",
			wantByte: &InvalidByteError{Index: 2, Byte: '='},
		},
		{
			when:     "padding before the final block",
			in:       "MY======MZXW6YTB",
			wantByte: &InvalidByteError{Index: 2, Byte: '='},
		},
		{
			when:     "a symbol after padding",
			in:       "MY=A====",
			wantByte: &InvalidByteError{Index: 3, Byte: 'A'},
		},
		{
			when:     "padding after a single symbol",
			in:       "M=======",
			wantByte: &InvalidByteError{Index: 1, Byte: '='},
		},
		{
			when:     "padding after three symbols",
			in:       "MZX=====",
			wantByte: &InvalidByteError{Index: 3, Byte: '='},
		},
		{
			when:     "a block of only padding",
			in:       "========",
			wantByte: &InvalidByteError{Index: 0, Byte: '='},
		},
		{
			when:     "an invalid byte in a batched block",
			in:       "MZXW6YTBOIMZ!W6YTBOIMZXW6YTBOIMZXW6YTBOIMZXW6YTBOI======",
			wantByte: &InvalidByteError{Index: 12, Byte: '!'},
		},
		{
			when:      "to-slice decode destination has no capacity and source is not empty",
			via:       decodeViaSlice,
			enc:       &crockford,
			in:        "00",
			buf:       []byte{},
			wantPanic: "base32: decode destination too short",
		},
		{
			when:      "to-slice decode destination is sized by DecodedSize for unpadded input to a padded encoding",
			via:       decodeViaSlice,
			in:        "MY",
			buf:       make([]byte, Standard.DecodedSize(2)),
			wantPanic: "base32: decode destination too short",
		},
		{
			when: "to-slice decode destination is sized for unpadded input to a padded encoding",
			via:  decodeViaSlice,
			in:   "MZXW6YTBOI",
			buf:  make([]byte, 6),
			want: "foobar",
		},
		{
			when: "to-slice decode src is empty",
			via:  decodeViaSlice,
			in:   "",
			want: "",
		},
		{
			when:    "to-slice decode source is invalid length",
			via:     decodeViaSlice,
			in:      "0",
			wantErr: ErrInvalidBase32Length,
			wantMsg: ErrInvalidBase32Length.Error(),
		},
		{
			when:    "append-decode source is invalid length",
			via:     decodeViaAppend,
			enc:     &crockford,
			in:      "0",
			wantErr: ErrInvalidBase32Length,
			wantMsg: ErrInvalidBase32Length.Error(),
		},
		{
			when:     "append-decode source has an invalid char",
			via:      decodeViaAppend,
			enc:      &crockford,
			in:       "0U",
			buf:      []byte(`test_`),
			wantErr:  ErrInvalidBase32Char,
			wantByte: &InvalidByteError{Index: 1, Byte: 'U'},
		},
	}

	for i, tc := range tcs {
		if tc.via == 0 {
			tc.via = decodeViaDecode
		}

		tc.runAll(t, i)
	}
}
