package cli

import (
	"fmt"
	"strings"

	"github.com/josephcopenhaver/base32/v2"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "BASE32"

	keyAlphabet = "alphabet"
	keyPad      = "pad"
	keyStrict   = "strict"
	keyDecode   = "decode"
	keyWrap     = "wrap"
	keyVerbose  = "verbose"

	defaultWrap = 76

	padNone = "none"
)

// Options is the resolved configuration of one invocation.
type Options struct {
	Encoding base32.Encoding
	Decode   bool
	Wrap     int
	Verbose  bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAlphabet, base32.AlphabetStandard.String())
	v.SetDefault(keyPad, "")
	v.SetDefault(keyStrict, false)
	v.SetDefault(keyDecode, false)
	v.SetDefault(keyWrap, defaultWrap)
	v.SetDefault(keyVerbose, false)
}

func addFlags(flags *pflag.FlagSet) {
	flags.StringP(keyAlphabet, "a", base32.AlphabetStandard.String(), "alphabet: std, hex, crockford or zbase32")
	flags.String(keyPad, "", `padding byte, "none" to disable (default: the alphabet's own)`)
	flags.Bool(keyStrict, false, "reject non-canonical input when decoding")
	flags.BoolP(keyDecode, "d", false, "decode data")
	flags.IntP(keyWrap, "w", defaultWrap, "wrap encoded lines after COLS characters, 0 disables")
	flags.Bool(keyVerbose, false, "log debug details to standard error")
}

// newViper returns a viper instance resolving, from highest priority, the
// flags, BASE32_* environment variables, the optional config file and the
// defaults.
func newViper(fsys afero.Fs, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fsys)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for _, key := range []string{keyAlphabet, keyPad, keyStrict, keyDecode, keyWrap, keyVerbose} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return nil, oops.Wrapf(err, "bind flag %s", key)
		}
	}

	return v, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return oops.Wrapf(err, "read config file %s", path)
	}

	return nil
}

func loadOptions(v *viper.Viper) (Options, error) {
	alpha, err := base32.ParseAlphabet(v.GetString(keyAlphabet))
	if err != nil {
		return Options{}, oops.Wrapf(err, "invalid %s", keyAlphabet)
	}

	enc, err := withPadding(encodingFor(alpha), v.GetString(keyPad))
	if err != nil {
		return Options{}, err
	}

	if v.GetBool(keyStrict) {
		enc = enc.Strict()
	}

	wrap := v.GetInt(keyWrap)
	if wrap < 0 {
		return Options{}, oops.Errorf("invalid %s: %d is negative", keyWrap, wrap)
	}

	return Options{
		Encoding: enc,
		Decode:   v.GetBool(keyDecode),
		Wrap:     wrap,
		Verbose:  v.GetBool(keyVerbose),
	}, nil
}

func encodingFor(a base32.Alphabet) base32.Encoding {
	switch a {
	case base32.AlphabetExtendedHex:
		return base32.ExtendedHex
	case base32.AlphabetCrockford:
		return base32.Crockford
	case base32.AlphabetZBase32:
		return base32.ZBase32
	default:
		return base32.Standard
	}
}

// withPadding applies a configured pad value, turning the panics of
// Encoding.WithPadding into errors.
func withPadding(enc base32.Encoding, pad string) (_ base32.Encoding, err error) {
	switch {
	case pad == "":
		return enc, nil
	case strings.EqualFold(pad, padNone):
		return enc.WithPadding(base32.NoPadding), nil
	case len(pad) != 1:
		return enc, oops.Errorf("invalid %s %q: must be a single byte or %q", keyPad, pad, padNone)
	}

	defer func() {
		if r := recover(); r != nil {
			err = oops.Errorf("invalid %s %q: %s", keyPad, pad, fmt.Sprint(r))
		}
	}()

	return enc.WithPadding(rune(pad[0])), nil
}
