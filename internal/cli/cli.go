// Package cli implements the base32 command line tool.
package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Streams are the standard streams of one invocation.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// NewCommand returns the root command reading named files from fsys.
func NewCommand(fsys afero.Fs, s Streams) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "base32 [flags] [FILE...]",
		Short: "Base32 encode or decode FILE, or standard input, to standard output",
		Long: `
Base32 encode or decode FILE, or standard input, to standard output.

With no FILE, or when FILE is -, read standard input. Several files are
processed concurrently and written in the order given.

Alphabets

  * std       RFC 4648 standard, padded with '='
  * hex       RFC 4648 extended hex, padded with '='
  * crockford Crockford's base32, unpadded
  * zbase32   z-base-32, unpadded

Every flag may also be set with a BASE32_ prefixed environment variable,
for example BASE32_ALPHABET=crockford, or in the YAML file given by
--config.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	addFlags(flags)
	flags.StringVar(&cfgFile, "config", "", "read settings from this YAML file")

	cmd.SetIn(s.In)
	cmd.SetOut(s.Out)
	cmd.SetErr(s.Err)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v, err := newViper(fsys, flags)
		if err != nil {
			return err
		}

		if err := readConfigFile(v, cfgFile); err != nil {
			return err
		}

		opts, err := loadOptions(v)
		if err != nil {
			return err
		}

		log := newLogger(s.Err, opts.Verbose)
		log.WithFields(logrus.Fields{
			"at":       "cli.NewCommand",
			"alphabet": opts.Encoding.Alphabet().String(),
			"padding":  opts.Encoding.Padding(),
			"strict":   opts.Encoding.IsStrict(),
			"decode":   opts.Decode,
			"wrap":     opts.Wrap,
			"config":   v.ConfigFileUsed(),
			"inputs":   len(args),
		}).Debug("resolved_options")

		return transcodeAll(cmd.Context(), log, fsys, opts, args, s.In, s.Out)
	}

	return cmd
}

// Main runs the command with args and returns the process exit code.
func Main(ctx context.Context, fsys afero.Fs, args []string, s Streams) int {
	cmd := NewCommand(fsys, s)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		newLogger(s.Err, false).WithFields(logrus.Fields{
			"at":    "cli.Main",
			"error": err.Error(),
		}).Error("base32_failed")

		return 1
	}

	return 0
}
