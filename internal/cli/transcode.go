package cli

import (
	"context"
	"io"
	"runtime"
	"slices"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const stdinName = "-"

var asciiSpace = [256]bool{'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true}

// transcode encodes or decodes one whole input.
func (o Options) transcode(data []byte) ([]byte, error) {
	if o.Decode {
		return o.Encoding.Decode(stripSpace(data))
	}

	return wrapLines(o.Encoding.Encode(data), o.Wrap), nil
}

// stripSpace removes ASCII whitespace in place.
func stripSpace(b []byte) []byte {
	n := 0
	for _, c := range b {
		if !asciiSpace[c] {
			b[n] = c
			n++
		}
	}

	return b[:n]
}

// wrapLines splits text into lines of at most width bytes, each terminated
// by a newline. A width of zero produces a single line.
func wrapLines(text []byte, width int) []byte {
	if len(text) == 0 {
		return nil
	}

	if width <= 0 || len(text) <= width {
		return append(text, '\n')
	}

	out := make([]byte, 0, len(text)+len(text)/width+1)
	for len(text) > width {
		out = append(out, text[:width]...)
		out = append(out, '\n')
		text = text[width:]
	}

	return append(append(out, text...), '\n')
}

func displayName(name string) string {
	if name == stdinName {
		return "standard input"
	}

	return name
}

// transcodeAll processes every named input concurrently and writes the
// results to out in argument order. Nothing is written if any input fails.
func transcodeAll(ctx context.Context, log logrus.FieldLogger, fsys afero.Fs, opts Options, names []string, in io.Reader, out io.Writer) error {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	var stdin []byte
	if slices.Contains(names, stdinName) {
		b, err := io.ReadAll(in)
		if err != nil {
			return oops.Wrapf(err, "read %s", displayName(stdinName))
		}

		stdin = b
	}

	op := "encode"
	if opts.Decode {
		op = "decode"
	}

	results := make([][]byte, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data := stdin
			if name != stdinName {
				b, err := afero.ReadFile(fsys, name)
				if err != nil {
					return oops.In("cli").With("input", name).Wrapf(err, "read %s", name)
				}

				data = b
			} else if len(names) > 1 {
				// decoding strips whitespace in place
				data = slices.Clone(stdin)
			}

			result, err := opts.transcode(data)
			if err != nil {
				return oops.In("cli").With("input", displayName(name), "op", op).Wrapf(err, "%s %s", op, displayName(name))
			}

			log.WithFields(logrus.Fields{
				"at":        "cli.transcodeAll",
				"input":     displayName(name),
				"op":        op,
				"in_bytes":  len(data),
				"out_bytes": len(result),
			}).Debug("transcoded_input")

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		if _, err := out.Write(result); err != nil {
			return oops.Wrapf(err, "write output")
		}
	}

	return nil
}
