// Command base32 encodes and decodes base32 data.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/josephcopenhaver/base32/v2/internal/cli"
	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := cli.Main(ctx, afero.NewOsFs(), os.Args[1:], cli.Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})

	stop()
	os.Exit(code)
}
