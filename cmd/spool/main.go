// Command spool reads a body from a file or stdin into a spooled temp file
// and writes it back out. Bodies larger than --max-size are moved to a temp
// file on disk while they are read; with --out such a file is renamed into
// place instead of being copied.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("spool failed")
		os.Exit(1)
	}
}
