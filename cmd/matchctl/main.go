// Command matchctl runs the matching engine from the command line, scores it
// against golden sets and maintains the provider search index.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
)

func main() {
	observability.InitLogger("matchctl", os.Getenv("ENVIRONMENT"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("matchctl failed")
		stop()
		os.Exit(1)
	}
}
