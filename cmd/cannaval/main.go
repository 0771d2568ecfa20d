package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/martinsantos/cannaval-sub000/internal/cli"
)

// version, commit, date are injected at build time with -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetPrefix("[CANNAVAL] ")
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		log.Fatalf("%v", err)
	}
}
