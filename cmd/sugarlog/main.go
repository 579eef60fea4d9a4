package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/faizmokh/sugarlog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Main(ctx)
}
