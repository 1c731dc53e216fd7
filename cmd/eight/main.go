package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	eightcmd "github.com/nicklatkovich/ktane-eight/internal/cmd/eight"
	"github.com/nicklatkovich/ktane-eight/internal/platform/config"
)

func main() {
	cfg, err := eightcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("eight: parse flags: %v", err)
	}
	log.SetPrefix("[EIGHT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eightcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("eight: %v", err)
	}
}
