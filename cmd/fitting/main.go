// Package main starts the equipment-fitting service and handles termination.
//
// The process wraps the fitting state machine in an HTTP JSON surface with a
// websocket progress stream; deformation math stays in the viewer client.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	fittingcmd "github.com/arkavale/gearforge/internal/cmd/fitting"
)

func main() {
	cfg, err := fittingcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[FITTING] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fittingcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
