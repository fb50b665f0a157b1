package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/colony/internal/config"
	"github.com/zeusync/colony/internal/injector"
)

func main() {
	path := flag.String("config", "configs/colony.yaml", "path to the colony config")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		fmt.Println("Error building runtime:", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := rt.Run(ctx); err != nil {
		fmt.Println("Error running colony:", err)
		_ = rt.Close()
		cleanup()
		os.Exit(1)
	}
	if err := rt.Close(); err != nil {
		fmt.Println("Error closing runtime:", err)
	}
}
