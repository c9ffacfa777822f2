package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/creahut/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/creahut/config.toml)")
	envPath := flag.String("env", "", "dotenv file holding the API key (optional, defaults to ./.env)")
	logPath := flag.String("log", "", "diagnostics log file (optional)")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		EnvPath:    *envPath,
		LogPath:    *logPath,
		Debug:      *debug,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "creahut: %v\n", err)
		return 1
	}
	return 0
}
