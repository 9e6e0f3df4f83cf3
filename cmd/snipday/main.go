package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/snipday/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("snipday", pflag.ContinueOnError)
	configPath := flags.String("config", "", "override config path (optional)")
	prefsPath := flags.String("prefs", "", "override preferences path (optional)")
	apiBase := flags.String("api", "", "snippet service base URL (optional)")
	pollSeconds := flags.Int("poll", 0, "refresh interval in seconds (optional, defaults to 60s)")
	logFile := flags.String("log-file", "", `log file path; "-" disables logging`)
	debug := flags.Bool("debug", false, "enable debug logging")
	once := flags.Bool("once", false, "print the current snippet and exit")
	showVersion := flags.Bool("version", false, "print version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "snipday: %v\n", err)
		return 2
	}
	if *showVersion {
		fmt.Println("snipday", version)
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIBase:    *apiBase,
		LogFile:    *logFile,
		Debug:      *debug,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	var err error
	if *once {
		err = app.PrintCurrent(ctx, opts, os.Stdout)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snipday: %v\n", err)
		return 1
	}
	return 0
}
