package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"splitlife/internal/app"
	"splitlife/internal/core"
	_ "splitlife/internal/display"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	var overrides kvList
	flag.Var(&overrides, "set", "setting override in key=value form (repeatable)")
	logFile := flag.String("log", "", "write log lines to this file instead of stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags]\n\ndisplays: %s\n\n", os.Args[0], strings.Join(core.Displays(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	kv := make(map[string]string, len(overrides))
	for _, o := range overrides {
		k, v, ok := strings.Cut(o, "=")
		if !ok {
			log.Fatalf("override %q: expected key=value", o)
		}
		kv[k] = v
	}
	if err := cfg.FromMap(kv); err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "splitlife: ", log.LstdFlags)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}
	for _, line := range cfg.Parameters().Lines() {
		logger.Print(line)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Fatal(err)
	}
}
