package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justsurfingit/voice-job-matcher/internal/app"
	"github.com/justsurfingit/voice-job-matcher/internal/config"
)

func main() {
	pretty := flag.Bool("pretty", true, "indent the JSON output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-pretty=false] <audio-file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "[error] %v\n", err)
		os.Exit(1)
	}
}

func run(path string, pretty bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ctx := context.Background()
	svc, err := app.NewServices(ctx, cfg, nil, nil)
	if err != nil {
		return err
	}

	result, err := svc.Pipeline.Run(ctx, data, filepath.Base(path))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
