package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/havrydotdev/treelox/config"
)

const (
	exitUsage  = 64
	exitIO     = 74
	exitConfig = 78
)

var modes = []string{"tokenize", "parse", "evaluate", "run"}

func main() {
	log.SetFlags(0)
	log.SetPrefix("treelox: ")

	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("treelox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default ~/"+config.FileName+")")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: treelox [-config file] [tokenize|parse|evaluate|run] [script]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Print(err)
		return exitConfig
	}

	mode, path := "run", ""
	switch fs.NArg() {
	case 0:
		return repl(cfg, stdout, stderr)
	case 1:
		path = fs.Arg(0)
	case 2:
		mode, path = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return exitUsage
	}

	if !slices.Contains(modes, mode) {
		log.Printf("unknown command %q", mode)
		fs.Usage()
		return exitUsage
	}

	src, err := os.ReadFile(path)
	if err != nil {
		log.Print(err)
		return exitIO
	}

	code, err := newSession(stdout, stderr, cfg).exec(mode, string(src))
	if err != nil {
		log.Print(err)
		return exitUsage
	}

	return code
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Discover()
	}

	return config.Load(path)
}
