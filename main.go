package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/cyd/internal/config"
	"github.com/mcncl/cyd/internal/convert"
	"github.com/mcncl/cyd/internal/errors"
)

// CLI defines the command-line interface. The format flags fall back to the
// CYD_INPUT / CYD_OUTPUT environment variables; that resolution happens in
// internal/config so the variable values never show up in help output.
var CLI struct {
	Input   string `help:"Format of the input document: json, toml or yaml (falls back to $CYD_INPUT)." short:"i" placeholder:"FORMAT"`
	Output  string `help:"Format of the output document: json, toml or yaml (falls back to $CYD_OUTPUT)." short:"o" placeholder:"FORMAT"`
	Version bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("cyd"),
		kong.Description("Convert a document on stdin between JSON, TOML and YAML."),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("cyd version %s\n", Version)
		return
	}

	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// run resolves the two formats and performs the conversion. Format
// resolution happens before stdin is touched so a bad format name fails
// without consuming the pipe.
func run(stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Resolve(CLI.Input, CLI.Output)
	if err != nil {
		return err
	}
	return convert.Run(stdin, stdout, cfg.Input, cfg.Output)
}
