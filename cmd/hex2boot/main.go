// Command hex2boot converts Intel HEX firmware images into bootload record
// files for the factory bootloader.
//
// Usage:
//
//	hex2boot -o firmware.bin -m bb2 -e separate -w firmware.hex
//	hex2boot -o erase.bin -s 0x100 -t 0x1FF -e none
//	hex2boot -o - -c -f firmware.hex | flasher
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/moffa90/go-hex2boot/convert"
	"github.com/moffa90/go-hex2boot/ihex"
)

// Version is the hex2boot release.
const Version = "1.10"

type app struct {
	stdout           io.Writer
	stderr           io.Writer
	stdoutIsTerminal bool
}

func main() {
	a := &app{
		stdout:           os.Stdout,
		stderr:           os.Stderr,
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	}
	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hex2boot: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(args []string) error {
	cfg, err := parseArgs(args)
	if err != nil {
		return fmt.Errorf("%w\n\n%s", err, usage)
	}

	switch {
	case cfg.help:
		fmt.Fprint(a.stdout, usage)
		return nil
	case cfg.version:
		fmt.Fprintf(a.stdout, "hex2boot %s\n", Version)
		return nil
	}

	var logger convert.Logger = newStderrLogger(a.stderr, cfg.debug)
	if cfg.syslog {
		logger = &syslogLogger{debug: cfg.debug}
	}

	conv, err := convert.New(cfg.options(logger)...)
	if err != nil {
		return err
	}

	// img stays nil without a hex file, which selects erase-only output.
	var img *ihex.Image
	if cfg.hexfile != "" {
		var opts []ihex.ParseOption
		if cfg.strict {
			opts = append(opts, ihex.RequireEOF())
		}
		img, err = ihex.Parse(cfg.hexfile, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.hexfile, err)
		}
	}

	mapped := conv.Transform(img)

	stream, err := conv.ConvertMapped(mapped)
	if err != nil {
		return err
	}

	var dump []byte
	if cfg.dump != "" {
		var buf bytes.Buffer
		if err := conv.Clip(mapped).WriteHex(&buf); err != nil {
			return fmt.Errorf("%s: %w", cfg.dump, err)
		}
		dump = buf.Bytes()
	}

	if err := a.writeOutput(cfg.output, stream, true); err != nil {
		return err
	}
	if dump != nil {
		if err := a.writeOutput(cfg.dump, dump, false); err != nil {
			return err
		}
	}

	logger.Debug("done",
		"output", cfg.output,
		"bytes", len(stream),
	)
	return nil
}
