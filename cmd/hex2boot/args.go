package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"

	"github.com/moffa90/go-hex2boot/bootrec"
	"github.com/moffa90/go-hex2boot/convert"
)

const usage = `usage: hex2boot [-h] [-v] -o OUT [-b {0,1}] [-e {0,1,2}] [-i ID]... [-l LOCK]
                [-m {bb2,bb50,bb51,bb52,sb2,ub1}] [-s ADDR] [-t ADDR] [-w]
                [-c] [-f] [-strict] [-24] [-x HEX] [-syslog] [-debug] [hexfile]

Convert an Intel HEX file into a bootload record file.

positional arguments:
  hexfile                 Intel HEX input; without it the range is erased only

options:
  -h, --help              show this help and exit
  -v, --version           show the version and exit
  -o, --out OUT           output file, '-' for stdout (refused on a terminal)
  -b, --bank BANK         flash bank, 0 or 1 (default from the memory map)
  -e, --erase MODE        0/none, 1/separate, 2/with-data (default 2)
  -i, --id ID             identity value, 16 bits; repeat or list with spaces
  -l, --lock LOCK         flash lock byte
  -m, --map MAP           device memory map
  -s, --start ADDR        start address (default 0x0000)
  -t, --top ADDR          top address, inclusive (default 0xFFFF)
  -w, --wait              keep the device in the bootloader when done
  -c, --verify            add CRC verify records
  -f, --failsafe          write the reset vector last
  -x, --dump HEX          also write the mapped, clipped image as Intel HEX
  -strict                 require an end of file record in the hex input
  -24                     use 24-bit record addresses
  -syslog                 send diagnostics to syslog instead of stderr
  -debug                  log every conversion step

Numbers accept 0x, 0o and 0b prefixes.
`

var boolFlags = []interface{}{
	[]string{"-h", "-help", "--help"},
	[]string{"-v", "-version", "--version"},
	[]string{"-w", "--wait"},
	[]string{"-c", "--verify"},
	[]string{"-f", "--failsafe"},
	"-strict", "-24", "-syslog", "-debug",
}

var valueParms = []interface{}{
	[]string{"-o", "--out"},
	[]string{"-b", "--bank"},
	[]string{"-e", "--erase"},
	[]string{"-i", "--id"},
	[]string{"-l", "--lock"},
	[]string{"-m", "--map"},
	[]string{"-s", "--start"},
	[]string{"-t", "--top"},
	[]string{"-x", "--dump"},
}

// cliConfig is the parsed command line.
type cliConfig struct {
	help    bool
	version bool

	output  string
	hexfile string
	dump    string

	bank     *uint8
	erase    convert.EraseMode
	ids      [][]byte
	lock     *byte
	mapName  string
	start    uint32
	top      uint32
	wait     bool
	verify   bool
	failsafe bool
	strict   bool
	format   bootrec.Format

	syslog bool
	debug  bool
}

// parseArgs parses the command line arguments, not including the program name.
func parseArgs(args []string) (*cliConfig, error) {
	args = append([]string(nil), args...)
	flag, args := flags.New(args, boolFlags...)
	args, err := normalizeParms(args)
	if err != nil {
		return nil, err
	}
	parm, args := parms.New(args, valueParms...)

	cfg := &cliConfig{
		help:     flag.ByName["-h"],
		version:  flag.ByName["-v"],
		erase:    convert.EraseWithData,
		top:      0xFFFF,
		format:   bootrec.Addr16,
		wait:     flag.ByName["-w"],
		verify:   flag.ByName["-c"],
		failsafe: flag.ByName["-f"],
		strict:   flag.ByName["-strict"],
		syslog:   flag.ByName["-syslog"],
		debug:    flag.ByName["-debug"],
	}
	if cfg.help || cfg.version {
		return cfg, nil
	}

	if flag.ByName["-24"] {
		cfg.format = bootrec.Addr24
	}
	maxAddr := uint64(cfg.format.MaxAddress())

	for _, arg := range args {
		switch {
		case isParm(arg):
			return nil, fmt.Errorf("%s: missing value", arg)
		case len(arg) > 1 && strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("%s: unknown option", arg)
		}
	}
	switch len(args) {
	case 0:
	case 1:
		cfg.hexfile = args[0]
	default:
		return nil, fmt.Errorf("%v: unexpected", args[1:])
	}

	cfg.output = parm.ByName["-o"]
	if cfg.output == "" {
		return nil, fmt.Errorf("-o: output file required")
	}
	cfg.dump = parm.ByName["-x"]
	cfg.mapName = parm.ByName["-m"]

	if s := parm.ByName["-b"]; s != "" {
		v, err := parseNumber("-b", s, 1)
		if err != nil {
			return nil, err
		}
		bank := uint8(v)
		cfg.bank = &bank
	}

	if s := parm.ByName["-e"]; s != "" {
		mode, err := convert.ParseEraseMode(s)
		if err != nil {
			return nil, fmt.Errorf("-e: %w", err)
		}
		cfg.erase = mode
	}

	for _, s := range strings.Fields(parm.ByName["-i"]) {
		v, err := parseNumber("-i", s, 0xFFFF)
		if err != nil {
			return nil, err
		}
		cfg.ids = append(cfg.ids, []byte{byte(v >> 8), byte(v)})
	}

	if s := parm.ByName["-l"]; s != "" {
		v, err := parseNumber("-l", s, 0xFF)
		if err != nil {
			return nil, err
		}
		lock := byte(v)
		cfg.lock = &lock
	}

	if s := parm.ByName["-s"]; s != "" {
		v, err := parseNumber("-s", s, maxAddr)
		if err != nil {
			return nil, err
		}
		cfg.start = uint32(v)
	}

	if s := parm.ByName["-t"]; s != "" {
		v, err := parseNumber("-t", s, maxAddr)
		if err != nil {
			return nil, err
		}
		cfg.top = uint32(v)
	}

	return cfg, nil
}

// options maps the command line onto converter options.
func (cfg *cliConfig) options(logger convert.Logger) []convert.Option {
	opts := []convert.Option{
		convert.WithErase(cfg.erase),
		convert.WithMap(cfg.mapName),
		convert.WithRange(cfg.start, cfg.top),
		convert.WithWait(cfg.wait),
		convert.WithVerify(cfg.verify),
		convert.WithFailsafe(cfg.failsafe),
		convert.WithFormat(cfg.format),
		convert.WithStrictEOF(cfg.strict),
		convert.WithLogger(logger),
	}
	if cfg.bank != nil {
		opts = append(opts, convert.WithBank(*cfg.bank))
	}
	if len(cfg.ids) > 0 {
		opts = append(opts, convert.WithIdentity(cfg.ids...))
	}
	if cfg.lock != nil {
		opts = append(opts, convert.WithLock(*cfg.lock))
	}
	return opts
}

// parseNumber parses a Go integer literal no larger than max.
func parseNumber(name, s string, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, s)
	}
	if v > max {
		return 0, fmt.Errorf("%s: 0x%X exceeds maximum 0x%X", name, v, max)
	}
	return v, nil
}

// isParm reports whether arg names a valued parameter or one of its aliases.
func isParm(arg string) bool {
	_, ok := primaryParm(arg)
	return ok
}

// primaryParm returns the first name of the valued parameter that name
// is an alias of.
func primaryParm(name string) (string, bool) {
	for _, p := range valueParms {
		names := p.([]string)
		for _, alias := range names {
			if name == alias {
				return names[0], true
			}
		}
	}
	return "", false
}

// normalizeParms rewrites NAME=VALUE arguments to the primary parameter
// name, since parms only resolves aliases in the NAME VALUE form. Every
// parameter but -i may be given once.
func normalizeParms(args []string) ([]string, error) {
	seen := make(map[string]bool)
	for i := 0; i < len(args); i++ {
		name, value := args[i], ""
		eq := strings.Index(name, "=")
		if eq > 0 {
			name, value = name[:eq], name[eq:]
		}
		primary, ok := primaryParm(name)
		if !ok {
			continue
		}
		if eq > 0 {
			args[i] = primary + value
		} else {
			i++
		}
		if primary == "-i" {
			continue
		}
		if seen[primary] {
			return nil, fmt.Errorf("%s: given more than once", name)
		}
		seen[primary] = true
	}
	return args, nil
}
