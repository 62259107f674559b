package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/moffa90/go-hex2boot/bootrec"
	"github.com/moffa90/go-hex2boot/convert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *cliConfig)
	}{
		{
			name: "defaults",
			args: []string{"-o", "out.bin"},
			check: func(t *testing.T, cfg *cliConfig) {
				if cfg.output != "out.bin" || cfg.hexfile != "" {
					t.Errorf("output=%q hexfile=%q", cfg.output, cfg.hexfile)
				}
				if cfg.erase != convert.EraseWithData {
					t.Errorf("erase = %v, want with-data", cfg.erase)
				}
				if cfg.start != 0 || cfg.top != 0xFFFF {
					t.Errorf("range = 0x%X-0x%X", cfg.start, cfg.top)
				}
				if cfg.bank != nil || cfg.lock != nil || len(cfg.ids) != 0 {
					t.Error("optional values should be unset")
				}
				if cfg.format != bootrec.Addr16 {
					t.Errorf("format = %v, want addr16", cfg.format)
				}
			},
		},
		{
			name: "all values",
			args: []string{
				"-o", "out.bin", "-b", "1", "-e", "separate", "-l", "0x5a",
				"-m", "bb2", "-s", "0x100", "-t", "0o777", "-x", "dump.hex",
				"in.hex",
			},
			check: func(t *testing.T, cfg *cliConfig) {
				if cfg.bank == nil || *cfg.bank != 1 {
					t.Errorf("bank = %v, want 1", cfg.bank)
				}
				if cfg.erase != convert.EraseSeparate {
					t.Errorf("erase = %v, want separate", cfg.erase)
				}
				if cfg.lock == nil || *cfg.lock != 0x5A {
					t.Errorf("lock = %v, want 0x5A", cfg.lock)
				}
				if cfg.mapName != "bb2" || cfg.dump != "dump.hex" || cfg.hexfile != "in.hex" {
					t.Errorf("map=%q dump=%q hexfile=%q", cfg.mapName, cfg.dump, cfg.hexfile)
				}
				if cfg.start != 0x100 || cfg.top != 0x1FF {
					t.Errorf("range = 0x%X-0x%X, want 0x100-0x1FF", cfg.start, cfg.top)
				}
			},
		},
		{
			name: "identity values repeat and split",
			args: []string{"-o", "out.bin", "-i", "0x1234", "-i", "0x56 0b1"},
			check: func(t *testing.T, cfg *cliConfig) {
				want := [][]byte{{0x12, 0x34}, {0x00, 0x56}, {0x00, 0x01}}
				if !reflect.DeepEqual(cfg.ids, want) {
					t.Errorf("ids = % X, want % X", cfg.ids, want)
				}
			},
		},
		{
			name: "boolean flags",
			args: []string{"-w", "-c", "-f", "-strict", "-24", "-debug", "-o=out.bin"},
			check: func(t *testing.T, cfg *cliConfig) {
				if !cfg.wait || !cfg.verify || !cfg.failsafe || !cfg.strict || !cfg.debug {
					t.Errorf("flags not set: %+v", cfg)
				}
				if cfg.syslog {
					t.Error("syslog should be off")
				}
				if cfg.format != bootrec.Addr24 {
					t.Errorf("format = %v, want addr24", cfg.format)
				}
				if cfg.output != "out.bin" {
					t.Errorf("output = %q, want out.bin", cfg.output)
				}
			},
		},
		{
			name: "combined flags",
			args: []string{"-wc", "-o", "-"},
			check: func(t *testing.T, cfg *cliConfig) {
				if !cfg.wait || !cfg.verify {
					t.Errorf("wait=%v verify=%v, want both", cfg.wait, cfg.verify)
				}
				if cfg.output != "-" {
					t.Errorf("output = %q, want stdout", cfg.output)
				}
			},
		},
		{
			name: "long options",
			args: []string{"--out", "out.bin", "--erase", "0", "--id", "7", "--map", "ub1", "--wait", "--verify", "in.hex"},
			check: func(t *testing.T, cfg *cliConfig) {
				if cfg.output != "out.bin" || cfg.mapName != "ub1" || cfg.hexfile != "in.hex" {
					t.Errorf("output=%q map=%q hexfile=%q", cfg.output, cfg.mapName, cfg.hexfile)
				}
				if cfg.erase != convert.EraseNone {
					t.Errorf("erase = %v, want none", cfg.erase)
				}
				if !reflect.DeepEqual(cfg.ids, [][]byte{{0x00, 0x07}}) {
					t.Errorf("ids = % X, want [00 07]", cfg.ids)
				}
				if !cfg.wait || !cfg.verify {
					t.Errorf("wait=%v verify=%v, want both", cfg.wait, cfg.verify)
				}
			},
		},
		{
			name: "long options with equals",
			args: []string{"--out=out.bin", "--lock=0x5a", "--map=bb2", "-x=dump.hex", "--id=1", "-i", "2", "in.hex"},
			check: func(t *testing.T, cfg *cliConfig) {
				if cfg.output != "out.bin" || cfg.mapName != "bb2" || cfg.dump != "dump.hex" {
					t.Errorf("output=%q map=%q dump=%q", cfg.output, cfg.mapName, cfg.dump)
				}
				if cfg.lock == nil || *cfg.lock != 0x5A {
					t.Errorf("lock = %v, want 0x5A", cfg.lock)
				}
				if !reflect.DeepEqual(cfg.ids, [][]byte{{0x00, 0x01}, {0x00, 0x02}}) {
					t.Errorf("ids = % X, want [00 01] [00 02]", cfg.ids)
				}
				if cfg.hexfile != "in.hex" {
					t.Errorf("hexfile = %q, want in.hex", cfg.hexfile)
				}
			},
		},
		{
			name: "24-bit top",
			args: []string{"-24", "-o", "out.bin", "-t", "0x1FFFF"},
			check: func(t *testing.T, cfg *cliConfig) {
				if cfg.top != 0x1FFFF {
					t.Errorf("top = 0x%X, want 0x1FFFF", cfg.top)
				}
			},
		},
		{
			name: "help without output",
			args: []string{"--help"},
			check: func(t *testing.T, cfg *cliConfig) {
				if !cfg.help {
					t.Error("help not set")
				}
			},
		},
		{
			name: "version",
			args: []string{"-v"},
			check: func(t *testing.T, cfg *cliConfig) {
				if !cfg.version {
					t.Error("version not set")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseArgs(tt.args)
			if err != nil {
				t.Fatalf("parseArgs(%q) error: %v", tt.args, err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "missing output", args: []string{"in.hex"}, errMsg: "-o: output file required"},
		{name: "missing value", args: []string{"-o", "out.bin", "-t"}, errMsg: "-t: missing value"},
		{name: "missing long value", args: []string{"-o", "out.bin", "--top"}, errMsg: "--top: missing value"},
		{name: "unknown option", args: []string{"-o", "out.bin", "-q"}, errMsg: "-q: unknown option"},
		{name: "two inputs", args: []string{"-o", "out.bin", "a.hex", "b.hex"}, errMsg: "unexpected"},
		{name: "bank too large", args: []string{"-o", "out.bin", "-b", "2"}, errMsg: "-b: 0x2 exceeds maximum 0x1"},
		{name: "lock too large", args: []string{"-o", "out.bin", "-l", "0x100"}, errMsg: "-l: 0x100 exceeds maximum 0xFF"},
		{name: "id too large", args: []string{"-o", "out.bin", "-i", "0x10000"}, errMsg: "-i: 0x10000 exceeds maximum 0xFFFF"},
		{name: "top beyond 16 bits", args: []string{"-o", "out.bin", "-t", "0x10000"}, errMsg: "-t: 0x10000 exceeds maximum 0xFFFF"},
		{name: "bad number", args: []string{"-o", "out.bin", "-s", "12ab"}, errMsg: `-s: invalid number "12ab"`},
		{name: "repeated output", args: []string{"-o", "a.bin", "-o", "b.bin"}, errMsg: "-o: given more than once"},
		{name: "repeated output alias", args: []string{"-o", "a.bin", "--out=b.bin"}, errMsg: "--out: given more than once"},
		{name: "repeated lock", args: []string{"-o", "out.bin", "-l", "1", "--lock", "2"}, errMsg: "--lock: given more than once"},
		{name: "bad erase mode", args: []string{"-o", "out.bin", "-e", "4"}, errMsg: "-e: invalid erase mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			if err == nil {
				t.Fatalf("parseArgs(%q) expected error", tt.args)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}
}

func TestParseArgsDoesNotModifyInput(t *testing.T) {
	args := []string{"-w", "-o", "out.bin", "in.hex"}
	orig := append([]string(nil), args...)

	if _, err := parseArgs(args); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(args, orig) {
		t.Errorf("args modified: %q, want %q", args, orig)
	}
}

func TestFormatKV(t *testing.T) {
	tests := []struct {
		kv   []interface{}
		want string
	}{
		{kv: nil, want: ""},
		{kv: []interface{}{"count", 2}, want: " count=2"},
		{kv: []interface{}{"map", "bb2", "dangling"}, want: " map=bb2 dangling"},
	}

	for _, tt := range tests {
		if got := formatKV(tt.kv); got != tt.want {
			t.Errorf("formatKV(%v) = %q, want %q", tt.kv, got, tt.want)
		}
	}
}
