/*
Copyright 2024 The rzc Authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command rzc is the reference CLI for the rzc container format: a
// single positional input file plus -c/-d/-o/-l/--mode/--check/--no-write
// flags, parsed by hand off os.Args the way the teacher's app/Kanzi.go
// parses its own flag set (no flag package, no cobra/pflag).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/nadavrot/rzc"
	"github.com/nadavrot/rzc/codec"
	"github.com/nadavrot/rzc/internal/bench"
	"github.com/nadavrot/rzc/lz4"
)

const (
	modeLZ4  = "lz4"
	modeFull = "full"
)

var (
	mutex sync.Mutex
	log   = Printer{out: bufio.NewWriter(os.Stdout)}
)

// Printer is a buffered, mutex-serialized writer, exactly the shape of
// the teacher's app.Printer.
type Printer struct {
	out *bufio.Writer
}

// Println writes msg plus a trailing newline and flushes immediately;
// best effort, errors are ignored the way the teacher's Printer does.
func (p *Printer) Println(msg string) {
	mutex.Lock()
	if w, _ := p.out.Write([]byte(msg + "\n")); w > 0 {
		_ = p.out.Flush()
	}
	mutex.Unlock()
}

type options struct {
	compress   bool
	decompress bool
	input      string
	output     string
	level      uint8
	mode       string
	check      bool
	noWrite    bool
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.compress {
		os.Exit(runCompress(opts))
	}
	os.Exit(runDecompress(opts))
}

// parseArgs hand-parses the flag set documented in spec.md §6: a single
// positional input file, -c/--compress, -d/--decompress, -o/--output,
// -l/--level, --mode lz4|full, --check, --no-write. If neither -c nor
// -d is given, the mode is inferred from the rzc.FileExtension suffix.
func parseArgs(args []string) (options, error) {
	opts := options{level: 4, mode: modeFull}
	var positional []string

	for i := 0; i < len(args); i++ {
		a := args[i]

		switch {
		case a == "-c" || a == "--compress":
			opts.compress = true
		case a == "-d" || a == "--decompress":
			opts.decompress = true
		case a == "--check":
			opts.check = true
		case a == "--no-write":
			opts.noWrite = true

		case a == "-o" || a == "--output":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("rzc: %s requires a value", a)
			}
			opts.output = args[i]
		case strings.HasPrefix(a, "--output="):
			opts.output = a[len("--output="):]

		case a == "-l" || a == "--level":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("rzc: %s requires a value", a)
			}
			lvl, err := parseLevel(args[i])
			if err != nil {
				return opts, err
			}
			opts.level = lvl
		case strings.HasPrefix(a, "--level="):
			lvl, err := parseLevel(a[len("--level="):])
			if err != nil {
				return opts, err
			}
			opts.level = lvl

		case a == "--mode":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("rzc: --mode requires a value")
			}
			m, err := parseMode(args[i])
			if err != nil {
				return opts, err
			}
			opts.mode = m
		case strings.HasPrefix(a, "--mode="):
			m, err := parseMode(a[len("--mode="):])
			if err != nil {
				return opts, err
			}
			opts.mode = m

		default:
			positional = append(positional, a)
		}
	}

	if opts.compress && opts.decompress {
		return opts, fmt.Errorf("rzc: -c and -d are mutually exclusive")
	}
	if len(positional) == 0 {
		return opts, fmt.Errorf("rzc: missing input file")
	}
	opts.input = positional[0]

	if !opts.compress && !opts.decompress {
		opts.decompress = strings.HasSuffix(opts.input, rzc.FileExtension)
		opts.compress = !opts.decompress
	}

	if opts.output == "" {
		opts.output = defaultOutputName(opts.input, opts.compress)
	}

	return opts, nil
}

func parseLevel(s string) (uint8, error) {
	lvl, err := strconv.Atoi(s)
	if err != nil || lvl < 1 || lvl > 13 {
		return 0, fmt.Errorf("rzc: level must be an integer in [1,13], got %q", s)
	}
	return uint8(lvl), nil
}

func parseMode(s string) (string, error) {
	if s != modeLZ4 && s != modeFull {
		return "", fmt.Errorf("rzc: --mode must be %q or %q, got %q", modeLZ4, modeFull, s)
	}
	return s, nil
}

func defaultOutputName(input string, compress bool) string {
	if compress {
		return input + rzc.FileExtension
	}
	if trimmed := strings.TrimSuffix(input, rzc.FileExtension); trimmed != input {
		return trimmed
	}
	return input + ".out"
}

func runCompress(opts options) int {
	input, err := os.ReadFile(opts.input)
	if err != nil {
		log.Println(fmt.Sprintf("rzc: cannot read %s: %v", opts.input, err))
		return 1
	}

	start := time.Now()
	var encoded []byte
	n := encode(opts, input, &encoded)
	elapsed := time.Since(start)

	if !opts.noWrite {
		if err := os.WriteFile(opts.output, encoded, 0644); err != nil {
			log.Println(fmt.Sprintf("rzc: cannot write %s: %v", opts.output, err))
			return 1
		}
	}

	ratio := 0.0
	if len(input) > 0 {
		ratio = float64(n) / float64(len(input))
	}
	log.Println(fmt.Sprintf("%s -> %s: %d -> %d bytes (%.3f) in %s",
		opts.input, opts.output, len(input), n, ratio, elapsed))

	if opts.check {
		reportCheck(input, opts)
	}

	return 0
}

func runDecompress(opts options) int {
	input, err := os.ReadFile(opts.input)
	if err != nil {
		log.Println(fmt.Sprintf("rzc: cannot read %s: %v", opts.input, err))
		return 1
	}

	var decoded []byte
	consumed, written, ok := decode(opts, input, &decoded)
	if !ok {
		log.Println(fmt.Sprintf("rzc: %s is not a valid %s container", opts.input, opts.mode))
		return 1
	}
	if consumed != len(input) {
		log.Println(fmt.Sprintf("rzc: warning: %d trailing byte(s) in %s ignored", len(input)-consumed, opts.input))
	}

	if !opts.noWrite {
		if err := os.WriteFile(opts.output, decoded, 0644); err != nil {
			log.Println(fmt.Sprintf("rzc: cannot write %s: %v", opts.output, err))
			return 1
		}
	}

	log.Println(fmt.Sprintf("%s -> %s: %d bytes", opts.input, opts.output, written))
	return 0
}

func encode(opts options, input []byte, output *[]byte) int {
	if opts.mode == modeLZ4 {
		var c lz4.Codec
		return c.Encode(input, output)
	}
	c := codec.FullCodec{Ctx: rzc.Context{Level: opts.level, BlockSize: 1 << 20}}
	return c.Encode(input, output)
}

func decode(opts options, input []byte, output *[]byte) (consumed, written int, ok bool) {
	if opts.mode == modeLZ4 {
		var c lz4.Codec
		return c.Decode(input, output)
	}
	c := codec.FullCodec{Ctx: rzc.DefaultContext()}
	return c.Decode(input, output)
}

// reportCheck verifies the round trip with xxhash64 and, informationally,
// runs the internal/bench comparator set against the same input so the
// user can see how rzc's ratio compares to lz4/flate/zstd on this file.
func reportCheck(original []byte, opts options) {
	originalHash := xxhash.Sum64(original)

	var encoded, roundTrip []byte
	encode(opts, original, &encoded)
	decode(opts, encoded, &roundTrip)

	if xxhash.Sum64(roundTrip) == originalHash {
		log.Println("check: round trip OK (xxhash64 match)")
	} else {
		log.Println("check: round trip MISMATCH")
	}

	for _, r := range bench.Compare(original) {
		if r.Err != nil {
			log.Println(fmt.Sprintf("  %-10s error: %v", r.Name, r.Err))
			continue
		}
		log.Println(fmt.Sprintf("  %-10s %d -> %d bytes (%.3f) in %s",
			r.Name, r.InputSize, r.OutputSize, r.Ratio(), r.Elapsed))
	}
}
