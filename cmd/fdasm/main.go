// Copyright 2025, fdre authors

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/freedreno-zz/freedreno-sub001/asm"
	"github.com/freedreno-zz/freedreno-sub001/ir2"
	"github.com/freedreno-zz/freedreno-sub001/ir3"
	"github.com/freedreno-zz/freedreno-sub001/script"
	"github.com/freedreno-zz/freedreno-sub001/translate"
)

var f = translate.From

// ErrGeneration is a GPU generation fdasm cannot assemble for.
type ErrGeneration struct {
	Name string
}

func (err *ErrGeneration) Error() string {
	return f("unknown generation '%v'", err.Name)
}

// build runs the script for the selected generation and assembles it.
func build(b *script.Builder, gen string, filename string, src []byte, verbose bool) (prog *asm.Program, info any, err error) {
	switch gen {
	case "a2xx":
		var sh *ir2.Shader
		if sh, err = b.BuildA2xx(filename, src); err != nil {
			return
		}
		defer sh.Free()
		as := &ir2.Assembler{Verbose: verbose}
		prog, info, err = as.Program(sh)
	case "a3xx":
		var sh *ir3.Shader
		if sh, err = b.BuildA3xx(filename, src); err != nil {
			return
		}
		defer sh.Free()
		as := &ir3.Assembler{Verbose: verbose}
		prog, info, err = as.Program(sh)
	default:
		err = &ErrGeneration{Name: gen}
	}
	return
}

// write stores the program words at output, or on stdout for "-".
func write(prog *asm.Program, output string) (err error) {
	if output == "-" {
		_, err = prog.WriteTo(os.Stdout)
		return
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}

	_, err = prog.WriteTo(ouf)
	if cerr := ouf.Close(); err == nil {
		err = cerr
	}

	return
}

// list prints the assembled words next to their script lines.
func list(prog *asm.Program, gen string) {
	for op, words := range prog.Codes() {
		var text string
		if gen == "a3xx" {
			text = ir3.Instr{words[0], words[1]}.String()
		}
		fmt.Fprintf(os.Stderr, "%04x %4d: %08x %v\n", op.Ip, op.LineNo, words, text)
	}
}

func main() {
	var gen string
	var output string
	var verbose bool
	var listing bool

	b := &script.Builder{}

	flag.StringVar(&gen, "g", "a3xx", "GPU generation (a2xx or a3xx)")
	flag.StringVar(&output, "o", "-", "Binary output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&listing, "l", false, "List the assembled words")
	flag.Func("D", "Predefine NAME=VALUE for the script", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			value = "1"
		}
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return err
		}
		b.Predefine(name, int(n))
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected one script, got: %v", os.Args[0], flag.Args())
	}

	filename := flag.Arg(0)
	src, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	b.Verbose = verbose

	prog, info, err := build(b, gen, filename, src, verbose)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	if listing {
		list(prog, gen)
	}

	if err = write(prog, output); err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if verbose {
		log.Printf("%v: %+v", filename, info)
	}
}
