// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/cocoasm/cpu"
	"github.com/ezrec/cocoasm/disk"
	"github.com/ezrec/cocoasm/emulator"
	"github.com/ezrec/cocoasm/expr"
	"github.com/ezrec/cocoasm/script"
)

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]uint16

func (d defines) String() string {
	var parts []string
	for name, value := range d {
		parts = append(parts, fmt.Sprintf("%v=%v", name, value))
	}
	return strings.Join(parts, ",")
}

func (d defines) Set(text string) (err error) {
	name, value, found := strings.Cut(text, "=")
	if !found || len(name) == 0 {
		err = fmt.Errorf("%v: expected NAME=VALUE", text)
		return
	}

	v, err := expr.Evaluate(value, expr.Equates(d), true)
	if err != nil {
		return
	}

	d[strings.ToUpper(name)] = v
	return
}

func main() {
	var compile string
	var name string
	var output string
	var keep bool
	var input string
	var build string
	var listing bool
	var run bool
	var extract string
	var verbose bool
	predefined := defines{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&name, "n", "", "Disk file name of the assembled program")
	flag.StringVar(&output, "o", "", ".dsk file to write")
	flag.BoolVar(&keep, "k", false, "Keep an existing output file, do not overwrite")
	flag.StringVar(&input, "i", "", ".dsk file to start from")
	flag.StringVar(&build, "s", "", ".star build script to run")
	flag.BoolVar(&listing, "l", false, "Print the assembly listing")
	flag.BoolVar(&run, "r", false, "Run the assembled program, and print the screen")
	flag.StringVar(&extract, "x", "", "Extract a disk file to standard output")
	flag.Var(predefined, "D", "Predefine an equate as NAME=VALUE")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	dsk := disk.NewDisk()
	dsk.Verbose = verbose

	// Start from an existing disk image.
	if len(input) != 0 {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		err = dsk.Unmarshal(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
	}

	// Assemble a program, and add it to the disk.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		if run {
			for equ, value := range emu.Defines() {
				asm.Predefine(equ, value)
			}
		}
		for equ, value := range predefined {
			asm.Predefine(equ, value)
		}

		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if listing {
			err = prog.Listing(os.Stdout)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
		}

		if run {
			emu.LoadProgram(prog)
			emu.Reset()
			err = emu.Run(1_000_000)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
			fmt.Print(emu.Screen())
		}

		if len(output) != 0 {
			binary, err := disk.Envelope(prog.Code, prog.Origin, prog.Exec)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}

			if len(name) == 0 {
				base := strings.TrimSuffix(filepath.Base(compile), filepath.Ext(compile))
				name = strings.ToUpper(base) + ".BIN"
			}
			err = dsk.AddFile(binary, name, disk.FileTypeMachineLanguage, disk.FileModeAutomatic)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
		}
	}

	// Run a build script against the disk.
	if len(build) != 0 {
		dir, path := filepath.Split(build)
		if len(dir) == 0 {
			dir = "."
		}
		sc := &script.Script{
			Verbose: verbose,
			Disk:    dsk,
			Dir:     disk.DirFS(dir),
			Defines: predefined,
		}
		_, err := sc.ExecFile(path)
		if err != nil {
			log.Fatalf("%v: %v", build, err)
		}
	}

	if len(extract) != 0 {
		data, err := dsk.ReadFile(extract)
		if err != nil {
			log.Fatalf("%v: %v", extract, err)
		}
		_, err = os.Stdout.Write(data)
		if err != nil {
			log.Fatalf("%v: %v", extract, err)
		}
	}

	if len(output) != 0 {
		err := dsk.WriteToFile(output, !keep)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	} else if len(input) != 0 && len(compile) == 0 && len(build) == 0 && len(extract) == 0 {
		entries, err := dsk.Files()
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		for _, entry := range entries {
			fmt.Println(entry)
		}
	}
}
