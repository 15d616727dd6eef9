// Package script runs Starlark build scripts, which assemble programs and
// add files to a virtual disk.
//
// The predeclared builtins are:
//
//	assemble(path, defines={})  assembles a source file, returning a struct
//	                            with code, origin, exec and binary fields.
//	envelope(code, origin, exec)  wraps code as a loadable binary.
//	add_file(name, data=None, path=None, type="ml", mode="auto")
//	                            adds bytes or a file to the disk.
//	files()                     lists the names of the files on the disk.
//	struct(**kwargs)            makes a struct.
package script

import (
	"io/fs"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"

	"github.com/ezrec/cocoasm/cpu"
	"github.com/ezrec/cocoasm/disk"
	"github.com/ezrec/cocoasm/internal"
)

// Script is the environment of a build script.
type Script struct {
	Verbose bool              // If set, logs each builtin call.
	Disk    *disk.Disk        // Disk that files are added to.
	Dir     fs.FS             // Paths named by the script are read from Dir.
	Defines map[string]uint16 // Equates predefined for every assembly.
}

// Exec runs the script in src, and returns its global variables.
func (s *Script) Exec(filename string, src []byte) (globals starlark.StringDict, err error) {
	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			log.Print(msg)
		},
	}

	opts := syntax.FileOptions{}
	return starlark.ExecFileOptions(&opts, thread, filename, src, s.predeclared())
}

// ExecFile reads a script from Dir and runs it.
func (s *Script) ExecFile(path string) (globals starlark.StringDict, err error) {
	src, err := fs.ReadFile(s.Dir, path)
	if err != nil {
		return
	}

	return s.Exec(path, src)
}

func (s *Script) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"assemble": starlark.NewBuiltin("assemble", s.assemble),
		"envelope": starlark.NewBuiltin("envelope", s.envelope),
		"add_file": starlark.NewBuiltin("add_file", s.addFile),
		"files":    starlark.NewBuiltin("files", s.files),
		"struct":   starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
}

// predefine copies a Starlark dict of equates into the assembler.
func predefine(asm *cpu.Assembler, defines *starlark.Dict) (err error) {
	if defines == nil {
		return
	}

	for _, item := range defines.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			err = ErrArgumentValue{Builtin: "assemble", Argument: "defines", Value: item[0].String()}
			return
		}
		var value int
		value, err = starlark.AsInt32(item[1])
		if err != nil {
			return
		}
		if value < 0 || value > 0xffff {
			err = ErrArgumentValue{Builtin: "assemble", Argument: "defines", Value: name, Err: ErrDefine}
			return
		}
		asm.Predefine(name, uint16(value))
	}

	return
}

func (s *Script) assemble(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var path string
	var defines *starlark.Dict
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "path", &path, "defines?", &defines)
	if err != nil {
		return
	}

	src, err := fs.ReadFile(s.Dir, path)
	if err != nil {
		return
	}

	asm := &cpu.Assembler{Verbose: s.Verbose}
	for name, equ := range internal.IterSorted(s.Defines) {
		asm.Predefine(name, equ)
	}
	err = predefine(asm, defines)
	if err != nil {
		return
	}

	prog, err := asm.Assemble(string(src))
	if err != nil {
		err = ErrPath{Path: path, Err: err}
		return
	}

	binary, err := disk.Envelope(prog.Code, prog.Origin, prog.Exec)
	if err != nil {
		err = ErrPath{Path: path, Err: err}
		return
	}

	if s.Verbose {
		log.Printf("assemble %v: %d bytes at $%04X, exec $%04X", path, len(prog.Code), prog.Origin, prog.Exec)
	}

	value = starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"code":   starlark.Bytes(prog.Code),
		"origin": starlark.MakeInt(int(prog.Origin)),
		"exec":   starlark.MakeInt(int(prog.Exec)),
		"binary": starlark.Bytes(binary),
	})
	return
}

func (s *Script) envelope(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var code starlark.Bytes
	var origin, exec uint16
	err = starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code, "origin", &origin, "exec", &exec)
	if err != nil {
		return
	}

	binary, err := disk.Envelope([]byte(code), origin, exec)
	if err != nil {
		return
	}

	value = starlark.Bytes(binary)
	return
}

func (s *Script) addFile(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	var name string
	var data starlark.Value = starlark.None
	var path string
	var typeName = disk.FileTypeMachineLanguage.String()
	var modeName = disk.FileModeAutomatic.String()
	err = starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "data??", &data, "path??", &path, "type?", &typeName, "mode?", &modeName)
	if err != nil {
		return
	}

	fileType, ok := disk.ParseFileType(typeName)
	if !ok {
		err = ErrArgumentValue{Builtin: fn.Name(), Argument: "type", Value: typeName}
		return
	}
	mode, ok := disk.ParseFileMode(modeName)
	if !ok {
		err = ErrArgumentValue{Builtin: fn.Name(), Argument: "mode", Value: modeName}
		return
	}

	if s.Verbose {
		log.Printf("add_file %v: %v %v", name, fileType, mode)
	}

	switch content := data.(type) {
	case starlark.NoneType:
		if len(path) == 0 {
			err = ErrArgumentValue{Builtin: fn.Name(), Argument: "path", Value: "None"}
			return
		}
		err = s.Disk.AddFileFS(s.Dir, path, name, fileType, mode)
	case starlark.Bytes, starlark.String:
		if len(path) != 0 {
			err = ErrArgumentValue{Builtin: fn.Name(), Argument: "path", Value: path}
			return
		}
		var raw string
		switch content := content.(type) {
		case starlark.Bytes:
			raw = string(content)
		case starlark.String:
			raw = string(content)
		}
		err = s.Disk.AddFile([]byte(raw), name, fileType, mode)
	default:
		err = ErrArgumentValue{Builtin: fn.Name(), Argument: "data", Value: data.Type()}
	}
	if err != nil {
		return
	}

	value = starlark.None
	return
}

func (s *Script) files(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
	err = starlark.UnpackArgs(fn.Name(), args, kwargs)
	if err != nil {
		return
	}

	entries, err := s.Disk.Files()
	if err != nil {
		return
	}

	names := make([]starlark.Value, 0, len(entries))
	for _, entry := range entries {
		names = append(names, starlark.String(entry.Name))
	}

	value = starlark.NewList(names)
	return
}
