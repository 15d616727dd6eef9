package disk

//go:generate go tool stringer -linecomment -type=FileType
//go:generate go tool stringer -linecomment -type=FileMode

// FileType is the directory type of a file.
type FileType int

const (
	FileTypeBasic           = FileType(0) // basic
	FileTypeData            = FileType(1) // data
	FileTypeMachineLanguage = FileType(2) // ml
	FileTypeText            = FileType(3) // text
)

// FileMode is the directory encoding flag of a file.
type FileMode int

const (
	FileModeAutomatic = FileMode(0) // auto
	FileModeBinary    = FileMode(1) // binary
	FileModeAscii     = FileMode(2) // ascii
)

// ParseFileType returns the file type named by name, as printed by String.
func ParseFileType(name string) (ft FileType, ok bool) {
	for ft = FileTypeBasic; ft <= FileTypeText; ft++ {
		if ft.String() == name {
			return ft, true
		}
	}
	return 0, false
}

// ParseFileMode returns the file mode named by name, as printed by String.
func ParseFileMode(name string) (mode FileMode, ok bool) {
	for mode = FileModeAutomatic; mode <= FileModeAscii; mode++ {
		if mode.String() == name {
			return mode, true
		}
	}
	return 0, false
}

// Resolve replaces FileModeAutomatic with the mode implied by the file
// type. Machine language files are binary, everything else is ASCII.
func (mode FileMode) Resolve(ft FileType) FileMode {
	if mode != FileModeAutomatic {
		return mode
	}
	if ft == FileTypeMachineLanguage {
		return FileModeBinary
	}
	return FileModeAscii
}

// flag is the on-disk byte of a resolved mode.
func (mode FileMode) flag() byte {
	if mode == FileModeAscii {
		return 0xff
	}
	return 0x00
}

func modeOfFlag(flag byte) FileMode {
	if flag == 0x00 {
		return FileModeBinary
	}
	return FileModeAscii
}
