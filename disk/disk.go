// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package disk builds Disk Extended Color BASIC virtual floppy images.
//
// An image is 35 tracks of 18 sectors of 256 bytes. Track 17 holds the
// granule allocation table and the directory; the remaining 34 tracks are
// split into 68 granules of nine sectors each. Files are stored as chains
// of granules, allocated from the middle of the disk outwards.
package disk

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"
)

const (
	SectorSize      = 256
	SectorsPerTrack = 18
	TrackCount      = 35
	TrackSize       = SectorSize * SectorsPerTrack // 4608
	ImageSize       = TrackSize * TrackCount       // 161280

	GranuleSize  = 0x900
	GranuleCount = 68

	DirectoryTrack  = 17
	DirectoryOffset = DirectoryTrack * TrackSize // 78336

	EntrySize  = 32
	EntryCount = 72

	GRANULE_FREE = byte(0xff) // Allocation table entry of a free granule
	GRANULE_LAST = byte(0xc0) // Final granule of a file, plus its sector count
)

// offsets in the directory track
const (
	gatOffset       = 1 * SectorSize
	directoryOffset = 2 * SectorSize
)

// Granules lists the granule numbers in allocation order.
var Granules = [GranuleCount]byte{
	0x20, 0x21, 0x22, 0x23, 0x1e, 0x1f, 0x24, 0x25, 0x1c, 0x1d, 0x26, 0x27, 0x1a, 0x1b, 0x28, 0x29, 0x18,
	0x19, 0x2a, 0x2b, 0x16, 0x17, 0x2c, 0x2d, 0x14, 0x15, 0x2e, 0x2f, 0x12, 0x13, 0x30, 0x31, 0x10, 0x11,
	0x32, 0x33, 0x0e, 0x0f, 0x34, 0x35, 0x0c, 0x0d, 0x36, 0x37, 0x0a, 0x0b, 0x38, 0x39, 0x08, 0x09, 0x3a,
	0x3b, 0x06, 0x07, 0x3c, 0x3d, 0x04, 0x05, 0x3e, 0x3f, 0x02, 0x03, 0x40, 0x41, 0x00, 0x01, 0x42, 0x43,
}

// GranuleOffset returns the image offset of a granule. The directory track
// is skipped, so granules 34 and up start one track later.
func GranuleOffset(granule byte) int {
	track := int(granule) / 2
	if track >= DirectoryTrack {
		track++
	}
	return track*TrackSize + int(granule%2)*GranuleSize
}

// Disk is a virtual disk image under construction.
//
// The directory track is staged separately, and copied into the image
// after every file is added. The first file added to a disk that was not
// loaded with Unmarshal formats it.
type Disk struct {
	Verbose bool // If set, logs each granule and directory entry written.

	image     [ImageSize]byte
	track     [TrackSize]byte
	formatted bool
}

// NewDisk returns an unformatted disk, with every byte of the image set.
func NewDisk() (d *Disk) {
	d = &Disk{}
	for n := range d.image {
		d.image[n] = 0xff
	}
	return
}

func (d *Disk) gat() []byte {
	return d.track[gatOffset : gatOffset+GranuleCount]
}

func (d *Disk) entry(slot int) []byte {
	offset := directoryOffset + slot*EntrySize
	return d.track[offset : offset+EntrySize]
}

// format erases the image and the staged directory track.
func (d *Disk) format() {
	for n := range d.image {
		d.image[n] = 0xff
	}
	clear(d.track[:])
	for n := range d.gat() {
		d.gat()[n] = GRANULE_FREE
	}
	d.formatted = true
}

// dirName converts a file name to its padded, upper case directory form.
// Any leading directories are dropped, and the extension follows the last dot.
func dirName(name string) (raw [11]byte, err error) {
	base, ext := path.Base(name), ""
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		base, ext = base[:dot], base[dot+1:]
	}
	if len(base) > 8 || len(ext) > 3 {
		err = ErrFileNameTooLong
		return
	}
	if len(base) == 0 {
		err = ErrFileNameInvalid
		return
	}
	for _, c := range []byte(base + ext) {
		if c <= ' ' || c >= 0x7f || c == '.' || c == '/' {
			err = ErrFileNameInvalid
			return
		}
	}

	copy(raw[:], fmt.Sprintf("%-8s%-3s", strings.ToUpper(base), strings.ToUpper(ext)))
	return
}

// lookup returns the directory slot holding raw, or -1.
func (d *Disk) lookup(raw [11]byte) (slot int) {
	for slot = range EntryCount {
		e := d.entry(slot)
		if e[0] == 0xff {
			break
		}
		if e[0] != 0x00 && string(e[:11]) == string(raw[:]) {
			return
		}
	}
	return -1
}

// freeSlot returns the first unused directory slot, or -1.
func (d *Disk) freeSlot() (slot int) {
	if !d.formatted {
		return 0
	}
	for slot = range EntryCount {
		e := d.entry(slot)
		if e[0] == 0x00 || e[0] == 0xff {
			return
		}
	}
	return -1
}

// freeGranules returns up to count free granules, in allocation order.
func (d *Disk) freeGranules(count int) (granules []byte) {
	if !d.formatted {
		return Granules[:min(count, GranuleCount)]
	}
	gat := d.gat()
	for _, g := range Granules {
		if len(granules) == count {
			break
		}
		if gat[g] == GRANULE_FREE {
			granules = append(granules, g)
		}
	}
	return
}

// AddFile writes data to the disk as a new file.
//
// The name is at most eight characters, optionally followed by a dot and an
// extension of at most three. FileModeAutomatic picks the mode from the
// file type. If the file does not fit, the disk is left unchanged and the
// error is ErrDiskFull.
func (d *Disk) AddFile(data []byte, name string, fileType FileType, mode FileMode) (err error) {
	defer func() {
		if err != nil {
			err = ErrFile{Name: name, Err: err}
		}
	}()

	raw, err := dirName(name)
	if err != nil {
		return
	}

	if fileType < FileTypeBasic || fileType > FileTypeText {
		err = ErrFileTypeInvalid
		return
	}
	mode = mode.Resolve(fileType)

	if d.formatted && d.lookup(raw) >= 0 {
		err = ErrFileExists
		return
	}

	slot := d.freeSlot()
	need := max(1, (len(data)+GranuleSize-1)/GranuleSize)
	granules := d.freeGranules(need)
	if slot < 0 || len(granules) < need {
		err = ErrDiskFull
		return
	}

	if !d.formatted {
		d.format()
	}

	gat := d.gat()
	last := 0
	for n, g := range granules {
		chunk := data[n*GranuleSize : min((n+1)*GranuleSize, len(data))]
		offset := GranuleOffset(g)
		copy(d.image[offset:], chunk)

		if n+1 < len(granules) {
			gat[g] = granules[n+1]
		} else {
			sectors := max(1, (len(chunk)+SectorSize-1)/SectorSize)
			gat[g] = GRANULE_LAST + byte(sectors)
			last = len(chunk) - (sectors-1)*SectorSize
		}

		if d.Verbose {
			log.Printf("granule %02X: %d bytes at %06X, next %02X", g, len(chunk), offset, gat[g])
		}
	}

	e := d.entry(slot)
	clear(e)
	copy(e, raw[:])
	e[11] = byte(fileType)
	e[12] = mode.flag()
	e[13] = granules[0]
	e[14] = byte(last >> 8)
	e[15] = byte(last)

	if d.Verbose {
		log.Printf("directory %d: %s %v %v", slot, raw[:], fileType, mode)
	}

	copy(d.image[DirectoryOffset:], d.track[:])

	return
}

// AddFileFS reads path from fsys and adds it to the disk as name.
func (d *Disk) AddFileFS(fsys fs.FS, path string, name string, fileType FileType, mode FileMode) (err error) {
	file, err := fsys.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	return d.AddFile(data, name, fileType, mode)
}

// AddFileFromPath reads a host file and adds it to the disk as name.
func (d *Disk) AddFileFromPath(path string, name string, fileType FileType, mode FileMode) (err error) {
	dir, file := splitPath(path)
	return d.AddFileFS(dir, file, name, fileType, mode)
}

// Marshal writes the image.
func (d *Disk) Marshal(w io.Writer) (err error) {
	_, err = w.Write(d.image[:])
	return
}

// Unmarshal replaces the disk with an image read from r.
func (d *Disk) Unmarshal(r io.Reader) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if len(data) != ImageSize {
		err = ErrImageSize
		return
	}

	copy(d.image[:], data)
	copy(d.track[:], d.image[DirectoryOffset:])
	d.formatted = true

	return
}

// WriteToFS marshals the image to a new file in fsys.
func (d *Disk) WriteToFS(fsys CreateFS, name string, overwrite bool) (err error) {
	file, err := fsys.Create(name, overwrite)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = d.Marshal(file)
	return
}

// WriteToFile marshals the image to a host file. Unless overwrite is set,
// an existing file is an error.
func (d *Disk) WriteToFile(path string, overwrite bool) (err error) {
	dir, file := splitPath(path)
	return d.WriteToFS(dir, file, overwrite)
}
