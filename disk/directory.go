package disk

import (
	"fmt"
	"strings"
)

// Entry is a file in the disk directory.
type Entry struct {
	Name    string   // Name, with the extension after a dot.
	Type    FileType // Directory file type.
	Mode    FileMode // ASCII or binary.
	Granule byte     // First granule.
	Size    int      // Length of the file in bytes.
}

func (e Entry) String() string {
	return fmt.Sprintf("%-12s %-5v %-6v %6d", e.Name, e.Type, e.Mode, e.Size)
}

func entryName(raw []byte) (name string) {
	name = strings.TrimRight(string(raw[:8]), " ")
	ext := strings.TrimRight(string(raw[8:11]), " ")
	if len(ext) != 0 {
		name += "." + ext
	}
	return
}

// chain returns the granules of a file and its length.
func (d *Disk) chain(first byte, last int) (granules []byte, size int, err error) {
	gat := d.gat()
	g := first
	for range GranuleCount {
		if int(g) >= GranuleCount {
			break
		}
		granules = append(granules, g)

		next := gat[g]
		if next < GranuleCount {
			size += GranuleSize
			g = next
			continue
		}

		sectors := int(next - GRANULE_LAST)
		if next < GRANULE_LAST || sectors > GranuleSize/SectorSize || last > SectorSize {
			break
		}
		if sectors > 0 {
			size += (sectors-1)*SectorSize + last
		}
		return
	}

	err = ErrGranuleChain
	return
}

// Files lists the directory.
func (d *Disk) Files() (entries []Entry, err error) {
	for slot := range EntryCount {
		e := d.entry(slot)
		if e[0] == 0xff {
			break
		}
		if e[0] == 0x00 {
			continue
		}

		entry := Entry{
			Name:    entryName(e),
			Type:    FileType(e[11]),
			Mode:    modeOfFlag(e[12]),
			Granule: e[13],
		}
		_, entry.Size, err = d.chain(entry.Granule, int(e[14])<<8|int(e[15]))
		if err != nil {
			err = ErrFile{Name: entry.Name, Err: err}
			return
		}

		entries = append(entries, entry)
	}

	return
}

// ReadFile returns the contents of a file, following its granule chain.
func (d *Disk) ReadFile(name string) (data []byte, err error) {
	defer func() {
		if err != nil {
			err = ErrFile{Name: name, Err: err}
		}
	}()

	raw, err := dirName(name)
	if err != nil {
		return
	}

	slot := d.lookup(raw)
	if slot < 0 {
		err = ErrFileNotFound
		return
	}

	e := d.entry(slot)
	granules, size, err := d.chain(e[13], int(e[14])<<8|int(e[15]))
	if err != nil {
		return
	}

	data = make([]byte, 0, size)
	for _, g := range granules {
		offset := GranuleOffset(g)
		n := min(GranuleSize, size-len(data))
		data = append(data, d.image[offset:offset+n]...)
	}

	return
}
