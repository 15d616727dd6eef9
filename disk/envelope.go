package disk

const (
	ENVELOPE_PREAMBLE  = byte(0x00) // Segment header tag
	ENVELOPE_POSTAMBLE = byte(0xff) // Execution address tag
	ENVELOPE_HEADER    = 5          // Bytes in a segment header or the postamble
)

// Segment is a block of code and its load address.
type Segment struct {
	Address uint16
	Data    []byte
}

// Envelope wraps code in the loadable machine language file format: a
// single segment loaded at start, followed by a postamble holding exec.
func Envelope(code []byte, start uint16, exec uint16) (binary []byte, err error) {
	if len(code) > 0xffff {
		err = ErrEnvelopeSize
		return
	}

	size := uint16(len(code))
	binary = make([]byte, 0, len(code)+2*ENVELOPE_HEADER)
	binary = append(binary, ENVELOPE_PREAMBLE, byte(size>>8), byte(size), byte(start>>8), byte(start))
	binary = append(binary, code...)
	binary = append(binary, ENVELOPE_POSTAMBLE, 0x00, 0x00, byte(exec>>8), byte(exec))

	return
}

// ParseEnvelope splits a loadable machine language file into its segments
// and execution address. Bytes after the postamble are ignored.
func ParseEnvelope(binary []byte) (segments []Segment, exec uint16, err error) {
	for {
		if len(binary) < ENVELOPE_HEADER {
			err = ErrEnvelope
			return
		}

		tag := binary[0]
		size := int(binary[1])<<8 | int(binary[2])
		addr := uint16(binary[3])<<8 | uint16(binary[4])
		binary = binary[ENVELOPE_HEADER:]

		switch tag {
		case ENVELOPE_PREAMBLE:
			if len(binary) < size {
				err = ErrEnvelope
				return
			}
			segments = append(segments, Segment{Address: addr, Data: binary[:size]})
			binary = binary[size:]
		case ENVELOPE_POSTAMBLE:
			if size != 0 {
				err = ErrEnvelope
				return
			}
			exec = addr
			return
		default:
			err = ErrEnvelope
			return
		}
	}
}
