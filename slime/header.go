package slime

import (
	"encoding/binary"
	"io"
)

const (
	Magic   = 0xB10B
	Version = 13
)

// Header is the uncompressed prefix of a world file.
type Header struct {
	Version      uint8
	WorldVersion int32
	Flags        WorldFlags
}

// ReadHeader reads and validates the header. The magic is checked before anything else is read.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header

	var magic uint16
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return h, err
	}
	if magic != Magic {
		return h, &MagicMismatchError{Got: magic}
	}

	if err := binary.Read(r, binary.BigEndian, &h.Version); err != nil {
		return h, noEOF(err)
	}
	if h.Version != Version {
		return h, &UnsupportedVersionError{Got: h.Version}
	}

	var rest struct {
		WorldVersion int32
		Flags        uint8
	}
	if err := binary.Read(r, binary.BigEndian, &rest); err != nil {
		return h, noEOF(err)
	}
	h.WorldVersion = rest.WorldVersion
	h.Flags = WorldFlags(rest.Flags)
	return h, nil
}
