package patch

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/wan-qy/superstring/internal/unicode16"
)

// wireVersion guards against decoding a stream written by an incompatible
// future format.
const wireVersion = 1

// Serialize writes the patch to w as a stable little-endian binary
// stream: a version tag, the change count, then each change's points,
// sizes, and UTF-16 text payload length-prefixed.
func (p *Patch) Serialize(w io.Writer) error {
	if err := writeUint32(w, wireVersion); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(p.changes))); err != nil {
		return err
	}
	for _, c := range p.changes {
		if err := writePoint(w, c.OldStart); err != nil {
			return err
		}
		if err := writePoint(w, c.OldEnd); err != nil {
			return err
		}
		if err := writePoint(w, c.NewStart); err != nil {
			return err
		}
		if err := writePoint(w, c.NewEnd); err != nil {
			return err
		}
		if err := writeUint32(w, c.OldTextSize); err != nil {
			return err
		}
		units := c.NewText.Units()
		if err := writeUint32(w, uint32(len(units))); err != nil {
			return err
		}
		for _, u := range units {
			if err := writeUint16(w, u); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deserialize reads a patch previously written by Serialize and returns
// it as a new Patch.
func Deserialize(r io.Reader) (*Patch, error) {
	version, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if version != wireVersion {
		return nil, fmt.Errorf("patch: unsupported wire version %d", version)
	}
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	p := &Patch{changes: make([]Change, 0, count)}
	for i := uint32(0); i < count; i++ {
		var c Change
		if c.OldStart, err = readPoint(r); err != nil {
			return nil, err
		}
		if c.OldEnd, err = readPoint(r); err != nil {
			return nil, err
		}
		if c.NewStart, err = readPoint(r); err != nil {
			return nil, err
		}
		if c.NewEnd, err = readPoint(r); err != nil {
			return nil, err
		}
		if c.OldTextSize, err = readUint32(r); err != nil {
			return nil, err
		}
		textLen, err := readUint32(r)
		if err != nil {
			return nil, err
		}
		units := make([]uint16, textLen)
		for j := range units {
			if units[j], err = readUint16(r); err != nil {
				return nil, err
			}
		}
		c.NewText = unicode16.NewTextFromUTF16(units)
		p.changes = append(p.changes, c)
	}
	p.recomputePrecedingSizes()
	return p, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writeUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func writePoint(w io.Writer, p Point) error {
	if err := writeUint32(w, p.Row); err != nil {
		return err
	}
	return writeUint32(w, p.Column)
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readPoint(r io.Reader) (Point, error) {
	row, err := readUint32(r)
	if err != nil {
		return Point{}, err
	}
	col, err := readUint32(r)
	if err != nil {
		return Point{}, err
	}
	return Point{Row: row, Column: col}, nil
}
