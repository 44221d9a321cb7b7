package buffer

import (
	"encoding/binary"
	"io"

	"github.com/wan-qy/superstring/internal/unicode16"
)

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writePoint(w io.Writer, p unicode16.Point) error {
	if err := writeUint32(w, p.Row); err != nil {
		return err
	}
	return writeUint32(w, p.Column)
}

func readPoint(r io.Reader) (unicode16.Point, error) {
	row, err := readUint32(r)
	if err != nil {
		return unicode16.Point{}, err
	}
	col, err := readUint32(r)
	if err != nil {
		return unicode16.Point{}, err
	}
	return unicode16.Point{Row: row, Column: col}, nil
}
