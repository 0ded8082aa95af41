package dfield

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// File format: the two magic bytes "DF", an int32 width, an int32 height,
// then width*height signed bytes in row-major order.
//
// The header integers are raw native-endian values with no byte-order
// normalization, matching the asset pipeline that produces them. Fields
// written on one architecture are not guaranteed to load on one with a
// different byte order.

// magic marks the start of every field file.
var magic = [2]byte{'D', 'F'}

// headerSize is the encoded size of magic plus both dimensions.
const headerSize = 2 + 4 + 4

// Encode writes the field to w in the dfield binary format.
//
// Encode panics if the field has non-positive dimensions: such a field
// cannot come from Generate or the codec, so passing one is a programming
// error, not a recoverable condition.
func Encode(w io.Writer, f *Field) error {
	if f.width <= 0 || f.height <= 0 {
		panic("dfield: Encode called with non-positive field dimensions")
	}

	var hdr [headerSize]byte
	hdr[0] = magic[0]
	hdr[1] = magic[1]
	binary.NativeEndian.PutUint32(hdr[2:6], uint32(f.width))
	binary.NativeEndian.PutUint32(hdr[6:10], uint32(f.height))

	if err := writeFull(w, hdr[:]); err != nil {
		return fmt.Errorf("dfield: writing header: %w", err)
	}

	buf := make([]byte, len(f.data))
	for i, v := range f.data {
		buf[i] = byte(v)
	}
	if err := writeFull(w, buf); err != nil {
		return fmt.Errorf("dfield: writing field data: %w", err)
	}
	return nil
}

// Decode reads a field from r in the dfield binary format.
//
// Each failure mode is distinct: ErrBadMagic for a wrong leading marker,
// ErrBadSize for non-positive dimensions, ErrReadSize for a stream that ends
// early, and wrapped I/O errors for everything else.
func Decode(r io.Reader) (*Field, error) {
	var m [2]byte
	if err := readFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("dfield: reading magic: %w", err)
	}
	if m != magic {
		return nil, ErrBadMagic
	}

	var dims [8]byte
	if err := readFull(r, dims[:]); err != nil {
		return nil, fmt.Errorf("dfield: reading header: %w", err)
	}
	width := int32(binary.NativeEndian.Uint32(dims[0:4]))
	height := int32(binary.NativeEndian.Uint32(dims[4:8]))
	if width <= 0 || height <= 0 {
		return nil, ErrBadSize
	}

	buf := make([]byte, int(width)*int(height))
	if err := readFull(r, buf); err != nil {
		return nil, fmt.Errorf("dfield: reading field data: %w", err)
	}
	data := make([]int8, len(buf))
	for i, v := range buf {
		data[i] = int8(v)
	}
	return &Field{width: width, height: height, data: data}, nil
}

// WriteFile writes the field to path in the dfield binary format.
// A failed or interrupted write may leave a truncated file behind; callers
// that care should remove the path on error.
func WriteFile(path string, f *Field) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dfield: %w", err)
	}
	if err := Encode(file, f); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("dfield: %w", err)
	}
	return nil
}

// ReadFile loads a field from path.
// This is the entry point renderers use to materialize texture sources.
func ReadFile(path string) (*Field, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dfield: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return Decode(file)
}

// ReadRawFile loads a headerless occupancy buffer of exactly width*height
// bytes, the kind of data Generate takes as input. The dimensions come from
// the caller; there is no magic and no header. A file with fewer bytes
// yields ErrReadSize, extra trailing bytes are ignored.
func ReadRawFile(path string, width, height int32) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadSize
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dfield: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data := make([]uint8, int(width)*int(height))
	if err := readFull(file, data); err != nil {
		return nil, fmt.Errorf("dfield: reading raw data: %w", err)
	}
	return data, nil
}

// readFull reads len(buf) bytes, folding both EOF flavors into ErrReadSize
// so a truncated file is always reported as a short read.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrReadSize
	}
	return err
}

// writeFull writes buf, reporting a short write without error as
// ErrWriteSize. os.File returns an error for short writes on its own, but
// the io.Writer contract only requires err != nil when n < len(buf) for
// well-behaved writers, so the count is checked regardless.
func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrWriteSize
	}
	return nil
}
