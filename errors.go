package dfield

import "errors"

// Sentinel errors for the dfield package. I/O failures from the operating
// system are returned as wrapped *os.PathError values instead; use errors.As
// to inspect them.
var (
	// ErrReadSize is returned when a file ends before the expected number
	// of bytes could be read (truncated field or raw data file).
	ErrReadSize = errors.New("dfield: bytes read did not match expected count")

	// ErrWriteSize is returned when fewer bytes than expected could be
	// written. The destination file may be left truncated.
	ErrWriteSize = errors.New("dfield: bytes written did not match expected count")

	// ErrBadMagic is returned when a file does not start with the "DF"
	// magic bytes.
	ErrBadMagic = errors.New("dfield: magic bytes did not match")

	// ErrBadSize is returned when header size fields, or dimensions passed
	// to NewField or ReadRawFile, are not positive.
	ErrBadSize = errors.New("dfield: size fields contain an invalid value")

	// ErrBadInputSize is returned by Generate for non-positive input
	// dimensions.
	ErrBadInputSize = errors.New("dfield: bad input size")

	// ErrBadOutputSize is returned by Generate for non-positive output
	// dimensions.
	ErrBadOutputSize = errors.New("dfield: bad output size")

	// ErrBadSpread is returned by Generate when spread is negative or
	// exceeds MaxSpread.
	ErrBadSpread = errors.New("dfield: bad spread")
)
