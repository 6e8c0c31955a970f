package database

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// encoder writes through a bufio.Writer, counting bytes. The first error
// sticks and turns later writes into no-ops.
type encoder struct {
	w   *bufio.Writer
	n   int64
	err error
	buf [binary.MaxVarintLen64]byte
}

func newEncoder(w io.Writer) *encoder {
	return &encoder{w: bufio.NewWriterSize(w, 64*1024)}
}

func (e *encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	n, err := e.w.Write(p)
	e.n += int64(n)
	e.err = err
}

func (e *encoder) uvarint(x uint64) {
	n := binary.PutUvarint(e.buf[:], x)
	e.write(e.buf[:n])
}

func (e *encoder) str(s string) {
	e.uvarint(uint64(len(s)))
	if e.err != nil {
		return
	}
	n, err := e.w.WriteString(s)
	e.n += int64(n)
	e.err = err
}

func (e *encoder) flush() {
	if e.err != nil {
		return
	}
	e.err = e.w.Flush()
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// source is what the decode helpers read from: the buffered file for the
// header and a length limited recordReader for package records.
type source interface {
	io.Reader
	io.ByteReader
}

// unexpected maps io.EOF to io.ErrUnexpectedEOF. Every read in this
// format is announced by a count, so running out of input is truncation.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func readUvarint(r source) (uint64, error) {
	x, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, unexpected(err)
	}
	return x, nil
}

func readString(r source) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("%w: string length %d", ErrCorruptRecord, n)
	}
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return unexpected(err)
	}
	return nil
}

// readCount reads a list length and rejects lengths that cannot fit in
// the limit bytes that remain, each element taking at least one byte.
func readCount(r source, limit int64, what string) (int, error) {
	n, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if n > uint64(limit) {
		return 0, fmt.Errorf("%w: %d %s in %d bytes", ErrCorruptRecord, n, what, limit)
	}
	return int(n), nil
}

// recordReader limits reads to the bytes of one package record. Reading
// past the record is corruption, not truncation.
type recordReader struct {
	r *bufio.Reader
	n int64
}

func (rr *recordReader) ReadByte() (byte, error) {
	if rr.n <= 0 {
		return 0, fmt.Errorf("%w: read past end of record", ErrCorruptRecord)
	}
	b, err := rr.r.ReadByte()
	if err != nil {
		return 0, unexpected(err)
	}
	rr.n--
	return b, nil
}

func (rr *recordReader) Read(p []byte) (int, error) {
	if rr.n <= 0 {
		return 0, fmt.Errorf("%w: read past end of record", ErrCorruptRecord)
	}
	if int64(len(p)) > rr.n {
		p = p[:rr.n]
	}
	n, err := rr.r.Read(p)
	rr.n -= int64(n)
	return n, err
}

// discard drops the rest of the record without decoding it.
func (rr *recordReader) discard() error {
	if rr.n <= 0 {
		return nil
	}
	n, err := rr.r.Discard(int(rr.n))
	rr.n -= int64(n)
	if err != nil {
		return unexpected(err)
	}
	return nil
}
