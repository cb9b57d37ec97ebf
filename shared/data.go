package shared

import (
	"bytes"
	"fmt"
)

// minFrontCapacity is the smallest headroom reserved when the buffer has to grow.
const minFrontCapacity = 64

// Data is the proof data. Apart from construction, its only mutation is prepending zero
// bytes, which runs in amortized constant time: the content sits at the back of the
// underlying slice and the free space in front of it doubles whenever it runs out.
type Data struct {
	buf []byte
	off int
}

// NewData returns Data holding b. It takes ownership of b.
func NewData(b []byte) *Data {
	return &Data{buf: b}
}

// Len returns the number of bytes in the data.
func (d *Data) Len() int {
	return len(d.buf) - d.off
}

// Bytes returns the content as one contiguous slice. The slice aliases the buffer and is only
// valid until the next mutation.
func (d *Data) Bytes() []byte {
	return d.buf[d.off:]
}

// Equal reports whether the content equals b byte for byte.
func (d *Data) Equal(b []byte) bool {
	return bytes.Equal(d.Bytes(), b)
}

// Clone returns an independent copy of the data.
func (d *Data) Clone() *Data {
	return NewData(bytes.Clone(d.Bytes()))
}

// PrependZero adds a single zero byte in front of the data.
func (d *Data) PrependZero() {
	if d.off == 0 {
		d.grow(Max(d.Len(), minFrontCapacity))
	}
	d.off--
	d.buf[d.off] = 0
}

// grow reallocates the buffer with at least front bytes of headroom, keeping the content at
// the back.
func (d *Data) grow(front int) {
	front += d.off
	buf := make([]byte, front+d.Len())
	copy(buf[front:], d.Bytes())
	d.buf = buf
	d.off = front
}

func (d *Data) String() string {
	return fmt.Sprintf("Data{len: %d}", d.Len())
}
