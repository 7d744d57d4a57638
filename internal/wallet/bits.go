package wallet

// bitWriter appends values MSB-first into a byte buffer.
type bitWriter struct {
	buf  []byte
	nbit int
}

func newBitWriter(capBits int) *bitWriter {
	return &bitWriter{buf: make([]byte, 0, (capBits+7)/8)}
}

// writeBits appends the low n bits of v, most significant first.
func (w *bitWriter) writeBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.nbit%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[w.nbit/8] |= 0x80 >> uint(w.nbit%8)
		}
		w.nbit++
	}
}

// bytes returns the buffer; a trailing partial byte is zero-padded.
func (w *bitWriter) bytes() []byte {
	return w.buf
}

// bitReader reads values MSB-first from a byte buffer.
type bitReader struct {
	buf []byte
	pos int
}

func newBitReader(buf []byte) *bitReader {
	return &bitReader{buf: buf}
}

// remaining returns the number of unread bits.
func (r *bitReader) remaining() int {
	return len(r.buf)*8 - r.pos
}

// readBits reads n (<= 32) bits. Reading past the end yields zero bits.
func (r *bitReader) readBits(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v <<= 1
		if r.pos < len(r.buf)*8 && r.buf[r.pos/8]&(0x80>>uint(r.pos%8)) != 0 {
			v |= 1
		}
		r.pos++
	}
	return v
}
