package otbv

// BitSeq is a growable bit sequence with an exact bit length, distinct
// from the length of its backing bytes.  Bits pack most-significant
// first within each byte, the same order the container format uses, so
// Bytes is a straight copy once the length is byte-aligned.  The zero
// value is an empty sequence ready to use.
type BitSeq struct {
	bytes  []byte
	length int
}

// Len returns the number of bits in the sequence.
func (seq *BitSeq) Len() int {
	return seq.length
}

// Append adds one bit to the end of the sequence.
func (seq *BitSeq) Append(bit bool) {
	if seq.length%8 == 0 {
		seq.bytes = append(seq.bytes, 0)
	}
	if bit {
		seq.bytes[seq.length/8] |= 1 << (7 - seq.length%8)
	}
	seq.length++
}

// At returns bit i.  Callers keep i within [0, Len).
func (seq *BitSeq) At(i int) bool {
	return seq.bytes[i/8]&(1<<(7-i%8)) != 0
}

// AppendSeq appends every bit of other to the sequence.
func (seq *BitSeq) AppendSeq(other *BitSeq) {
	for i := 0; i < other.length; i++ {
		seq.Append(other.At(i))
	}
}

// Drop returns a new sequence without the first n bits.
func (seq *BitSeq) Drop(n int) *BitSeq {
	out := &BitSeq{}
	for i := n; i < seq.length; i++ {
		out.Append(seq.At(i))
	}
	return out
}

// Bytes returns the packed bytes, MSB first per byte.  Bits past Len
// in the final byte are zero.
func (seq *BitSeq) Bytes() []byte {
	out := make([]byte, len(seq.bytes))
	copy(out, seq.bytes)
	return out
}

// UnpackBits expands packed bytes into a sequence of 8*len(buf) bits,
// MSB first per byte.
func UnpackBits(buf []byte) *BitSeq {
	seq := &BitSeq{bytes: make([]byte, len(buf)), length: 8 * len(buf)}
	copy(seq.bytes, buf)
	return seq
}
