package otbv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// signature identifies an OTBV container; the trailing byte doubles as
// a format version marker.
var signature = []byte{'O', 'T', 'B', 'V', 0x96}

// MaxResolution caps each axis extent a container may declare.  Load
// rejects larger values before attempting any allocation.
const MaxResolution = 100_000

// headerLen is the fixed byte count before the data section:
// signature (5), metadata (1), x/y/z resolution (4 each), data length
// (4).
const headerLen = 22

// Header is the decoded container header.
type Header struct {
	XRes, YRes, ZRes int
	Padded           bool
	PadBits          int
	DataBytes        int
}

// Write encodes vol and streams it to w as a complete OTBV container.
// A volume of size 0 is a logged no-op, not an error: nothing is
// written and the caller's sink is left untouched.
func Write(w io.Writer, vol *Volume) error {
	if vol.Size() == 0 {
		log.Warnf("the provided volume size is 0; nothing will be written")
		return nil
	}
	xRes, yRes, zRes := vol.Resolution()

	work := vol.DeepCopy()
	if err := work.PadToCube(); err != nil {
		return err
	}
	padded := work.Size() > vol.Size()

	enc, err := Encode(work)
	if err != nil {
		return err
	}
	return writeRecord(w, enc, xRes, yRes, zRes, padded)
}

// writeRecord emits the container bytes for an already-encoded bit
// sequence.  The resolution is the original, unpadded one; the y and z
// fields stay 0 when the volume was not padded, and a loader infers
// them from x.
func writeRecord(w io.Writer, enc *BitSeq, xRes, yRes, zRes int, padded bool) error {
	padBits := 0
	if rem := enc.Len() % 8; rem != 0 {
		padBits = 8 - rem
	}

	meta := byte(padBits << 5)
	if padded {
		meta |= 1 << 4
	}

	resY, resZ := uint32(0), uint32(0)
	if padded {
		resY, resZ = uint32(yRes), uint32(zRes)
	}

	header := make([]byte, headerLen)
	copy(header, signature)
	header[5] = meta
	binary.LittleEndian.PutUint32(header[6:10], uint32(xRes))
	binary.LittleEndian.PutUint32(header[10:14], resY)
	binary.LittleEndian.PutUint32(header[14:18], resZ)
	binary.LittleEndian.PutUint32(header[18:22], uint32((enc.Len()+padBits)/8))
	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing container header")
	}

	packed := &BitSeq{}
	for i := 0; i < padBits; i++ {
		packed.Append(false)
	}
	packed.AppendSeq(enc)
	if _, err := w.Write(packed.Bytes()); err != nil {
		return errors.Wrap(err, "writing container data")
	}
	log.Debugf("wrote %d container bytes (%d encoding bits, %d pad bits)",
		headerLen+packed.Len()/8, enc.Len(), padBits)
	return nil
}

// ReadHeader reads and validates just the container header, leaving r
// positioned at the data section.
func ReadHeader(r io.Reader) (Header, error) {
	var hdr Header

	sig := make([]byte, len(signature))
	if _, err := io.ReadFull(r, sig); err != nil {
		return hdr, errors.Wrap(err, "reading container signature")
	}
	if !bytes.Equal(sig, signature) {
		return hdr, fmt.Errorf("%w: % x is not an OTBV container", ErrSignatureMismatch, sig)
	}

	meta := make([]byte, headerLen-len(signature))
	if _, err := io.ReadFull(r, meta); err != nil {
		return hdr, errors.Wrap(err, "reading container header")
	}
	hdr.PadBits = int(meta[0] >> 5)
	hdr.Padded = meta[0]>>4&1 == 1
	hdr.XRes = int(binary.LittleEndian.Uint32(meta[1:5]))
	if hdr.Padded {
		hdr.YRes = int(binary.LittleEndian.Uint32(meta[5:9]))
		hdr.ZRes = int(binary.LittleEndian.Uint32(meta[9:13]))
	} else {
		hdr.YRes = hdr.XRes
		hdr.ZRes = hdr.XRes
	}
	hdr.DataBytes = int(binary.LittleEndian.Uint32(meta[13:17]))

	if hdr.XRes > MaxResolution || hdr.YRes > MaxResolution || hdr.ZRes > MaxResolution {
		return hdr, fmt.Errorf("%w: %dx%dx%d exceeds %d per axis",
			ErrResolutionTooLarge, hdr.XRes, hdr.YRes, hdr.ZRes, MaxResolution)
	}
	return hdr, nil
}

// Read parses a complete OTBV container from r and decodes the volume
// it holds.
func Read(r io.Reader) (*Volume, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	data := make([]byte, hdr.DataBytes)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: data section truncated: %v", ErrMalformedEncoding, err)
	}

	enc := UnpackBits(data).Drop(hdr.PadBits)
	return Decode(enc, hdr.XRes, hdr.YRes, hdr.ZRes)
}

// Save encodes vol and writes it to filename.  The container is
// staged in a temporary file and renamed into place, so a failed save
// never leaves a truncated container behind.  Saving a volume of size
// 0 is a logged no-op and creates no file.
func Save(filename string, vol *Volume) (err error) {
	defer Return(&err)

	if vol.Size() == 0 {
		log.Warnf("the provided volume size is 0; %s will not be written", filename)
		return nil
	}

	var buf bytes.Buffer
	err = Write(&buf, vol)
	Ck(err)
	err = renameio.WriteFile(filename, buf.Bytes(), 0644)
	Ck(err)
	log.Debugf("written %d bytes to %s", buf.Len(), filename)
	return nil
}

// SaveFlat reshapes a flat buffer to the given resolution and saves
// it.
func SaveFlat(filename string, flat []bool, xRes, yRes, zRes int) error {
	vol, err := Reshape(flat, xRes, yRes, zRes)
	if err != nil {
		return err
	}
	return Save(filename, vol)
}

// Load reads the container at filename and decodes the volume it
// holds.
func Load(filename string) (*Volume, error) {
	fh, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening container")
	}
	defer fh.Close()
	return Read(fh)
}
