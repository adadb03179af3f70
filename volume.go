package otbv

import "fmt"

// Volume is a dense 3-D grid of booleans.  Cells live in a single flat
// buffer indexed by x*yres*zres + y*zres + z, so x varies slowest and
// z fastest; the same row-major order the flat Reshape inputs use.
type Volume struct {
	xRes, yRes, zRes int
	data             []bool
}

// New returns an all-false volume with the given resolution.
func (vol Volume) New(xRes, yRes, zRes int) *Volume {
	vol.xRes = xRes
	vol.yRes = yRes
	vol.zRes = zRes
	vol.data = make([]bool, xRes*yRes*zRes)
	return &vol
}

// Resolution returns the three axis extents.
func (vol *Volume) Resolution() (xRes, yRes, zRes int) {
	return vol.xRes, vol.yRes, vol.zRes
}

// Size returns the total cell count; 0 if any extent is 0.
func (vol *Volume) Size() int {
	return vol.xRes * vol.yRes * vol.zRes
}

func (vol *Volume) idx(x, y, z int) int {
	return x*vol.yRes*vol.zRes + y*vol.zRes + z
}

// At returns the cell at (x, y, z).  Coordinates are not bounds
// checked here; callers own that contract.
func (vol *Volume) At(x, y, z int) bool {
	return vol.data[vol.idx(x, y, z)]
}

// Set writes the cell at (x, y, z).
func (vol *Volume) Set(x, y, z int, value bool) {
	vol.data[vol.idx(x, y, z)] = value
}

// setRange sets every cell in [xs,xe) x [ys,ye) x [zs,ze) to value.
func (vol *Volume) setRange(value bool, xs, xe, ys, ye, zs, ze int) {
	for x := xs; x < xe; x++ {
		for y := ys; y < ye; y++ {
			row := x*vol.yRes*vol.zRes + y*vol.zRes
			for z := zs; z < ze; z++ {
				vol.data[row+z] = value
			}
		}
	}
}

// DeepCopy returns an independent copy of the volume.
func (vol *Volume) DeepCopy() *Volume {
	cp := Volume{}.New(vol.xRes, vol.yRes, vol.zRes)
	copy(cp.data, vol.data)
	return cp
}

// Equal reports whether both volumes have the same resolution and the
// same cell values.
func (vol *Volume) Equal(other *Volume) bool {
	if vol.xRes != other.xRes || vol.yRes != other.yRes || vol.zRes != other.zRes {
		return false
	}
	for i := range vol.data {
		if vol.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// PadToCube extends the volume in place to the smallest power-of-two
// cube that fits it.  New cells are false.
func (vol *Volume) PadToCube() error {
	if vol.Size() == 0 {
		return fmt.Errorf("%w: cannot pad a volume of size 0 to a cube", ErrEmptyVolume)
	}
	edge := MaxResPow2Roof(vol.xRes, vol.yRes, vol.zRes)
	if edge == vol.xRes && edge == vol.yRes && edge == vol.zRes {
		return nil
	}
	padded := Volume{}.New(edge, edge, edge)
	for x := 0; x < vol.xRes; x++ {
		for y := 0; y < vol.yRes; y++ {
			copy(padded.data[padded.idx(x, y, 0):padded.idx(x, y, vol.zRes)],
				vol.data[vol.idx(x, y, 0):vol.idx(x, y, vol.zRes)])
		}
	}
	*vol = *padded
	return nil
}

// Cut truncates the volume in place to the given resolution.  The
// caller guarantees the new extents do not exceed the current ones; no
// checks are performed.
func (vol *Volume) Cut(xRes, yRes, zRes int) {
	if xRes == vol.xRes && yRes == vol.yRes && zRes == vol.zRes {
		return
	}
	cut := Volume{}.New(xRes, yRes, zRes)
	for x := 0; x < xRes; x++ {
		for y := 0; y < yRes; y++ {
			copy(cut.data[cut.idx(x, y, 0):cut.idx(x, y, zRes)],
				vol.data[vol.idx(x, y, 0):vol.idx(x, y, zRes)])
		}
	}
	*vol = *cut
}
