package otbv

import (
	"fmt"
	"math"
	"math/bits"
)

// Pow2Roof returns the smallest power of two greater than or equal to
// n.  If n is already a power of two it comes back unchanged.  For
// n == 0 the result is defined as 0; 0 is never a valid edge length,
// so every caller rejects empty volumes before getting here.
func Pow2Roof(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}

// MaxResPow2Roof returns the smallest power of two greater than or
// equal to the largest of the three extents: the edge of the cube a
// volume with this resolution pads to.
func MaxResPow2Roof(xRes, yRes, zRes int) int {
	maxRes := xRes
	if yRes > maxRes {
		maxRes = yRes
	}
	if zRes > maxRes {
		maxRes = zRes
	}
	return Pow2Roof(maxRes)
}

// Reshape reinterprets a flat buffer as a volume with the given
// resolution, filling in row-major order (x slowest, z fastest).
func Reshape(flat []bool, xRes, yRes, zRes int) (*Volume, error) {
	if len(flat) != xRes*yRes*zRes {
		return nil, fmt.Errorf("%w: %d values cannot be reshaped to %dx%dx%d",
			ErrInvalidShape, len(flat), xRes, yRes, zRes)
	}
	vol := Volume{}.New(xRes, yRes, zRes)
	copy(vol.data, flat)
	return vol, nil
}

// ReshapeToCubic reinterprets a flat buffer as a cube whose edge is
// the cube root of the buffer length.
func ReshapeToCubic(flat []bool) (*Volume, error) {
	edge := int(math.Round(math.Cbrt(float64(len(flat)))))
	if edge*edge*edge != len(flat) {
		return nil, fmt.Errorf("%w: %d values cannot be reshaped to a cube",
			ErrInvalidShape, len(flat))
	}
	return Reshape(flat, edge, edge, edge)
}
