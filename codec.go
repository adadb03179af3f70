package otbv

import "fmt"

// maxDepth bounds the octree recursion.  Twenty levels accommodate
// volumes up to 2^20 cells per axis, well past MaxResolution.
const maxDepth = 20

// isHomogeneous reports whether every cell in [xs,xe) x [ys,ye) x
// [zs,ze) has the same value.  A box of fewer than two cells is
// trivially homogeneous.
func isHomogeneous(vol *Volume, xs, xe, ys, ye, zs, ze int) bool {
	if (xe-xs)*(ye-ys)*(ze-zs) < 2 {
		return true
	}
	first := vol.At(xs, ys, zs)
	for x := xs; x < xe; x++ {
		for y := ys; y < ye; y++ {
			row := x*vol.yRes*vol.zRes + y*vol.zRes
			for z := zs; z < ze; z++ {
				if vol.data[row+z] != first {
					return false
				}
			}
		}
	}
	return true
}

// Encode serializes a volume as a pre-order octree bit sequence: one
// token bit per node (0=leaf, 1=split), one value bit after each leaf
// token.  The volume must already be a power-of-two cube; Save pads
// before calling here.
func Encode(vol *Volume) (*BitSeq, error) {
	enc := &BitSeq{}
	edge := vol.xRes
	err := encodeRecursive(vol, enc, 0, edge, 0, edge, 0, edge, 0)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

func encodeRecursive(vol *Volume, enc *BitSeq, xs, xe, ys, ye, zs, ze, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w while encoding", ErrMaxDepthExceeded)
	}
	// start index inclusive, end index exclusive
	if (xe-xs)*(ye-ys)*(ze-zs) == 0 {
		return fmt.Errorf("%w while encoding [%d,%d)x[%d,%d)x[%d,%d)",
			ErrZeroSizeSubvolume, xs, xe, ys, ye, zs, ze)
	}
	if isHomogeneous(vol, xs, xe, ys, ye, zs, ze) {
		// leaf
		enc.Append(false)
		enc.Append(vol.At(xs, ys, zs))
		return nil
	}

	xSplit := (xs + xe) >> 1
	ySplit := (ys + ye) >> 1
	zSplit := (zs + ze) >> 1

	enc.Append(true)

	// Octant order is part of the wire contract: x half outer (low
	// then high), y half middle, z half inner.
	for i := 0; i < 2; i++ {
		xFirst, xSecond := xs, xSplit
		if i == 1 {
			xFirst, xSecond = xSplit, xe
		}
		for j := 0; j < 2; j++ {
			yFirst, ySecond := ys, ySplit
			if j == 1 {
				yFirst, ySecond = ySplit, ye
			}
			for k := 0; k < 2; k++ {
				zFirst, zSecond := zs, zSplit
				if k == 1 {
					zFirst, zSecond = zSplit, ze
				}
				err := encodeRecursive(vol, enc, xFirst, xSecond, yFirst, ySecond, zFirst, zSecond, depth+1)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Decode rebuilds a volume from an octree bit sequence.  The encoding
// is decoded into the power-of-two cube the resolution pads to, then
// cut back down to the requested resolution.  The whole sequence must
// be consumed exactly; leftover or missing bits mean corruption.
func Decode(enc *BitSeq, xRes, yRes, zRes int) (*Volume, error) {
	if xRes < 1 || yRes < 1 || zRes < 1 {
		return nil, fmt.Errorf("%w: resolution %dx%dx%d is not positive",
			ErrMalformedEncoding, xRes, yRes, zRes)
	}
	edge := MaxResPow2Roof(xRes, yRes, zRes)
	vol := Volume{}.New(edge, edge, edge)
	next, err := decodeRecursive(enc, vol, 0, 0, edge, 0, edge, 0, edge, 0)
	if err != nil {
		return nil, err
	}
	if next != enc.Len() {
		return nil, fmt.Errorf("%w: %d of %d bits consumed",
			ErrMalformedEncoding, next, enc.Len())
	}
	vol.Cut(xRes, yRes, zRes)
	return vol, nil
}

// decodeRecursive mirrors encodeRecursive, threading the cursor
// position through the traversal and returning where the next sibling
// starts.
func decodeRecursive(enc *BitSeq, vol *Volume, next, xs, xe, ys, ye, zs, ze, depth int) (int, error) {
	if depth > maxDepth {
		return next, fmt.Errorf("%w while decoding", ErrMaxDepthExceeded)
	}
	if (xe-xs)*(ye-ys)*(ze-zs) == 0 {
		return next, fmt.Errorf("%w while decoding [%d,%d)x[%d,%d)x[%d,%d)",
			ErrZeroSizeSubvolume, xs, xe, ys, ye, zs, ze)
	}
	if next >= enc.Len() {
		return next, fmt.Errorf("%w: unexpected end of encoding at bit %d",
			ErrMalformedEncoding, next)
	}
	token := enc.At(next)
	next++
	if !token {
		// leaf
		if next >= enc.Len() {
			return next, fmt.Errorf("%w: unexpected end of encoding at bit %d",
				ErrMalformedEncoding, next)
		}
		vol.setRange(enc.At(next), xs, xe, ys, ye, zs, ze)
		return next + 1, nil
	}

	xSplit := (xs + xe) >> 1
	ySplit := (ys + ye) >> 1
	zSplit := (zs + ze) >> 1
	xRange := [3]int{xs, xSplit, xe}
	yRange := [3]int{ys, ySplit, ye}
	zRange := [3]int{zs, zSplit, ze}

	var err error
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				next, err = decodeRecursive(enc, vol, next,
					xRange[i], xRange[i+1], yRange[j], yRange[j+1], zRange[k], zRange[k+1], depth+1)
				if err != nil {
					return next, err
				}
			}
		}
	}
	return next, nil
}
