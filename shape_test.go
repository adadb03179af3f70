package otbv

import (
	"errors"
	"testing"
)

func TestPow2Roof(t *testing.T) {
	cases := map[int]int{
		// 0 is not a valid edge length; the documented policy is to
		// return it unchanged
		0:    0,
		1:    1,
		2:    2,
		3:    4,
		4:    4,
		5:    8,
		7:    8,
		8:    8,
		9:    16,
		100:  128,
		1023: 1024,
		1024: 1024,
		1025: 2048,
	}
	for n, want := range cases {
		got := Pow2Roof(n)
		tassert(t, got == want, "Pow2Roof(%d): expected %d got %d", n, want, got)
	}

	// the roof is the smallest power of two >= n
	for n := 1; n <= 5000; n++ {
		roof := Pow2Roof(n)
		tassert(t, roof&(roof-1) == 0, "Pow2Roof(%d) = %d is not a power of 2", n, roof)
		tassert(t, roof >= n, "Pow2Roof(%d) = %d is below n", n, roof)
		tassert(t, roof/2 < n, "Pow2Roof(%d) = %d is not the smallest roof", n, roof)
		if n&(n-1) == 0 {
			tassert(t, roof == n, "Pow2Roof(%d): power of 2 changed to %d", n, roof)
		}
	}
}

func TestMaxResPow2Roof(t *testing.T) {
	tassert(t, MaxResPow2Roof(3, 3, 3) == 4, "expected 4")
	tassert(t, MaxResPow2Roof(1, 1, 1) == 1, "expected 1")
	tassert(t, MaxResPow2Roof(2, 9, 3) == 16, "expected 16")
	tassert(t, MaxResPow2Roof(31, 2, 33) == 64, "expected 64")
}

func TestReshape(t *testing.T) {
	flat := make([]bool, 24)
	flat[0] = true  // (0,0,0)
	flat[5] = true  // z fastest: (0,1,1) for shape 2x3x4
	flat[23] = true // (1,2,3)
	vol, err := Reshape(flat, 2, 3, 4)
	tassert(t, err == nil, "Reshape: %v", err)
	x, y, z := vol.Resolution()
	tassert(t, x == 2 && y == 3 && z == 4, "resolution: got %dx%dx%d", x, y, z)
	tassert(t, vol.At(0, 0, 0), "(0,0,0) should be set")
	tassert(t, vol.At(0, 1, 1), "(0,1,1) should be set")
	tassert(t, vol.At(1, 2, 3), "(1,2,3) should be set")
	tassert(t, !vol.At(1, 0, 0), "(1,0,0) should not be set")
}

func TestReshapeInvalidShape(t *testing.T) {
	_, err := Reshape(make([]bool, 10), 2, 2, 2)
	tassert(t, errors.Is(err, ErrInvalidShape), "expected ErrInvalidShape, got %v", err)
}

func TestReshapeToCubic(t *testing.T) {
	vol, err := ReshapeToCubic(make([]bool, 27))
	tassert(t, err == nil, "ReshapeToCubic: %v", err)
	x, y, z := vol.Resolution()
	tassert(t, x == 3 && y == 3 && z == 3, "resolution: got %dx%dx%d", x, y, z)

	_, err = ReshapeToCubic(make([]bool, 26))
	tassert(t, errors.Is(err, ErrInvalidShape), "expected ErrInvalidShape, got %v", err)
	_, err = ReshapeToCubic(make([]bool, 10))
	tassert(t, errors.Is(err, ErrInvalidShape), "expected ErrInvalidShape, got %v", err)
}
