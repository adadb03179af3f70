package otbv

import (
	"math/rand"
	"testing"
)

// test boolean condition
func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper() // cause file:line info to show caller
	if !cond {
		t.Fatalf(txt, args...)
	}
}

// randVolume returns a deterministic pseudo-random volume.
func randVolume(xRes, yRes, zRes int, seed int64) *Volume {
	rnd := rand.New(rand.NewSource(seed))
	vol := Volume{}.New(xRes, yRes, zRes)
	for i := range vol.data {
		vol.data[i] = rnd.Intn(2) == 1
	}
	return vol
}
