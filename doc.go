/*

Otbv encodes dense 3-D boolean volumes as octrees and persists them in
the OTBV binary container format.  Large homogeneous regions of a
volume collapse into single leaf markers, so coherent data (voxelized
solids, occupancy grids, masks) compresses far below one bit per
voxel.

Vocabulary:

- volume: dense 3-D grid of booleans addressed by (x, y, z); stored as
  a flat buffer with x varying slowest and z fastest
- resolution: the three axis extents (xres, yres, zres) of a volume
- cube: a volume whose three extents are equal and a power of two; the
  only shape the codec itself operates on
- padding: extending a volume to the next power-of-two cube edge,
  filling new cells with false
- encoding: the bit sequence produced by a pre-order octree traversal;
  one token bit per node (0=leaf, 1=split), one value bit after each
  leaf token
- octant order: x half outer (low then high), y half middle, z half
  inner; part of the wire contract
- pad bits: leading zero bits prepended to an encoding to round it up
  to whole bytes for storage; recorded in the header, stripped on load
- signature: the fixed 5-byte prefix identifying an OTBV container
- container: signature, metadata byte, resolution and length fields,
  then the packed encoding

*/

package otbv
