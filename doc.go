/*
Package bitvideo implements a container format for short monochrome bitmap
animations: a magic-tagged, versioned header followed by one chunk per
frame.

Frames are 1-bit-per-pixel packed grids (see the bitgrid package). The
encoder picks per frame between storing the packed bytes verbatim and a
run-length encoding, whichever is smaller. The decoder validates the header
once, owns a single reusable framebuffer for its whole lifetime, and can be
reset to replay the stream without allocating, which is what lets streams
baked into flash loop forever on very small machines.

All multi-byte fields are little-endian.
*/
package bitvideo
