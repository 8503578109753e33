// Package buffer provides planar multi-channel float64 buffers and the
// interleave/deinterleave helpers needed at I/O boundaries. DSP code works
// on [][]float64 (one slice per channel); Planar owns such a view backed by
// a single allocation so that it can be resized and reused between blocks.
package buffer
