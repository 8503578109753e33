// Package morph implements a real-time morphing filter effect: a second-order
// filter whose character is cross-faded continuously from low-pass through
// peak to high-pass, with smoothed cutoff/resonance changes and a dry/wet mix.
//
// The package is split along the two threads of a plugin host:
//
//   - [Store] holds the four parameters (morph, frequency, resonance, mix) in
//     lock-free atomic slots. It is written by the control side (automation,
//     UI, preset loading) and read by the render side without blocking.
//   - [Engine] is owned by the render side. Once per Process call it takes a
//     single snapshot of the store, maps it to filter drive and blend weights
//     and runs every channel's [Channel] over the block. Process never
//     allocates, never blocks and never fails.
//
// The mapping between host-normalized values (0..1) and engineering units
// lives in pure functions ([NormalizedToFrequency], [MorphToBlend], ...)
// that are safe to call from either side.
//
// The filter itself is an injected [Primitive]; the default is
// secondorder.Section.
package morph
