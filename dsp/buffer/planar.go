package buffer

import "fmt"

// Planar is a non-interleaved multi-channel buffer. All channels share one
// backing array and always have the same length.
type Planar struct {
	data     []float64
	channels [][]float64
}

// NewPlanar returns a zero-filled buffer with the given channel count and
// frame length. Negative sizes are treated as zero.
func NewPlanar(channels, frames int) *Planar {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}

	p := &Planar{
		data:     make([]float64, channels*frames),
		channels: make([][]float64, channels),
	}
	p.reslice(frames)

	return p
}

// Channels returns the per-channel sample slices. The returned slice header
// is owned by p and stays valid until the next Resize.
func (p *Planar) Channels() [][]float64 {
	return p.channels
}

// Channel returns the samples of channel ch.
func (p *Planar) Channel(ch int) []float64 {
	return p.channels[ch]
}

// NumChannels returns the channel count.
func (p *Planar) NumChannels() int {
	return len(p.channels)
}

// Frames returns the per-channel length.
func (p *Planar) Frames() int {
	if len(p.channels) == 0 {
		return 0
	}
	return len(p.channels[0])
}

// Resize sets the frame length, reusing the backing array when it is large
// enough. Contents are not preserved across a resize.
func (p *Planar) Resize(frames int) {
	if frames < 0 {
		frames = 0
	}
	n := frames * len(p.channels)
	if n > cap(p.data) {
		p.data = make([]float64, n)
	}
	p.data = p.data[:n]
	p.reslice(frames)
}

// Zero sets every sample of every channel to 0.
func (p *Planar) Zero() {
	for i := range p.data {
		p.data[i] = 0
	}
}

// Window writes into dst the sub-slices [start, end) of every channel and
// returns dst[:NumChannels()]. dst must have room for NumChannels entries;
// no allocation happens, which makes it usable inside render callbacks.
func (p *Planar) Window(dst [][]float64, start, end int) [][]float64 {
	dst = dst[:len(p.channels)]
	for ch, samples := range p.channels {
		dst[ch] = samples[start:end]
	}
	return dst
}

func (p *Planar) reslice(frames int) {
	for ch := range p.channels {
		p.channels[ch] = p.data[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
}

// Deinterleave splits frame-interleaved src into the channels of p.
// len(src) must equal NumChannels()*Frames().
func (p *Planar) Deinterleave(src []float64) error {
	nch := len(p.channels)
	if nch == 0 {
		if len(src) != 0 {
			return fmt.Errorf("buffer: cannot deinterleave %d samples into zero channels", len(src))
		}
		return nil
	}
	if len(src) != nch*p.Frames() {
		return fmt.Errorf("buffer: interleaved length %d does not match %d channels x %d frames",
			len(src), nch, p.Frames())
	}

	for i, v := range src {
		p.channels[i%nch][i/nch] = v
	}

	return nil
}

// Interleave writes the channels of p frame by frame into dst.
// len(dst) must equal NumChannels()*Frames().
func (p *Planar) Interleave(dst []float64) error {
	nch := len(p.channels)
	if len(dst) != nch*p.Frames() {
		return fmt.Errorf("buffer: interleaved length %d does not match %d channels x %d frames",
			len(dst), nch, p.Frames())
	}

	for i := range dst {
		dst[i] = p.channels[i%nch][i/nch]
	}

	return nil
}
