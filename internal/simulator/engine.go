package simulator

import (
	"encoding/binary"
	"math"

	"github.com/gomlx/exceptions"
	"github.com/x448/float16"

	"github.com/gomlx/vkfft/internal/vkffi"
)

// scalarBytes returns the byte width of one real scalar for the plan's
// precision.
func scalarBytes(cfg *vkffi.Configuration) uint64 {
	switch {
	case cfg.DoublePrecision != 0:
		return 8
	case cfg.HalfPrecision != 0:
		return 2
	default:
		return 4
	}
}

func complexBytes(cfg *vkffi.Configuration) uint64 {
	return 2 * scalarBytes(cfg)
}

// logicalElements is the full logical grid size of one batch of one channel.
func logicalElements(cfg *vkffi.Configuration) int {
	n := 1
	for axis := uint64(0); axis < cfg.FFTdim; axis++ {
		n *= int(cfg.Size[axis])
	}
	return n
}

// packedElements is the half-spectrum grid size used by R2C output and C2R
// input: the contiguous axis is stored as N0/2+1 complex values.
func packedElements(cfg *vkffi.Configuration) int {
	n := int(cfg.Size[0])/2 + 1
	for axis := uint64(1); axis < cfg.FFTdim; axis++ {
		n *= int(cfg.Size[axis])
	}
	return n
}

// transform runs an unnormalized in-place N-D FFT over work, axis by axis,
// matching the native library's convention (inverse is unnormalized too;
// normalization is a separate configured step).
func (p *plan) transform(work []complex128, dir vkffi.Direction) {
	dims := [3]int{1, 1, 1}
	for axis := uint64(0); axis < p.cfg.FFTdim; axis++ {
		dims[axis] = int(p.cfg.Size[axis])
	}
	elems := dims[0] * dims[1] * dims[2]

	stride := 1
	for axis := 0; axis < int(p.cfg.FFTdim); axis++ {
		n := dims[axis]
		fft := p.ffts[n]
		repeat := elems / (stride * n)
		line := make([]complex128, n)
		out := make([]complex128, n)
		for r := 0; r < repeat; r++ {
			for i := 0; i < stride; i++ {
				base := r*stride*n + i
				for k := 0; k < n; k++ {
					line[k] = work[base+k*stride]
				}
				if dir == vkffi.Forward {
					fft.Coefficients(out, line)
				} else {
					fft.Sequence(out, line)
				}
				for k := 0; k < n; k++ {
					work[base+k*stride] = out[k]
				}
			}
		}
		stride *= n
	}
}

// execute runs one recorded command against the simulated device memory.
// Callers hold s.mu.
func (s *Simulator) execute(p *plan, dir vkffi.Direction, params *vkffi.LaunchParams) error {
	cfg := &p.cfg

	var inMem, outMem []byte
	var inOff, outOff uint64
	if params.Buffer != 0 {
		mem := s.buffers[params.Buffer]
		inMem, outMem = mem, mem
		inOff, outOff = params.BufferOffset, params.BufferOffset
	} else {
		inMem = s.buffers[params.InputBuffer]
		outMem = s.buffers[params.OutputBuffer]
		inOff = params.InputBufferOffset
		outOff = params.OutputBufferOffset
	}
	if inMem == nil || outMem == nil {
		exceptions.Panicf("simulator: executed command references freed buffer")
	}

	batches := int(cfg.NumberBatches)
	if batches == 0 {
		batches = 1
	}
	channels := int(cfg.CoordinateFeatures)
	if channels == 0 {
		channels = 1
	}
	elems := logicalElements(cfg)
	packed := packedElements(cfg)
	total := float64(elems)

	// Per-block byte counts depend on the transform mode.
	var inBlock, outBlock uint64
	r2c := cfg.PerformR2C != 0
	conv := cfg.PerformConvolution != 0
	switch {
	case !r2c:
		inBlock = uint64(elems) * complexBytes(cfg)
		outBlock = inBlock
	case dir == vkffi.Forward && !conv:
		inBlock = uint64(elems) * scalarBytes(cfg)
		outBlock = uint64(packed) * complexBytes(cfg)
	case dir == vkffi.Forward && conv:
		// Convolution pipelines return to the spatial domain.
		inBlock = uint64(elems) * scalarBytes(cfg)
		outBlock = inBlock
	default: // C2R
		inBlock = uint64(packed) * complexBytes(cfg)
		outBlock = uint64(elems) * scalarBytes(cfg)
	}

	for b := 0; b < batches; b++ {
		for ch := 0; ch < channels; ch++ {
			block := b*channels + ch
			in := inMem[inOff+uint64(block)*inBlock : inOff+uint64(block+1)*inBlock]
			out := outMem[outOff+uint64(block)*outBlock : outOff+uint64(block+1)*outBlock]

			var work []complex128
			if !r2c {
				work = decodeComplex(in, cfg, elems)
			} else if dir == vkffi.Forward {
				reals := decodeReals(in, cfg, elems)
				work = make([]complex128, elems)
				for i, v := range reals {
					work[i] = complex(v, 0)
				}
			} else {
				work = unpackHermitian(decodeComplex(in, cfg, packed), cfg)
			}

			switch {
			case conv && dir == vkffi.Forward:
				p.transform(work, vkffi.Forward)
				spectrum := p.kernelFreq[ch%len(p.kernelFreq)]
				for i := range work {
					work[i] *= spectrum[i]
				}
				p.transform(work, vkffi.Inverse)
				// The frequency-domain product of two unnormalized forward
				// transforms picks up a factor of N on the way back.
				for i := range work {
					work[i] /= complex(total, 0)
				}
			case dir == vkffi.Forward:
				p.transform(work, vkffi.Forward)
			default:
				p.transform(work, vkffi.Inverse)
				if cfg.Normalize != 0 {
					for i := range work {
						work[i] /= complex(total, 0)
					}
				}
			}

			switch {
			case !r2c:
				encodeComplex(out, cfg, work)
			case dir == vkffi.Forward && !conv:
				encodeComplex(out, cfg, packHermitian(work, cfg))
			default:
				reals := make([]float64, elems)
				for i, v := range work {
					reals[i] = real(v)
				}
				encodeReals(out, cfg, reals)
			}
		}
	}
	return nil
}

// packHermitian keeps the non-redundant half spectrum of a real transform:
// the contiguous axis truncated to N0/2+1 values.
func packHermitian(full []complex128, cfg *vkffi.Configuration) []complex128 {
	n0 := int(cfg.Size[0])
	p0 := n0/2 + 1
	rest := len(full) / n0
	out := make([]complex128, p0*rest)
	for r := 0; r < rest; r++ {
		for x := 0; x < p0; x++ {
			out[r*p0+x] = full[r*n0+x]
		}
	}
	return out
}

// unpackHermitian reconstructs the full spectrum from the packed half,
// using the conjugate symmetry of real-input transforms.
func unpackHermitian(packed []complex128, cfg *vkffi.Configuration) []complex128 {
	dims := [3]int{1, 1, 1}
	for axis := uint64(0); axis < cfg.FFTdim; axis++ {
		dims[axis] = int(cfg.Size[axis])
	}
	n0, n1, n2 := dims[0], dims[1], dims[2]
	p0 := n0/2 + 1
	full := make([]complex128, n0*n1*n2)
	at := func(x, y, z int) complex128 { return packed[x+p0*(y+n1*z)] }
	for z := 0; z < n2; z++ {
		for y := 0; y < n1; y++ {
			for x := 0; x < n0; x++ {
				var v complex128
				if x < p0 {
					v = at(x, y, z)
				} else {
					my := (n1 - y) % n1
					mz := (n2 - z) % n2
					c := at(n0-x, my, mz)
					v = complex(real(c), -imag(c))
				}
				full[x+n0*(y+n1*z)] = v
			}
		}
	}
	return full
}

func decodeComplex(b []byte, cfg *vkffi.Configuration, count int) []complex128 {
	sb := int(scalarBytes(cfg))
	out := make([]complex128, count)
	for i := 0; i < count; i++ {
		re := decodeScalar(b[2*i*sb:], cfg)
		im := decodeScalar(b[(2*i+1)*sb:], cfg)
		out[i] = complex(re, im)
	}
	return out
}

func encodeComplex(b []byte, cfg *vkffi.Configuration, vals []complex128) {
	sb := int(scalarBytes(cfg))
	for i, v := range vals {
		encodeScalar(b[2*i*sb:], cfg, real(v))
		encodeScalar(b[(2*i+1)*sb:], cfg, imag(v))
	}
}

func decodeReals(b []byte, cfg *vkffi.Configuration, count int) []float64 {
	sb := int(scalarBytes(cfg))
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		out[i] = decodeScalar(b[i*sb:], cfg)
	}
	return out
}

func encodeReals(b []byte, cfg *vkffi.Configuration, vals []float64) {
	sb := int(scalarBytes(cfg))
	for i, v := range vals {
		encodeScalar(b[i*sb:], cfg, v)
	}
}

func decodeScalar(b []byte, cfg *vkffi.Configuration) float64 {
	switch {
	case cfg.DoublePrecision != 0:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	case cfg.HalfPrecision != 0:
		return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
	default:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
}

func encodeScalar(b []byte, cfg *vkffi.Configuration, v float64) {
	switch {
	case cfg.DoublePrecision != 0:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	case cfg.HalfPrecision != 0:
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	default:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	}
}
