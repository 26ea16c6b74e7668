package vkfft

import (
	"encoding/binary"
	"math"
	"math/cmplx"
	"testing"

	"github.com/x448/float16"

	"github.com/gomlx/vkfft/internal/simulator"
	"github.com/gomlx/vkfft/internal/vkffi"
)

// newSim installs a fresh simulator as the library for the duration of one
// test.
func newSim(t *testing.T) *simulator.Simulator {
	t.Helper()
	sim := simulator.New()
	vkffi.Register(sim)
	t.Cleanup(func() { vkffi.Register(nil) })
	return sim
}

// encodeComplexSlice lays out vals as interleaved scalars of the given
// precision, little endian, the way device buffers are expected to be
// filled.
func encodeComplexSlice(p Precision, vals []complex128) []byte {
	out := make([]byte, uint64(len(vals))*p.ComplexSize())
	sb := int(p.ScalarSize())
	for i, v := range vals {
		putScalar(p, out[2*i*sb:], real(v))
		putScalar(p, out[(2*i+1)*sb:], imag(v))
	}
	return out
}

func decodeComplexSlice(p Precision, b []byte) []complex128 {
	sb := int(p.ScalarSize())
	n := len(b) / (2 * sb)
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(getScalar(p, b[2*i*sb:]), getScalar(p, b[(2*i+1)*sb:]))
	}
	return out
}

func encodeRealSlice(p Precision, vals []float64) []byte {
	out := make([]byte, uint64(len(vals))*p.ScalarSize())
	sb := int(p.ScalarSize())
	for i, v := range vals {
		putScalar(p, out[i*sb:], v)
	}
	return out
}

func decodeRealSlice(p Precision, b []byte) []float64 {
	sb := int(p.ScalarSize())
	out := make([]float64, len(b)/sb)
	for i := range out {
		out[i] = getScalar(p, b[i*sb:])
	}
	return out
}

func putScalar(p Precision, b []byte, v float64) {
	switch p {
	case PrecisionDouble:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	case PrecisionHalf:
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	default:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	}
}

func getScalar(p Precision, b []byte) float64 {
	switch p {
	case PrecisionDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	case PrecisionHalf:
		return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
	default:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
}

// dftRef is the textbook O(n²) DFT used as the independent reference.
func dftRef(in []complex128, inverse bool) []complex128 {
	n := len(in)
	sign := -1.0
	if inverse {
		sign = 1.0
	}
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := sign * 2 * math.Pi * float64(j*k) / float64(n)
			sum += in[j] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

// dft2Ref applies dftRef separably over a rows×cols grid stored row-minor
// (x fastest), matching the transform layout.
func dft2Ref(in []complex128, n0, n1 int, inverse bool) []complex128 {
	out := make([]complex128, len(in))
	copy(out, in)
	for y := 0; y < n1; y++ {
		copy(out[y*n0:(y+1)*n0], dftRef(out[y*n0:(y+1)*n0], inverse))
	}
	col := make([]complex128, n1)
	for x := 0; x < n0; x++ {
		for y := 0; y < n1; y++ {
			col[y] = out[x+y*n0]
		}
		for y, v := range dftRef(col, inverse) {
			out[x+y*n0] = v
		}
	}
	return out
}

// circularConvRef computes the direct circular convolution of x and k.
func circularConvRef(x, k []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		var sum complex128
		for m := 0; m < n; m++ {
			sum += x[m] * k[((i-m)%n+n)%n]
		}
		out[i] = sum
	}
	return out
}

// maxRelError returns the largest |got-want| relative to the largest |want|.
func maxRelError(got, want []complex128) float64 {
	var maxDiff, maxMag float64
	for i := range want {
		maxDiff = math.Max(maxDiff, cmplx.Abs(got[i]-want[i]))
		maxMag = math.Max(maxMag, cmplx.Abs(want[i]))
	}
	if maxMag == 0 {
		return maxDiff
	}
	return maxDiff / maxMag
}
