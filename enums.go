package vkfft

// Precision selects the numeric precision the native library computes in.
// Buffers must be laid out accordingly: interleaved real/imaginary scalars
// of the corresponding width.
type Precision int

//go:generate enumer -type=Precision -trimprefix=Precision

const (
	// PrecisionSingle computes in 32-bit floats.
	PrecisionSingle Precision = iota
	// PrecisionDouble computes in 64-bit floats.
	PrecisionDouble
	// PrecisionHalf computes in 16-bit floats.
	PrecisionHalf
)

// ScalarSize returns the byte width of one real scalar.
func (p Precision) ScalarSize() uint64 {
	switch p {
	case PrecisionDouble:
		return 8
	case PrecisionHalf:
		return 2
	default:
		return 4
	}
}

// ComplexSize returns the byte width of one interleaved complex element.
func (p Precision) ComplexSize() uint64 { return 2 * p.ScalarSize() }

// TransformKind selects the transform a plan performs. The direction is part
// of the kind: a plan compiled for a forward transform records forward
// executions only.
type TransformKind int

//go:generate enumer -type=TransformKind -trimprefix=Kind

const (
	// KindComplexForward is a complex-to-complex forward transform.
	KindComplexForward TransformKind = iota
	// KindComplexInverse is a complex-to-complex inverse transform.
	KindComplexInverse
	// KindRealForward is a real-to-complex forward transform; the output is
	// the non-redundant half spectrum (N0/2+1 complex values on the
	// contiguous axis).
	KindRealForward
	// KindRealInverse is a complex-to-real inverse transform; the input is
	// the packed half spectrum.
	KindRealInverse
)

// Inverse reports whether the kind runs in the inverse direction.
func (k TransformKind) Inverse() bool {
	return k == KindComplexInverse || k == KindRealInverse
}

// Real reports whether the kind is a real-to-complex or complex-to-real
// transform.
func (k TransformKind) Real() bool {
	return k == KindRealForward || k == KindRealInverse
}

// Role names the logical slot a BufferBinding fills in one execution.
type Role int

//go:generate enumer -type=Role -trimprefix=Role

const (
	// RoleInput is the transform input region.
	RoleInput Role = iota
	// RoleOutput is the transform output region. Binding the same buffer
	// and offset as RoleInput selects the in-place path.
	RoleOutput
	// RoleKernel is the convolution kernel region; it is bound once at App
	// creation, never per launch.
	RoleKernel
	// RoleTemp is the scratch region required by plans built with
	// DisableReorderFourStep.
	RoleTemp
)
