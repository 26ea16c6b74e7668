package vkfft

import (
	"github.com/pkg/errors"
)

// nativeRadixBase are the prime factors the native library has transform
// kernels for. Lengths must factor completely into this base.
var nativeRadixBase = [...]uint64{2, 3, 5, 7, 11, 13}

// lengthSupported reports whether n factors into the native radix base.
func lengthSupported(n uint64) bool {
	if n == 0 {
		return false
	}
	for _, r := range nativeRadixBase {
		for n%r == 0 {
			n /= r
		}
	}
	return n == 1
}

// Config is a validated, immutable description of one transform. Build one
// with ConfigBuilder; once built it never changes, and every App created
// from it takes its own copy, so mutating or discarding builders can never
// affect a live plan.
type Config struct {
	rank      int
	lengths   [3]uint64
	precision Precision
	kind      TransformKind

	// Counts are kept signed until Build validates them, so a negative
	// argument is rejected instead of wrapping into a huge unsigned value.
	batches            int
	coordinateFeatures int

	normalize              bool
	useLUT                 bool
	disableReorderFourStep bool

	convolution     bool
	kernelChannels  int
	symmetricKernel bool

	zeroPad      [3]bool
	zeroPadLeft  [3]int
	zeroPadRight [3]int
}

// ConfigBuilder assembles a Config incrementally. It is pure data assembly:
// no GPU or native resource is touched before App creation, and Build fails
// fast on the first violated constraint.
//
// The zero value is not useful; start with NewConfigBuilder.
type ConfigBuilder struct {
	cfg Config
}

// NewConfigBuilder returns a builder with the defaults of the native
// library: single precision, complex-to-complex forward, one batch, one
// coordinate feature.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{
		precision:          PrecisionSingle,
		kind:               KindComplexForward,
		batches:            1,
		coordinateFeatures: 1,
		kernelChannels:     1,
	}}
}

// Dim sets the transform dimensionality (1-3) and the per-axis lengths,
// contiguous axis first.
func (b *ConfigBuilder) Dim(lengths ...int) *ConfigBuilder {
	b.cfg.rank = len(lengths)
	b.cfg.lengths = [3]uint64{}
	for i, n := range lengths {
		if i >= 3 {
			break
		}
		if n > 0 {
			b.cfg.lengths[i] = uint64(n)
		}
	}
	return b
}

// Precision sets the computation precision.
func (b *ConfigBuilder) Precision(p Precision) *ConfigBuilder {
	b.cfg.precision = p
	return b
}

// Kind sets the transform kind.
func (b *ConfigBuilder) Kind(k TransformKind) *ConfigBuilder {
	b.cfg.kind = k
	return b
}

// Batches sets how many independent transforms of the same shape one
// execution processes. Buffers hold the batches back to back.
func (b *ConfigBuilder) Batches(n int) *ConfigBuilder {
	b.cfg.batches = n
	return b
}

// Normalize scales inverse transforms by 1/N, matching the usual DFT pair.
// Without it the native library leaves transforms unnormalized.
func (b *ConfigBuilder) Normalize() *ConfigBuilder {
	b.cfg.normalize = true
	return b
}

// UseLUT switches the native library from computed sincos to precomputed
// lookup tables, which the plan then owns.
func (b *ConfigBuilder) UseLUT() *ConfigBuilder {
	b.cfg.useLUT = true
	return b
}

// DisableReorderFourStep disables unshuffling of the four-step algorithm.
// Plans built with it require a RoleTemp binding at record time.
func (b *ConfigBuilder) DisableReorderFourStep() *ConfigBuilder {
	b.cfg.disableReorderFourStep = true
	return b
}

// CoordinateFeatures sets the size of the per-element feature vector
// (the native coordinateFeatures). Buffers hold the feature planes back to
// back within each batch.
func (b *ConfigBuilder) CoordinateFeatures(n int) *ConfigBuilder {
	b.cfg.coordinateFeatures = n
	return b
}

// Convolution configures the plan to convolve its input with a kernel of
// the given channel count. The kernel buffer is bound at App creation
// (NewAppWithKernel); its frequency-domain form is precomputed once and
// owned by the plan. Kernel data must match the transform shape, one full
// complex grid per channel.
//
// Kernel channels ride on the native coordinateFeatures dimension: input
// and output buffers hold one feature plane per channel, convolved with the
// matching kernel channel. Convolution therefore sets CoordinateFeatures to
// channels as well; setting a conflicting value fails Build.
func (b *ConfigBuilder) Convolution(channels int) *ConfigBuilder {
	b.cfg.convolution = true
	b.cfg.kernelChannels = channels
	if channels > 0 {
		b.cfg.coordinateFeatures = channels
	}
	return b
}

// SymmetricKernel marks the convolution kernel as symmetric, which lets the
// native library halve the kernel work.
func (b *ConfigBuilder) SymmetricKernel() *ConfigBuilder {
	b.cfg.symmetricKernel = true
	return b
}

// ZeroPadding declares that input sequences on the given axis are zero
// outside [left, right), letting the native library skip reads and work on
// the zero block.
func (b *ConfigBuilder) ZeroPadding(axis, left, right int) *ConfigBuilder {
	if axis >= 0 && axis < 3 {
		b.cfg.zeroPad[axis] = true
		b.cfg.zeroPadLeft[axis] = left
		b.cfg.zeroPadRight[axis] = right
	}
	return b
}

// Build validates the assembled description and returns an immutable
// snapshot. The returned error wraps ErrInvalidConfiguration (or
// ErrUnsupportedPrecision) and names the first violated constraint.
func (b *ConfigBuilder) Build() (*Config, error) {
	cfg := b.cfg // snapshot: the builder can be reused or mutated freely afterwards

	if cfg.rank < 1 || cfg.rank > 3 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "dimensionality must be 1 to 3, got %d", cfg.rank)
	}
	for axis := 0; axis < cfg.rank; axis++ {
		n := cfg.lengths[axis]
		if n == 0 {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "axis %d has non-positive length", axis)
		}
		if !lengthSupported(n) {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"axis %d length %d does not factor into the supported radix base %v", axis, n, nativeRadixBase)
		}
	}
	if !cfg.precision.IsAPrecision() {
		return nil, errors.Wrapf(ErrUnsupportedPrecision, "precision %s", cfg.precision)
	}
	if !cfg.kind.IsATransformKind() {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "unknown transform kind %s", cfg.kind)
	}
	if cfg.batches < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "batch count must be at least 1, got %d", cfg.batches)
	}
	if cfg.coordinateFeatures < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "coordinate features must be at least 1, got %d", cfg.coordinateFeatures)
	}
	if cfg.convolution {
		if cfg.kernelChannels < 1 {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "convolution kernel channel count must be at least 1, got %d", cfg.kernelChannels)
		}
		if cfg.kind.Inverse() {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"convolution requires a forward transform kind, got %s", cfg.kind)
		}
		if cfg.coordinateFeatures != cfg.kernelChannels {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"convolution with %d kernel channels conflicts with %d coordinate features; the two dimensions coincide",
				cfg.kernelChannels, cfg.coordinateFeatures)
		}
	}
	if !cfg.convolution && cfg.symmetricKernel {
		return nil, errors.Wrap(ErrInvalidConfiguration, "symmetric kernel set without convolution")
	}
	for axis := 0; axis < 3; axis++ {
		if !cfg.zeroPad[axis] {
			continue
		}
		if axis >= cfg.rank {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "zero padding on axis %d exceeds dimensionality %d", axis, cfg.rank)
		}
		left, right, n := cfg.zeroPadLeft[axis], cfg.zeroPadRight[axis], cfg.lengths[axis]
		if left < 0 || left > right || uint64(right) > n {
			return nil, errors.Wrapf(ErrInvalidConfiguration,
				"zero padding boundaries [%d, %d) invalid for axis %d of length %d", left, right, axis, n)
		}
	}
	return &cfg, nil
}

// Config methods use value receivers: a Config is a small immutable
// snapshot, so copies handed out by App.Config() are fully usable.

// Rank returns the transform dimensionality.
func (c Config) Rank() int { return c.rank }

// Lengths returns the per-axis lengths, contiguous axis first.
func (c Config) Lengths() []int {
	out := make([]int, c.rank)
	for i := range out {
		out[i] = int(c.lengths[i])
	}
	return out
}

// Precision returns the computation precision.
func (c Config) Precision() Precision { return c.precision }

// Kind returns the transform kind.
func (c Config) Kind() TransformKind { return c.kind }

// Batches returns the configured batch count.
func (c Config) Batches() int { return c.batches }

// Convolution reports whether a convolution kernel is configured.
func (c Config) Convolution() bool { return c.convolution }

// KernelChannels returns the configured kernel channel count, or 0 when no
// convolution is configured.
func (c Config) KernelChannels() int {
	if !c.convolution {
		return 0
	}
	return c.kernelChannels
}

// elements is the full logical grid size of one batch of one feature plane.
func (c Config) elements() uint64 {
	n := uint64(1)
	for axis := 0; axis < c.rank; axis++ {
		n *= c.lengths[axis]
	}
	return n
}

// packedElements is the half-spectrum grid size of real transforms.
func (c Config) packedElements() uint64 {
	n := c.lengths[0]/2 + 1
	for axis := 1; axis < c.rank; axis++ {
		n *= c.lengths[axis]
	}
	return n
}

// blocks is the number of independent grids per execution.
func (c Config) blocks() uint64 {
	return uint64(c.batches) * uint64(c.coordinateFeatures)
}

// BufferSize returns the minimum byte size a BufferBinding must cover for
// the given role under this configuration. It accounts for precision, batch
// count, coordinate features, real-transform packing and convolution.
// RoleTemp sizing applies only to plans built with DisableReorderFourStep;
// RoleKernel sizing to convolution plans.
func (c Config) BufferSize(role Role) uint64 {
	scalar := c.precision.ScalarSize()
	cplx := c.precision.ComplexSize()
	switch role {
	case RoleInput:
		switch c.kind {
		case KindRealForward:
			return c.blocks() * c.elements() * scalar
		case KindRealInverse:
			return c.blocks() * c.packedElements() * cplx
		default:
			return c.blocks() * c.elements() * cplx
		}
	case RoleOutput:
		switch {
		case c.kind == KindRealForward && c.convolution:
			// Convolution pipelines return to the spatial domain.
			return c.blocks() * c.elements() * scalar
		case c.kind == KindRealForward:
			return c.blocks() * c.packedElements() * cplx
		case c.kind == KindRealInverse:
			return c.blocks() * c.elements() * scalar
		default:
			return c.blocks() * c.elements() * cplx
		}
	case RoleKernel:
		if !c.convolution {
			return 0
		}
		return uint64(c.kernelChannels) * c.elements() * cplx
	case RoleTemp:
		if !c.disableReorderFourStep {
			return 0
		}
		return c.blocks() * c.elements() * cplx
	}
	return 0
}
