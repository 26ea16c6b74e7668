package vkfft

import (
	"github.com/gomlx/vkfft/internal/vkffi"
	"github.com/gomlx/vkfft/vk"
)

func boolFlag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// toNative translates the configuration and the device context into the
// native library's configuration structure. The returned value owns
// independent copies of every field: nothing in it aliases the Config or
// any builder, so later wrapper-side mutation can never reach a compiled
// plan.
func (c Config) toNative(ctx vk.DeviceContext, kernel BufferBinding) vkffi.Configuration {
	native := vkffi.Configuration{
		FFTdim:        uint64(c.rank),
		Size:          c.lengths,
		NumberBatches: uint64(c.batches),

		DoublePrecision: boolFlag(c.precision == PrecisionDouble),
		HalfPrecision:   boolFlag(c.precision == PrecisionHalf),

		PerformR2C:         boolFlag(c.kind.Real()),
		Normalize:          boolFlag(c.normalize),
		CoordinateFeatures: uint64(c.coordinateFeatures),
		UseLUT:             boolFlag(c.useLUT),

		DisableReorderFourStep: boolFlag(c.disableReorderFourStep),

		PhysicalDevice:   ctx.PhysicalDevice,
		Device:           ctx.Device,
		Queue:            ctx.Queue,
		QueueFamilyIndex: ctx.QueueFamilyIndex,
		CommandPool:      ctx.CommandPool,
		Fence:            ctx.Fence,
	}
	for axis := 0; axis < 3; axis++ {
		if !c.zeroPad[axis] {
			continue
		}
		native.PerformZeropadding[axis] = 1
		native.FFTZeropadLeft[axis] = uint64(c.zeroPadLeft[axis])
		native.FFTZeropadRight[axis] = uint64(c.zeroPadRight[axis])
	}
	if c.convolution {
		native.PerformConvolution = 1
		native.SymmetricKernel = boolFlag(c.symmetricKernel)
		native.NumberKernels = 1
		native.Kernel = kernel.Buffer
		native.KernelSize = kernel.Size
		native.KernelOffset = kernel.Offset
	}
	return native
}
