// Package vkffi is the boundary to the native VkFFT library.
//
// It mirrors the small slice of the VkFFT C API this module drives
// (initializeVkFFT / VkFFTAppend / deleteVkFFT) behind the Library interface,
// so the public wrapper never touches a raw pointer and tests can substitute
// an in-process implementation for the native one.
package vkffi

import "github.com/gomlx/vkfft/vk"

// Application is an opaque handle to a native VkFFTApplication. Zero is never
// a valid plan.
type Application uintptr

// Direction selects the transform direction for Append, using the native
// convention: -1 is forward, 1 is inverse.
type Direction int

const (
	Forward Direction = -1
	Inverse Direction = 1
)

// Configuration mirrors the subset of VkFFTConfiguration this module fills
// in. All dimensioned arrays are fixed at the native maximum of three FFT
// axes. Field names follow the native struct so the translation in the
// wrapper stays mechanical.
type Configuration struct {
	FFTdim        uint64
	Size          [3]uint64
	NumberBatches uint64

	// Precision flags; at most one may be set.
	DoublePrecision uint64
	HalfPrecision   uint64

	PerformR2C         uint64
	Normalize          uint64
	PerformConvolution uint64
	KernelConvolution  uint64
	SymmetricKernel    uint64
	CoordinateFeatures uint64
	NumberKernels      uint64
	UseLUT             uint64

	DisableReorderFourStep uint64

	PerformZeropadding [3]uint64
	FFTZeropadLeft     [3]uint64
	FFTZeropadRight    [3]uint64

	// External Vulkan resources supplied by the caller's device context.
	PhysicalDevice   vk.PhysicalDevice
	Device           vk.Device
	Queue            vk.Queue
	QueueFamilyIndex uint32
	CommandPool      vk.CommandPool
	Fence            vk.Fence

	// Kernel is bound at plan creation for convolution plans; its
	// frequency-domain representation is precomputed once by the native
	// library and owned by the plan thereafter.
	Kernel       vk.Buffer
	KernelSize   uint64
	KernelOffset uint64
}

// LaunchParams mirrors VkFFTLaunchParams: the command buffer to append into
// plus the buffers for one recorded execution. A zero Buffer handle means the
// role is unbound.
type LaunchParams struct {
	CommandBuffer vk.CommandBuffer

	Buffer       vk.Buffer // in-place data buffer
	BufferSize   uint64
	BufferOffset uint64

	InputBuffer       vk.Buffer // out-of-place input
	InputBufferSize   uint64
	InputBufferOffset uint64

	OutputBuffer       vk.Buffer // out-of-place output
	OutputBufferSize   uint64
	OutputBufferOffset uint64

	TempBuffer       vk.Buffer
	TempBufferSize   uint64
	TempBufferOffset uint64
}

// Library is the native VkFFT API surface. Implementations: the purego
// loader in this package, and internal/simulator for tests and machines
// without a GPU.
//
// Initialize compiles a plan; a non-Success result returns a zero
// Application and must leave no native state behind. Append records one
// execution of the plan into params.CommandBuffer; it performs no
// submission. Delete releases the plan and everything it owns internally and
// must be called exactly once per successful Initialize — the native layer
// does not tolerate double frees, which is why the wrapper above tracks plan
// liveness itself.
type Library interface {
	Name() string
	Available() bool
	Initialize(cfg *Configuration) (Application, Result)
	Append(app Application, dir Direction, params *LaunchParams) Result
	Delete(app Application)
}
