//go:build linux || darwin

package vkffi

import (
	"os"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// VKFFTLibraryEnv is the environment variable naming the VkFFT shim shared
// library to load. If unset, the standard library search path is used with
// the default shim name.
//
// VkFFT itself is header-only; the shim is the thin C library built alongside
// this module that compiles VkFFT and exports the three entry points below
// with a flat, FFI-stable argument layout.
const VKFFTLibraryEnv = "VKFFT_LIBRARY"

const defaultShimName = "libvkfft_shim.so"

// shimConfiguration is the C-layout mirror of Configuration passed to the
// shim. Field order and widths are part of the shim ABI; keep in sync with
// vkfft_shim.h.
type shimConfiguration struct {
	FFTdim        uint64
	Size          [3]uint64
	NumberBatches uint64

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

	PhysicalDevice   uintptr
	Device           uintptr
	Queue            uintptr
	QueueFamilyIndex uint64
	CommandPool      uintptr
	Fence            uintptr

	Kernel       uintptr
	KernelSize   uint64
	KernelOffset uint64
}

// shimLaunchParams is the C-layout mirror of LaunchParams.
type shimLaunchParams struct {
	CommandBuffer uintptr

	Buffer       uintptr
	BufferSize   uint64
	BufferOffset uint64

	InputBuffer       uintptr
	InputBufferSize   uint64
	InputBufferOffset uint64

	OutputBuffer       uintptr
	OutputBufferSize   uint64
	OutputBufferOffset uint64

	TempBuffer       uintptr
	TempBufferSize   uint64
	TempBufferOffset uint64
}

// nativeLibrary implements Library over the dynamically loaded shim.
type nativeLibrary struct {
	path string

	initialize func(cfg *shimConfiguration, outApp *uintptr) int32
	append_    func(app uintptr, dir int32, params *shimLaunchParams) int32
	delete_    func(app uintptr)
}

var _ Library = (*nativeLibrary)(nil)

// load opens the shim and binds its entry points.
func load() (Library, error) {
	path := os.Getenv(VKFFTLibraryEnv)
	if path == "" {
		path = defaultShimName
	}
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrapf(err, "loading VkFFT shim %q (set %s to override)", path, VKFFTLibraryEnv)
	}
	l := &nativeLibrary{path: path}
	purego.RegisterLibFunc(&l.initialize, handle, "vkfft_shim_initialize")
	purego.RegisterLibFunc(&l.append_, handle, "vkfft_shim_append")
	purego.RegisterLibFunc(&l.delete_, handle, "vkfft_shim_delete")
	klog.V(1).Infof("vkffi: loaded native VkFFT shim from %q", path)
	return l, nil
}

func (l *nativeLibrary) Name() string { return "vkfft (" + l.path + ")" }

func (l *nativeLibrary) Available() bool { return l.initialize != nil }

func (l *nativeLibrary) Initialize(cfg *Configuration) (Application, Result) {
	sc := shimConfiguration{
		FFTdim:                 cfg.FFTdim,
		Size:                   cfg.Size,
		NumberBatches:          cfg.NumberBatches,
		DoublePrecision:        cfg.DoublePrecision,
		HalfPrecision:          cfg.HalfPrecision,
		PerformR2C:             cfg.PerformR2C,
		Normalize:              cfg.Normalize,
		PerformConvolution:     cfg.PerformConvolution,
		KernelConvolution:      cfg.KernelConvolution,
		SymmetricKernel:        cfg.SymmetricKernel,
		CoordinateFeatures:     cfg.CoordinateFeatures,
		NumberKernels:          cfg.NumberKernels,
		UseLUT:                 cfg.UseLUT,
		DisableReorderFourStep: cfg.DisableReorderFourStep,
		PerformZeropadding:     cfg.PerformZeropadding,
		FFTZeropadLeft:         cfg.FFTZeropadLeft,
		FFTZeropadRight:        cfg.FFTZeropadRight,
		PhysicalDevice:         uintptr(cfg.PhysicalDevice),
		Device:                 uintptr(cfg.Device),
		Queue:                  uintptr(cfg.Queue),
		QueueFamilyIndex:       uint64(cfg.QueueFamilyIndex),
		CommandPool:            uintptr(cfg.CommandPool),
		Fence:                  uintptr(cfg.Fence),
		Kernel:                 uintptr(cfg.Kernel),
		KernelSize:             cfg.KernelSize,
		KernelOffset:           cfg.KernelOffset,
	}
	var app uintptr
	res := Result(l.initialize(&sc, &app))
	if res != Success {
		return 0, res
	}
	return Application(app), Success
}

func (l *nativeLibrary) Append(app Application, dir Direction, params *LaunchParams) Result {
	sp := shimLaunchParams{
		CommandBuffer:      uintptr(params.CommandBuffer),
		Buffer:             uintptr(params.Buffer),
		BufferSize:         params.BufferSize,
		BufferOffset:       params.BufferOffset,
		InputBuffer:        uintptr(params.InputBuffer),
		InputBufferSize:    params.InputBufferSize,
		InputBufferOffset:  params.InputBufferOffset,
		OutputBuffer:       uintptr(params.OutputBuffer),
		OutputBufferSize:   params.OutputBufferSize,
		OutputBufferOffset: params.OutputBufferOffset,
		TempBuffer:         uintptr(params.TempBuffer),
		TempBufferSize:     params.TempBufferSize,
		TempBufferOffset:   params.TempBufferOffset,
	}
	return Result(l.append_(uintptr(app), int32(dir), &sp))
}

func (l *nativeLibrary) Delete(app Application) {
	l.delete_(uintptr(app))
}
