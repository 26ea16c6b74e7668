// Package simulator is a pure-Go implementation of the native VkFFT surface
// (vkffi.Library) that executes plans on host memory.
//
// It exists for the test suite and for machines without a Vulkan stack: it
// fabricates device-context handles, owns "device" buffers as host byte
// slices, records appended executions into simulated command buffers and runs
// them on Submit with gonum's FFT. It deliberately mirrors the native
// library's contract — unnormalized transforms, frequency-domain kernel
// precompute at plan initialization, command recording decoupled from
// execution — so the wrapper's behavior against it matches the real thing.
//
// Zero-padding configurations are not implemented and fail initialization
// with VKFFT_ERROR_UNSUPPORTED_CONFIGURATION.
package simulator

import (
	"sync"

	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/gomlx/vkfft/internal/vkffi"
	"github.com/gomlx/vkfft/vk"
)

// Simulator implements vkffi.Library on host memory.
//
// All methods are safe for concurrent use; a single lock serializes state
// mutation, which is plenty for a test double.
type Simulator struct {
	mu   sync.Mutex
	next uintptr

	ctx     vk.DeviceContext
	apps    map[vkffi.Application]*plan
	buffers map[vk.Buffer][]byte
	cmdBufs map[vk.CommandBuffer]*commandBuffer

	failNextInit vkffi.Result

	initCalls   int
	appendCalls int
}

var _ vkffi.Library = (*Simulator)(nil)

// plan is the simulated native plan state: the configuration snapshot, one
// FFT table per axis length (the twiddle-factor analog) and, for convolution
// plans, the kernel's frequency-domain representation precomputed at
// initialization.
type plan struct {
	cfg        vkffi.Configuration
	ffts       map[int]*fourier.CmplxFFT
	kernelFreq [][]complex128 // one spectrum per kernel channel
}

type command struct {
	app    vkffi.Application
	dir    vkffi.Direction
	params vkffi.LaunchParams
}

type commandBuffer struct {
	commands []command
}

// New creates a Simulator with a fabricated device context.
func New() *Simulator {
	s := &Simulator{
		apps:    make(map[vkffi.Application]*plan),
		buffers: make(map[vk.Buffer][]byte),
		cmdBufs: make(map[vk.CommandBuffer]*commandBuffer),
	}
	s.ctx = vk.DeviceContext{
		PhysicalDevice: vk.PhysicalDevice(s.handle()),
		Device:         vk.Device(s.handle()),
		Queue:          vk.Queue(s.handle()),
		CommandPool:    vk.CommandPool(s.handle()),
		Fence:          vk.Fence(s.handle()),
	}
	return s
}

// handle hands out process-unique fake handles. Callers hold s.mu or run
// before the Simulator escapes its constructor.
func (s *Simulator) handle() uintptr {
	s.next++
	return s.next
}

// Context returns the fabricated device context to create plans against.
func (s *Simulator) Context() vk.DeviceContext { return s.ctx }

// NewBuffer allocates a simulated device buffer of the given byte size.
func (s *Simulator) NewBuffer(size int) vk.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := vk.Buffer(s.handle())
	s.buffers[b] = make([]byte, size)
	return b
}

// FreeBuffer releases a simulated buffer.
func (s *Simulator) FreeBuffer(b vk.Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buffers[b]; !ok {
		exceptions.Panicf("simulator: FreeBuffer of unknown buffer %#x", uintptr(b))
	}
	delete(s.buffers, b)
}

// WriteBuffer copies host data into a simulated buffer at the given offset.
func (s *Simulator) WriteBuffer(b vk.Buffer, offset int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem, ok := s.buffers[b]
	if !ok || offset+len(data) > len(mem) {
		exceptions.Panicf("simulator: WriteBuffer out of range (buffer %#x, offset %d, %d bytes)",
			uintptr(b), offset, len(data))
	}
	copy(mem[offset:], data)
}

// ReadBuffer copies n bytes out of a simulated buffer at the given offset.
func (s *Simulator) ReadBuffer(b vk.Buffer, offset, n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem, ok := s.buffers[b]
	if !ok || offset+n > len(mem) {
		exceptions.Panicf("simulator: ReadBuffer out of range (buffer %#x, offset %d, %d bytes)",
			uintptr(b), offset, n)
	}
	out := make([]byte, n)
	copy(out, mem[offset:])
	return out
}

// NewCommandBuffer creates an empty simulated command buffer in the
// recording state.
func (s *Simulator) NewCommandBuffer() vk.CommandBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	cb := vk.CommandBuffer(s.handle())
	s.cmdBufs[cb] = &commandBuffer{}
	return cb
}

// CommandCount reports how many executions are recorded in cb.
func (s *Simulator) CommandCount(cb vk.CommandBuffer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.cmdBufs[cb]
	if !ok {
		return 0
	}
	return len(rec.commands)
}

// Submit executes every recorded command in order and resets the command
// buffer, standing in for queue submission plus a fence wait.
func (s *Simulator) Submit(cb vk.CommandBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.cmdBufs[cb]
	if !ok {
		exceptions.Panicf("simulator: Submit of unknown command buffer %#x", uintptr(cb))
	}
	for _, cmd := range rec.commands {
		p, ok := s.apps[cmd.app]
		if !ok {
			exceptions.Panicf("simulator: submitted command references deleted plan %#x", uintptr(cmd.app))
		}
		if err := s.execute(p, cmd.dir, &cmd.params); err != nil {
			return err
		}
	}
	rec.commands = nil
	return nil
}

// FailNextInitialize makes the next Initialize call fail with res, for
// testing the wrapper's error mapping and cleanup.
func (s *Simulator) FailNextInitialize(res vkffi.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextInit = res
}

// LiveApplications counts plans initialized and not yet deleted.
func (s *Simulator) LiveApplications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// LiveBuffers counts simulated buffers not yet freed.
func (s *Simulator) LiveBuffers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers)
}

// InitializeCalls counts Initialize invocations, including failed ones.
func (s *Simulator) InitializeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initCalls
}

// AppendCalls counts Append invocations, including rejected ones.
func (s *Simulator) AppendCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendCalls
}

// Name implements vkffi.Library.
func (s *Simulator) Name() string { return "simulator" }

// Available implements vkffi.Library.
func (s *Simulator) Available() bool { return true }

// Initialize implements vkffi.Library: it validates the configuration the
// way the native library would, precomputes per-axis FFT tables and, for
// convolution plans, the kernel spectrum.
func (s *Simulator) Initialize(cfg *vkffi.Configuration) (vkffi.Application, vkffi.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initCalls++

	if s.failNextInit != vkffi.Success {
		res := s.failNextInit
		s.failNextInit = vkffi.Success
		return 0, res
	}

	if res := s.checkConfiguration(cfg); res != vkffi.Success {
		return 0, res
	}

	p := &plan{
		cfg:  *cfg,
		ffts: make(map[int]*fourier.CmplxFFT),
	}
	for axis := uint64(0); axis < cfg.FFTdim; axis++ {
		n := int(cfg.Size[axis])
		if _, ok := p.ffts[n]; !ok {
			p.ffts[n] = fourier.NewCmplxFFT(n)
		}
	}

	if cfg.PerformConvolution != 0 {
		if res := s.precomputeKernel(p); res != vkffi.Success {
			return 0, res
		}
	}

	app := vkffi.Application(s.handle())
	s.apps[app] = p
	return app, vkffi.Success
}

func (s *Simulator) checkConfiguration(cfg *vkffi.Configuration) vkffi.Result {
	if cfg.FFTdim == 0 {
		return vkffi.ErrorEmptyFFTDim
	}
	if cfg.FFTdim > 3 {
		return vkffi.ErrorUnsupportedFFTOmit
	}
	for axis := uint64(0); axis < cfg.FFTdim; axis++ {
		n := cfg.Size[axis]
		if n == 0 {
			return vkffi.ErrorEmptySize
		}
		if !radixSupported(n) {
			return vkffi.ErrorUnsupportedRadix
		}
	}
	if cfg.DoublePrecision != 0 && cfg.HalfPrecision != 0 {
		return vkffi.ErrorUnsupportedPrecision
	}
	switch {
	case cfg.Device == 0:
		return vkffi.ErrorInvalidDevice
	case cfg.Queue == 0:
		return vkffi.ErrorInvalidQueue
	case cfg.CommandPool == 0:
		return vkffi.ErrorInvalidCommandPool
	case cfg.Fence == 0:
		return vkffi.ErrorInvalidFence
	}
	for axis := 0; axis < 3; axis++ {
		if cfg.PerformZeropadding[axis] != 0 {
			return vkffi.ErrorUnsupportedConfiguration
		}
	}
	if cfg.PerformConvolution != 0 {
		if cfg.Kernel == 0 {
			return vkffi.ErrorEmptyKernel
		}
		if cfg.KernelSize == 0 {
			return vkffi.ErrorEmptyKernelSize
		}
	}
	return vkffi.Success
}

// precomputeKernel reads the spatial-domain kernel bound at creation and
// stores its forward transform, one spectrum per kernel channel. This is the
// simulated counterpart of the native library's one-off kernel staging pass.
func (s *Simulator) precomputeKernel(p *plan) vkffi.Result {
	cfg := &p.cfg
	mem, ok := s.buffers[cfg.Kernel]
	if !ok {
		return vkffi.ErrorEmptyKernel
	}
	channels := int(cfg.CoordinateFeatures)
	if channels == 0 {
		channels = 1
	}
	elems := logicalElements(cfg)
	need := uint64(channels*elems) * complexBytes(cfg)
	if cfg.KernelOffset+need > uint64(len(mem)) || cfg.KernelSize < need {
		return vkffi.ErrorEmptyKernelSize
	}
	region := mem[cfg.KernelOffset : cfg.KernelOffset+need]
	p.kernelFreq = make([][]complex128, channels)
	for ch := 0; ch < channels; ch++ {
		chBytes := uint64(elems) * complexBytes(cfg)
		spatial := decodeComplex(region[uint64(ch)*chBytes:(uint64(ch)+1)*chBytes], cfg, elems)
		p.transform(spatial, vkffi.Forward)
		p.kernelFreq[ch] = spatial
	}
	return vkffi.Success
}

// Append implements vkffi.Library: it validates the launch buffers against
// the simulated device state and records the execution; nothing runs until
// Submit.
func (s *Simulator) Append(app vkffi.Application, dir vkffi.Direction, params *vkffi.LaunchParams) vkffi.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendCalls++

	p, ok := s.apps[app]
	if !ok {
		return vkffi.ErrorPlanNotInitialized
	}
	rec, ok := s.cmdBufs[params.CommandBuffer]
	if !ok {
		return vkffi.ErrorInvalidContext
	}

	check := func(b vk.Buffer, size, offset uint64) vkffi.Result {
		if b == 0 {
			return vkffi.Success
		}
		mem, ok := s.buffers[b]
		if !ok {
			return vkffi.ErrorEmptyBuffer
		}
		if offset+size > uint64(len(mem)) {
			return vkffi.ErrorFailedToAppendCommands
		}
		return vkffi.Success
	}
	if params.Buffer == 0 && (params.InputBuffer == 0 || params.OutputBuffer == 0) {
		return vkffi.ErrorEmptyBuffer
	}
	for _, r := range []vkffi.Result{
		check(params.Buffer, params.BufferSize, params.BufferOffset),
		check(params.InputBuffer, params.InputBufferSize, params.InputBufferOffset),
		check(params.OutputBuffer, params.OutputBufferSize, params.OutputBufferOffset),
		check(params.TempBuffer, params.TempBufferSize, params.TempBufferOffset),
	} {
		if r != vkffi.Success {
			return r
		}
	}
	if p.cfg.DisableReorderFourStep != 0 && params.TempBuffer == 0 {
		return vkffi.ErrorNullTempPassed
	}
	// The simulator has no padded in-place layout for real transforms.
	if p.cfg.PerformR2C != 0 && params.Buffer != 0 {
		return vkffi.ErrorUnsupportedConfiguration
	}

	rec.commands = append(rec.commands, command{app: app, dir: dir, params: *params})
	return vkffi.Success
}

// Delete implements vkffi.Library. Like the native library, deleting an
// unknown plan is a hard fault, not an error return — the wrapper above is
// responsible for never letting that happen.
func (s *Simulator) Delete(app vkffi.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app]; !ok {
		exceptions.Panicf("simulator: Delete of unknown plan %#x (double free?)", uintptr(app))
	}
	delete(s.apps, app)
}

// radixSupported reports whether n factors into the native radix base
// {2, 3, 5, 7, 11, 13}.
func radixSupported(n uint64) bool {
	for _, r := range [...]uint64{2, 3, 5, 7, 11, 13} {
		for n%r == 0 {
			n /= r
		}
	}
	return n == 1
}
