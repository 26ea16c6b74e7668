package vkfft

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/vkfft/internal/vkffi"
	"github.com/gomlx/vkfft/vk"
)

// App is a compiled, GPU-resident execution plan. It exclusively owns the
// native plan handle and everything the native library allocated for it:
// scratch buffers, twiddle tables, and the precomputed frequency-domain
// kernel of convolution plans.
//
// An App must never be copied and must be destroyed exactly once. After
// Destroy, Record and Destroy return ErrUseAfterFree / ErrDoubleFree rather
// than reaching the native layer, which has no such protection.
//
// Recording against one App requires exclusive access for the duration of
// the Record call: the native plan keeps internal per-execution state, so
// concurrent Record calls on the same App are a data race. Recording against
// different Apps is independent and safe, including on a shared device and
// queue.
type App struct {
	config Config // independent snapshot, never aliased with any builder
	ctx    vk.DeviceContext
	kernel BufferBinding // bound at creation for convolution plans

	lib       vkffi.Library
	handle    vkffi.Application
	destroyed bool

	noCopy noCopy
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// NewApp compiles config into an execution plan on the device described by
// ctx. Convolution configurations need their kernel bound at creation; use
// NewAppWithKernel for those.
//
// Creation is the one blocking operation of this layer: the native library
// may submit and wait on transient GPU work (allocated from ctx.CommandPool,
// synchronized with ctx.Fence) while staging plan data.
func NewApp(ctx vk.DeviceContext, config *Config) (*App, error) {
	if config != nil && config.Convolution() {
		return nil, errors.Wrap(ErrInvalidBinding,
			"convolution is configured but no Kernel binding was supplied; use NewAppWithKernel")
	}
	return newApp(ctx, config, BufferBinding{})
}

// NewAppWithKernel compiles a convolution plan, binding kernel as its
// spatial-domain kernel data. The native library transforms it to the
// frequency domain once, during creation; the binding is then part of plan
// state and must stay valid and unmodified until the App is destroyed.
// Subsequent LaunchParams supply only input and output bindings.
func NewAppWithKernel(ctx vk.DeviceContext, config *Config, kernel BufferBinding) (*App, error) {
	if config != nil && !config.Convolution() {
		return nil, errors.Wrap(ErrInvalidConfiguration,
			"a Kernel binding was supplied but the configuration has no convolution")
	}
	return newApp(ctx, config, kernel)
}

func newApp(ctx vk.DeviceContext, config *Config, kernel BufferBinding) (*App, error) {
	if config == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil Config")
	}
	if err := ctx.Validate(); err != nil {
		return nil, errors.WithMessage(ErrInvalidConfiguration, err.Error())
	}
	if config.Convolution() {
		if err := checkBinding(config, RoleKernel, kernel); err != nil {
			return nil, err
		}
	}

	lib, err := vkffi.Registered()
	if err != nil {
		return nil, errors.WithMessagef(ErrDeviceError, "%+v", err)
	}

	native := config.toNative(ctx, kernel)
	handle, res := lib.Initialize(&native)
	if res != vkffi.Success {
		// Initialize guarantees no partial native state survives a failure.
		return nil, nativeError(res)
	}

	app := &App{
		config: *config,
		ctx:    ctx,
		kernel: kernel,
		lib:    lib,
		handle: handle,
	}
	// Backstop for leaked plans: the native layer cannot free itself, so a
	// collected-but-not-destroyed App would leak device memory silently.
	runtime.SetFinalizer(app, (*App).finalize)
	klog.V(1).Infof("vkfft: compiled %s plan %v (lengths=%v, batches=%d) on %s",
		app.config.kind, app.handle, app.config.Lengths(), app.config.batches, lib.Name())
	return app, nil
}

// Config returns the App's configuration snapshot.
func (a *App) Config() Config { return a.config }

// CheckValid returns ErrUseAfterFree if the App is nil or already destroyed.
func (a *App) CheckValid() error {
	if a == nil || a.destroyed || a.handle == 0 {
		return errors.WithStack(ErrUseAfterFree)
	}
	return nil
}

// Destroy releases the native plan and every resource it owns internally.
// It must be called exactly once: a second call returns ErrDoubleFree, which
// is a programming error, not a retryable condition. Destroy must only run
// after all submitted command buffers referencing this App have completed.
func (a *App) Destroy() error {
	if a == nil {
		return errors.WithStack(ErrUseAfterFree)
	}
	if a.destroyed {
		return errors.WithStack(ErrDoubleFree)
	}
	a.lib.Delete(a.handle)
	a.destroyed = true
	a.handle = 0
	runtime.SetFinalizer(a, nil)
	klog.V(1).Infof("vkfft: destroyed plan")
	return nil
}

func (a *App) finalize() {
	if a.destroyed {
		return
	}
	klog.Warningf("vkfft: App for %s plan was garbage collected without Destroy; releasing the native plan from the finalizer", a.config.kind)
	a.lib.Delete(a.handle)
	a.destroyed = true
}

// WithApp creates an App from config, runs fn with it, and guarantees the
// plan is destroyed on every exit path, including panics inside fn.
// Convolution configurations use WithConvolutionApp.
func WithApp(ctx vk.DeviceContext, config *Config, fn func(*App) error) error {
	app, err := NewApp(ctx, config)
	if err != nil {
		return err
	}
	return runScoped(app, fn)
}

// WithConvolutionApp is WithApp for convolution plans: it creates the App
// through NewAppWithKernel and destroys it on every exit path.
func WithConvolutionApp(ctx vk.DeviceContext, config *Config, kernel BufferBinding, fn func(*App) error) error {
	app, err := NewAppWithKernel(ctx, config, kernel)
	if err != nil {
		return err
	}
	return runScoped(app, fn)
}

func runScoped(app *App, fn func(*App) error) error {
	defer func() {
		if derr := app.Destroy(); derr != nil && !errors.Is(derr, ErrDoubleFree) {
			klog.Warningf("vkfft: scoped destroy failed: %+v", derr)
		}
	}()
	return fn(app)
}

// checkBinding validates one binding against the configuration's sizing for
// the role, naming the role in every failure.
func checkBinding(config *Config, role Role, b BufferBinding) error {
	if b.IsZero() {
		return errors.Wrapf(ErrInvalidBinding, "missing %s binding", role)
	}
	need := config.BufferSize(role)
	if b.Size < need {
		return errors.Wrapf(ErrInvalidBinding, "%s binding too small: %s bound, %s required",
			role, humanize.IBytes(b.Size), humanize.IBytes(need))
	}
	if align := config.precision.ComplexSize(); b.Offset%align != 0 {
		return errors.Wrapf(ErrInvalidBinding, "%s binding offset %d is not aligned to the %d-byte element size",
			role, b.Offset, align)
	}
	return nil
}
