package vkfft

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/vkfft/internal/simulator"
	"github.com/gomlx/vkfft/vk"
)

// recordFixture bundles one plan, one command buffer and correctly sized
// input/output buffers, which most Record tests then perturb.
type recordFixture struct {
	sim    *simulator.Simulator
	app    *App
	cb     vk.CommandBuffer
	input  BufferBinding
	output BufferBinding
}

func newRecordFixture(t *testing.T, build func(*ConfigBuilder) *ConfigBuilder) *recordFixture {
	t.Helper()
	sim := newSim(t)
	cfg, err := build(NewConfigBuilder()).Build()
	require.NoError(t, err)
	app, err := NewApp(sim.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Destroy() })

	inSize := cfg.BufferSize(RoleInput)
	outSize := cfg.BufferSize(RoleOutput)
	return &recordFixture{
		sim:    sim,
		app:    app,
		cb:     sim.NewCommandBuffer(),
		input:  BufferBinding{Buffer: sim.NewBuffer(int(inSize)), Size: inSize},
		output: BufferBinding{Buffer: sim.NewBuffer(int(outSize)), Size: outSize},
	}
}

func (f *recordFixture) params(t *testing.T, mutate func(*LaunchParamsBuilder)) *LaunchParams {
	t.Helper()
	b := NewLaunchParamsBuilder().
		CommandBuffer(f.cb).
		Input(f.input).
		Output(f.output)
	if mutate != nil {
		mutate(b)
	}
	params, err := b.Build()
	require.NoError(t, err)
	return params
}

func TestRecordAppendsCommand(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })
	require.NoError(t, f.app.Record(f.params(t, nil)))
	assert.Equal(t, 1, f.sim.CommandCount(f.cb))

	// Recording is append-only: each call adds one more execution.
	require.NoError(t, f.app.Record(f.params(t, nil)))
	assert.Equal(t, 2, f.sim.CommandCount(f.cb))
}

func TestRecordMissingBindings(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	noInput, err := NewLaunchParamsBuilder().CommandBuffer(f.cb).Output(f.output).Build()
	require.NoError(t, err)
	err = f.app.Record(noInput)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "Input")

	noOutput, err := NewLaunchParamsBuilder().CommandBuffer(f.cb).Input(f.input).Build()
	require.NoError(t, err)
	err = f.app.Record(noOutput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Output")

	err = f.app.Record(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)

	// None of the failures may have touched the command buffer.
	assert.Zero(t, f.sim.CommandCount(f.cb))
	assert.Zero(t, f.sim.AppendCalls())
}

func TestRecordUndersizedBinding(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	small := f.input
	small.Size = 16
	err := f.app.Record(f.params(t, func(b *LaunchParamsBuilder) { b.Input(small) }))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "Input")
	assert.Contains(t, err.Error(), "too small")
	assert.Zero(t, f.sim.CommandCount(f.cb))
}

func TestRecordMisalignedOffset(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	skewed := f.output
	skewed.Offset = 3 // not a multiple of the 8-byte complex64 element
	err := f.app.Record(f.params(t, func(b *LaunchParamsBuilder) { b.Output(skewed) }))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "Output")
	assert.Contains(t, err.Error(), "aligned")
	assert.Zero(t, f.sim.CommandCount(f.cb))
}

func TestRecordRejectsKernelBinding(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	err := f.app.Record(f.params(t, func(b *LaunchParamsBuilder) {
		b.Bind(RoleKernel, f.input)
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "Kernel")
	assert.Zero(t, f.sim.CommandCount(f.cb))
}

func TestRecordTempRequiredByFourStepPlans(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder {
		return b.Dim(4096).DisableReorderFourStep()
	})

	err := f.app.Record(f.params(t, nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "Temp")
	assert.Zero(t, f.sim.CommandCount(f.cb))

	tempSize := f.app.Config().BufferSize(RoleTemp)
	temp := BufferBinding{Buffer: f.sim.NewBuffer(int(tempSize)), Size: tempSize}
	require.NoError(t, f.app.Record(f.params(t, func(b *LaunchParamsBuilder) { b.Temp(temp) })))
	assert.Equal(t, 1, f.sim.CommandCount(f.cb))
}

func TestRecordNativeFailureMapsToExecutionFailed(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	// A command buffer the device has never seen fails inside the native
	// append, past the wrapper's own validation.
	bogus, err := NewLaunchParamsBuilder().
		CommandBuffer(vk.CommandBuffer(0xbad)).
		Input(f.input).
		Output(f.output).
		Build()
	require.NoError(t, err)
	err = f.app.Record(bogus)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecutionFailed), "got %v", err)
	assert.Equal(t, 1, f.sim.AppendCalls())
	assert.Zero(t, f.sim.CommandCount(f.cb))
}

func TestRecordInPlace(t *testing.T) {
	f := newRecordFixture(t, func(b *ConfigBuilder) *ConfigBuilder { return b.Dim(64) })

	params := f.params(t, func(b *LaunchParamsBuilder) { b.Output(f.input) })
	require.True(t, params.InPlace())
	require.NoError(t, f.app.Record(params))
	assert.Equal(t, 1, f.sim.CommandCount(f.cb))
}
