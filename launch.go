package vkfft

import (
	"github.com/pkg/errors"

	"github.com/gomlx/vkfft/vk"
)

// BufferBinding describes one region of GPU memory bound to a logical role
// for a single recorded execution. It is non-owning: the caller must keep
// the buffer allocated, and free of conflicting GPU writes, from recording
// until the submitted command buffer completes.
type BufferBinding struct {
	Buffer vk.Buffer
	// Size is the byte size of the bound region. It must cover
	// Config.BufferSize for the role it is bound to.
	Size uint64
	// Offset is the byte offset of the region within Buffer. It must be
	// aligned to the configured complex element size.
	Offset uint64
}

// IsZero reports whether the binding is unset.
func (b BufferBinding) IsZero() bool { return b.Buffer == 0 }

// LaunchParams binds an externally owned command buffer and the role-keyed
// buffer regions for exactly one recorded execution. Assemble with
// NewLaunchParamsBuilder; a LaunchParams is consumed by one App.Record call
// and holds nothing that needs releasing.
type LaunchParams struct {
	commandBuffer vk.CommandBuffer
	bindings      map[Role]BufferBinding
}

// CommandBuffer returns the command buffer commands are appended into.
func (p *LaunchParams) CommandBuffer() vk.CommandBuffer { return p.commandBuffer }

// Binding returns the binding for role, if present.
func (p *LaunchParams) Binding(role Role) (BufferBinding, bool) {
	b, ok := p.bindings[role]
	return b, ok
}

// InPlace reports whether input and output name the same buffer region.
func (p *LaunchParams) InPlace() bool {
	in, okIn := p.bindings[RoleInput]
	out, okOut := p.bindings[RoleOutput]
	return okIn && okOut && in.Buffer == out.Buffer && in.Offset == out.Offset
}

// LaunchParamsBuilder assembles LaunchParams. Unlike the native call's
// positional buffer arguments, bindings are keyed by Role and validated
// against the plan's configuration at record time.
type LaunchParamsBuilder struct {
	params LaunchParams
}

// NewLaunchParamsBuilder returns an empty builder.
func NewLaunchParamsBuilder() *LaunchParamsBuilder {
	return &LaunchParamsBuilder{params: LaunchParams{
		bindings: make(map[Role]BufferBinding),
	}}
}

// CommandBuffer sets the externally owned, already-begun command buffer to
// append into. This layer never begins, ends or submits it.
func (b *LaunchParamsBuilder) CommandBuffer(cb vk.CommandBuffer) *LaunchParamsBuilder {
	b.params.commandBuffer = cb
	return b
}

// Bind sets the binding for an arbitrary role.
func (b *LaunchParamsBuilder) Bind(role Role, binding BufferBinding) *LaunchParamsBuilder {
	b.params.bindings[role] = binding
	return b
}

// Input binds the transform input region.
func (b *LaunchParamsBuilder) Input(binding BufferBinding) *LaunchParamsBuilder {
	return b.Bind(RoleInput, binding)
}

// Output binds the transform output region. Bind the same buffer and offset
// as Input for an in-place transform.
func (b *LaunchParamsBuilder) Output(binding BufferBinding) *LaunchParamsBuilder {
	return b.Bind(RoleOutput, binding)
}

// Temp binds the scratch region required by plans built with
// DisableReorderFourStep.
func (b *LaunchParamsBuilder) Temp(binding BufferBinding) *LaunchParamsBuilder {
	return b.Bind(RoleTemp, binding)
}

// Build returns the assembled LaunchParams. The command buffer is the only
// field required at build time; buffer roles are checked against a specific
// plan by App.Record.
func (b *LaunchParamsBuilder) Build() (*LaunchParams, error) {
	if b.params.commandBuffer == 0 {
		return nil, errors.Wrap(ErrInvalidBinding, "no command buffer set")
	}
	// Snapshot the bindings so reusing the builder cannot mutate params
	// already handed out.
	params := LaunchParams{
		commandBuffer: b.params.commandBuffer,
		bindings:      make(map[Role]BufferBinding, len(b.params.bindings)),
	}
	for role, binding := range b.params.bindings {
		params.bindings[role] = binding
	}
	return &params, nil
}
