package vkfft

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/vkfft/internal/vkffi"
)

// Record appends one execution of the plan into the command buffer bound in
// params. It validates every required buffer role against the plan's
// configuration before the native library is called: validation failures
// leave the command buffer untouched.
//
// Record performs no GPU submission. Ordering comes from the command buffer
// and its submission, both owned by the caller; batching many Record calls
// into one submission is the intended usage. If the native call itself
// fails, the error wraps ErrExecutionFailed with the native code, and no
// partial command-buffer state is rolled back here — resetting or
// abandoning the command buffer is the caller's decision.
//
// The caller must hold exclusive access to the App for the duration of the
// call; see the App documentation.
func (a *App) Record(params *LaunchParams) error {
	if err := a.CheckValid(); err != nil {
		return err
	}
	if params == nil || params.commandBuffer == 0 {
		return errors.Wrap(ErrInvalidBinding, "no command buffer set")
	}

	if _, ok := params.Binding(RoleKernel); ok {
		return errors.Wrap(ErrInvalidBinding,
			"Kernel is plan state, bound at App creation; it must not appear in LaunchParams")
	}

	required := []Role{RoleInput, RoleOutput}
	if a.config.disableReorderFourStep {
		required = append(required, RoleTemp)
	}
	for _, role := range required {
		binding, ok := params.Binding(role)
		if !ok {
			return errors.Wrapf(ErrInvalidBinding, "missing %s binding", role)
		}
		if err := checkBinding(&a.config, role, binding); err != nil {
			return err
		}
	}
	native := a.toNativeLaunch(params)
	dir := vkffi.Forward
	if a.config.kind.Inverse() {
		dir = vkffi.Inverse
	}
	if res := a.lib.Append(a.handle, dir, &native); res != vkffi.Success {
		return errors.Wrapf(ErrExecutionFailed, "native append returned %s", res)
	}
	klog.V(2).Infof("vkfft: recorded %s execution into command buffer %#x",
		a.config.kind, uintptr(params.commandBuffer))
	return nil
}

// toNativeLaunch translates validated launch params into the native
// structure. In-place executions use the native single-buffer path; all
// values are copied, nothing aliases params after the call.
func (a *App) toNativeLaunch(params *LaunchParams) vkffi.LaunchParams {
	native := vkffi.LaunchParams{CommandBuffer: params.commandBuffer}

	in, _ := params.Binding(RoleInput)
	out, _ := params.Binding(RoleOutput)
	if params.InPlace() {
		native.Buffer = in.Buffer
		native.BufferSize = in.Size
		native.BufferOffset = in.Offset
	} else {
		native.InputBuffer = in.Buffer
		native.InputBufferSize = in.Size
		native.InputBufferOffset = in.Offset
		native.OutputBuffer = out.Buffer
		native.OutputBufferSize = out.Size
		native.OutputBufferOffset = out.Offset
	}
	if temp, ok := params.Binding(RoleTemp); ok && !temp.IsZero() {
		native.TempBuffer = temp.Buffer
		native.TempBufferSize = temp.Size
		native.TempBufferOffset = temp.Offset
	}
	return native
}
