// Package vkfft is a safety layer over the VkFFT GPU FFT library.
//
// VkFFT compiles a transform description into a stateful native plan that
// owns device-side scratch buffers and precomputed constant tables, and then
// appends execution commands into Vulkan command buffers. The native contract
// is entirely implicit: buffers must be passed in the right order, the plan
// must not be used after deletion, and deletion must happen exactly once.
// This package converts those implicit rules into an explicit one:
//
//   - Config is an immutable, validated snapshot of one transform
//     description, built with ConfigBuilder. Validation is eager and happens
//     before any native call.
//   - App owns the compiled native plan. It is created from a Config and a
//     vk.DeviceContext, used any number of times, and destroyed exactly once.
//     Use after destruction and double destruction are detected and reported
//     as errors instead of corrupting native state.
//   - LaunchParams binds a command buffer and role-keyed buffer regions
//     (BufferBinding) to one recorded execution. Every binding is checked
//     against the Config's sizing before the native library sees it.
//
// Recording appends commands only; command-buffer allocation, submission and
// fencing belong to the caller, which lets many transform executions batch
// into a single submission:
//
//	cfg, err := vkfft.NewConfigBuilder().Dim(1024).Build()
//	if err != nil { ... }
//	app, err := vkfft.NewApp(deviceCtx, cfg)
//	if err != nil { ... }
//	defer app.Destroy()
//
//	params, err := vkfft.NewLaunchParamsBuilder().
//		CommandBuffer(cb).
//		Input(vkfft.BufferBinding{Buffer: buf, Size: cfg.BufferSize(vkfft.RoleInput)}).
//		Output(vkfft.BufferBinding{Buffer: buf, Size: cfg.BufferSize(vkfft.RoleOutput)}).
//		Build()
//	if err != nil { ... }
//	if err := app.Record(params); err != nil { ... }
//	// ... caller ends and submits cb.
package vkfft
