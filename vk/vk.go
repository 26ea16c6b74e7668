// Package vk declares the minimal Vulkan surface this module consumes from
// its external GPU-context collaborator.
//
// The package intentionally does not bind any Vulkan entry point: instance and
// device creation, buffer allocation, command-buffer begin/end and queue
// submission all belong to the caller. Only the opaque handles the native FFT
// library needs are declared here, as named uintptr types so they can cross
// the FFI boundary without a dependency on any particular Vulkan binding.
package vk

// Handles are non-owning: holding one of these values keeps nothing alive.
// The caller guarantees the underlying Vulkan object outlives every plan or
// recording that references it.
type (
	// Instance is a VkInstance handle.
	Instance uintptr

	// PhysicalDevice is a VkPhysicalDevice handle.
	PhysicalDevice uintptr

	// Device is a VkDevice handle.
	Device uintptr

	// Queue is a VkQueue handle. It must support compute dispatch.
	Queue uintptr

	// CommandPool is a VkCommandPool handle, used by the native library to
	// allocate transient command buffers during plan initialization.
	CommandPool uintptr

	// CommandBuffer is a VkCommandBuffer handle in the recording state.
	CommandBuffer uintptr

	// Fence is a VkFence handle the native library may wait on while staging
	// precomputed plan data.
	Fence uintptr

	// Buffer is a VkBuffer handle backed by device memory.
	Buffer uintptr
)

// DeviceSize mirrors VkDeviceSize.
type DeviceSize = uint64

// Result mirrors VkResult for the few codes that can surface through the
// native FFT library.
type Result int32

const (
	Success                 Result = 0
	NotReady                Result = 1
	Timeout                 Result = 2
	ErrorOutOfHostMemory    Result = -1
	ErrorOutOfDeviceMemory  Result = -2
	ErrorInitializationFail Result = -3
	ErrorDeviceLost         Result = -4
)

// String implements fmt.Stringer with the Vulkan spec names.
func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFail:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	}
	return "VK_RESULT_UNKNOWN"
}
