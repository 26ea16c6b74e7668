package vk

import "github.com/pkg/errors"

// DeviceContext groups the handles a compiled plan needs from the external
// GPU context: the device that owns the plan's internal allocations, a
// compute-capable queue, and the command pool and fence the native library
// uses for transient staging work (e.g. transforming a convolution kernel to
// the frequency domain during plan initialization).
//
// DeviceContext is plain data. It owns none of the handles and performs no
// Vulkan calls; the caller must keep every referenced object alive for the
// lifetime of any plan created from it.
type DeviceContext struct {
	PhysicalDevice PhysicalDevice
	Device         Device
	Queue          Queue
	// QueueFamilyIndex is the family Queue was created from. The native
	// library needs it to allocate transient command buffers from CommandPool.
	QueueFamilyIndex uint32
	CommandPool      CommandPool
	Fence            Fence
}

// Validate reports the first missing handle, or nil if the context is usable
// for plan creation.
func (c DeviceContext) Validate() error {
	switch {
	case c.PhysicalDevice == 0:
		return errors.New("vk: DeviceContext has no physical device")
	case c.Device == 0:
		return errors.New("vk: DeviceContext has no device")
	case c.Queue == 0:
		return errors.New("vk: DeviceContext has no queue")
	case c.CommandPool == 0:
		return errors.New("vk: DeviceContext has no command pool")
	case c.Fence == 0:
		return errors.New("vk: DeviceContext has no fence")
	}
	return nil
}
