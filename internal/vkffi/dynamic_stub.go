//go:build !linux && !darwin

package vkffi

import "github.com/pkg/errors"

// load is unavailable on platforms without purego dlopen support; register a
// Library explicitly instead.
func load() (Library, error) {
	return nil, errors.New("native VkFFT loading is not supported on this platform")
}
