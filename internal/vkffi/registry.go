package vkffi

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	libMu sync.RWMutex
	lib   Library
)

// Register installs the Library implementation plans are created against.
// Passing nil clears it. Tests install the in-process simulator here;
// production code normally leaves registration to Load.
func Register(l Library) {
	libMu.Lock()
	lib = l
	libMu.Unlock()
}

// Registered returns the installed Library, loading the native one on first
// use if nothing was registered explicitly.
func Registered() (Library, error) {
	libMu.RLock()
	l := lib
	libMu.RUnlock()
	if l != nil {
		return l, nil
	}

	libMu.Lock()
	defer libMu.Unlock()
	if lib != nil {
		return lib, nil
	}
	l, err := load()
	if err != nil {
		return nil, errors.WithMessage(err, "no VkFFT library registered and loading the native one failed")
	}
	lib = l
	return lib, nil
}
