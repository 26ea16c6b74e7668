package vkffi

import "fmt"

// Result mirrors VkFFTResult. The values match VkFFT.h: 1xxx are invalid
// external resources, 2xxx are empty configuration fields, 3xxx are
// unsupported configurations, 4xxx are allocation/device failures.
type Result int32

const (
	Success Result = 0

	ErrorMallocFailed           Result = 1
	ErrorInsufficientCodeBuffer Result = 2
	ErrorInsufficientTempBuffer Result = 3
	ErrorPlanNotInitialized     Result = 4
	ErrorNullTempPassed         Result = 5

	ErrorInvalidPhysicalDevice Result = 1001
	ErrorInvalidDevice         Result = 1002
	ErrorInvalidQueue          Result = 1003
	ErrorInvalidCommandPool    Result = 1004
	ErrorInvalidFence          Result = 1005
	ErrorInvalidContext        Result = 1008

	ErrorEmptyFFTDim     Result = 2001
	ErrorEmptySize       Result = 2002
	ErrorEmptyBufferSize Result = 2003
	ErrorEmptyBuffer     Result = 2004
	ErrorEmptyKernelSize Result = 2009
	ErrorEmptyKernel     Result = 2010

	ErrorUnsupportedRadix         Result = 3001
	ErrorUnsupportedFFTLength     Result = 3002
	ErrorUnsupportedFFTLengthR2C  Result = 3003
	ErrorUnsupportedFFTOmit       Result = 3005
	ErrorUnsupportedPrecision     Result = 3006
	ErrorUnsupportedConfiguration Result = 3007

	ErrorFailedToAllocate         Result = 4001
	ErrorFailedToMapMemory        Result = 4002
	ErrorFailedToAllocateMemory   Result = 4003
	ErrorFailedToCreateBuffer     Result = 4008
	ErrorFailedToCreatePipeline   Result = 4023
	ErrorFailedToAppendCommands   Result = 4029
	ErrorFailedToSubmitQueue      Result = 4035
	ErrorFailedToWaitForFence     Result = 4037
	ErrorFailedToCreateDescriptor Result = 4040
)

var resultNames = map[Result]string{
	Success:                       "VKFFT_SUCCESS",
	ErrorMallocFailed:             "VKFFT_ERROR_MALLOC_FAILED",
	ErrorInsufficientCodeBuffer:   "VKFFT_ERROR_INSUFFICIENT_CODE_BUFFER",
	ErrorInsufficientTempBuffer:   "VKFFT_ERROR_INSUFFICIENT_TEMP_BUFFER",
	ErrorPlanNotInitialized:       "VKFFT_ERROR_PLAN_NOT_INITIALIZED",
	ErrorNullTempPassed:           "VKFFT_ERROR_NULL_TEMP_PASSED",
	ErrorInvalidPhysicalDevice:    "VKFFT_ERROR_INVALID_PHYSICAL_DEVICE",
	ErrorInvalidDevice:            "VKFFT_ERROR_INVALID_DEVICE",
	ErrorInvalidQueue:             "VKFFT_ERROR_INVALID_QUEUE",
	ErrorInvalidCommandPool:       "VKFFT_ERROR_INVALID_COMMAND_POOL",
	ErrorInvalidFence:             "VKFFT_ERROR_INVALID_FENCE",
	ErrorInvalidContext:           "VKFFT_ERROR_INVALID_CONTEXT",
	ErrorEmptyFFTDim:              "VKFFT_ERROR_EMPTY_FFTdim",
	ErrorEmptySize:                "VKFFT_ERROR_EMPTY_size",
	ErrorEmptyBufferSize:          "VKFFT_ERROR_EMPTY_bufferSize",
	ErrorEmptyBuffer:              "VKFFT_ERROR_EMPTY_buffer",
	ErrorEmptyKernelSize:          "VKFFT_ERROR_EMPTY_kernelSize",
	ErrorEmptyKernel:              "VKFFT_ERROR_EMPTY_kernel",
	ErrorUnsupportedRadix:         "VKFFT_ERROR_UNSUPPORTED_RADIX",
	ErrorUnsupportedFFTLength:     "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH",
	ErrorUnsupportedFFTLengthR2C:  "VKFFT_ERROR_UNSUPPORTED_FFT_LENGTH_R2C",
	ErrorUnsupportedFFTOmit:       "VKFFT_ERROR_UNSUPPORTED_FFT_OMIT",
	ErrorUnsupportedPrecision:     "VKFFT_ERROR_UNSUPPORTED_PRECISION",
	ErrorUnsupportedConfiguration: "VKFFT_ERROR_UNSUPPORTED_CONFIGURATION",
	ErrorFailedToAllocate:         "VKFFT_ERROR_FAILED_TO_ALLOCATE",
	ErrorFailedToMapMemory:        "VKFFT_ERROR_FAILED_TO_MAP_MEMORY",
	ErrorFailedToAllocateMemory:   "VKFFT_ERROR_FAILED_TO_ALLOCATE_MEMORY",
	ErrorFailedToCreateBuffer:     "VKFFT_ERROR_FAILED_TO_CREATE_BUFFER",
	ErrorFailedToCreatePipeline:   "VKFFT_ERROR_FAILED_TO_CREATE_PIPELINE",
	ErrorFailedToAppendCommands:   "VKFFT_ERROR_FAILED_TO_APPEND_COMMANDS",
	ErrorFailedToSubmitQueue:      "VKFFT_ERROR_FAILED_TO_SUBMIT_QUEUE",
	ErrorFailedToWaitForFence:     "VKFFT_ERROR_FAILED_TO_WAIT_FOR_FENCE",
	ErrorFailedToCreateDescriptor: "VKFFT_ERROR_FAILED_TO_CREATE_DESCRIPTOR",
}

// String returns the VkFFT.h enumerator name for known codes.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("VkFFTResult(%d)", int32(r))
}

// Class groups results into the coarse categories the wrapper's error
// taxonomy distinguishes.
type Class int

const (
	ClassOK Class = iota
	// ClassConfiguration covers results caused by the plan description
	// itself: empty or unsupported sizes, missing configuration fields.
	ClassConfiguration
	// ClassPrecision covers precision modes the device or library build
	// cannot provide.
	ClassPrecision
	// ClassMemory covers host or device allocation failures.
	ClassMemory
	// ClassDevice covers everything device- or driver-level: invalid
	// external handles, pipeline creation, submission and fence failures.
	ClassDevice
)

// Classify maps a native result onto a Class.
func (r Result) Classify() Class {
	switch {
	case r == Success:
		return ClassOK
	case r == ErrorUnsupportedPrecision:
		return ClassPrecision
	case r == ErrorMallocFailed || (r >= ErrorFailedToAllocate && r <= ErrorFailedToAllocateMemory):
		return ClassMemory
	case r >= ErrorEmptyFFTDim && r < ErrorFailedToAllocate:
		return ClassConfiguration
	default:
		return ClassDevice
	}
}
