package vkfft

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/vkfft/vk"
)

func TestLaunchParamsBuilderRequiresCommandBuffer(t *testing.T) {
	params, err := NewLaunchParamsBuilder().
		Input(BufferBinding{Buffer: 1, Size: 64}).
		Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBinding), "got %v", err)
	assert.Contains(t, err.Error(), "command buffer")
	assert.Nil(t, params)
}

func TestLaunchParamsBuilderSnapshot(t *testing.T) {
	first := BufferBinding{Buffer: 1, Size: 64}
	b := NewLaunchParamsBuilder().
		CommandBuffer(vk.CommandBuffer(7)).
		Input(first).
		Output(first)
	params, err := b.Build()
	require.NoError(t, err)

	// Mutating the builder afterwards must not reach params already built.
	b.Input(BufferBinding{Buffer: 2, Size: 128}).CommandBuffer(vk.CommandBuffer(9))
	got, ok := params.Binding(RoleInput)
	require.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, vk.CommandBuffer(7), params.CommandBuffer())

	params2, err := b.Build()
	require.NoError(t, err)
	got2, _ := params2.Binding(RoleInput)
	assert.Equal(t, vk.Buffer(2), got2.Buffer)
}

func TestLaunchParamsInPlace(t *testing.T) {
	shared := BufferBinding{Buffer: 3, Size: 256}
	params, err := NewLaunchParamsBuilder().
		CommandBuffer(vk.CommandBuffer(1)).
		Input(shared).
		Output(shared).
		Build()
	require.NoError(t, err)
	assert.True(t, params.InPlace())

	// Same buffer at a different offset is out-of-place.
	offset := shared
	offset.Offset = 128
	params, err = NewLaunchParamsBuilder().
		CommandBuffer(vk.CommandBuffer(1)).
		Input(shared).
		Output(offset).
		Build()
	require.NoError(t, err)
	assert.False(t, params.InPlace())

	params, err = NewLaunchParamsBuilder().
		CommandBuffer(vk.CommandBuffer(1)).
		Input(shared).
		Output(BufferBinding{Buffer: 4, Size: 256}).
		Build()
	require.NoError(t, err)
	assert.False(t, params.InPlace())
}
