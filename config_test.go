package vkfft

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *ConfigBuilder
		wantErr error
	}{
		{"1d", NewConfigBuilder().Dim(1024), nil},
		{"2d", NewConfigBuilder().Dim(256, 128), nil},
		{"3d", NewConfigBuilder().Dim(32, 32, 32), nil},
		{"mixed radix", NewConfigBuilder().Dim(7 * 11 * 13), nil},
		{"no dim", NewConfigBuilder(), ErrInvalidConfiguration},
		{"too many axes", NewConfigBuilder().Dim(8, 8, 8, 8), ErrInvalidConfiguration},
		{"zero length", NewConfigBuilder().Dim(0), ErrInvalidConfiguration},
		{"negative length", NewConfigBuilder().Dim(-4), ErrInvalidConfiguration},
		{"prime outside radix base", NewConfigBuilder().Dim(17), ErrInvalidConfiguration},
		{"large prime", NewConfigBuilder().Dim(2 * 31), ErrInvalidConfiguration},
		{"zero batch", NewConfigBuilder().Dim(64).Batches(0), ErrInvalidConfiguration},
		{"negative batch", NewConfigBuilder().Dim(64).Batches(-1), ErrInvalidConfiguration},
		{"zero coordinate features", NewConfigBuilder().Dim(64).CoordinateFeatures(0), ErrInvalidConfiguration},
		{"negative coordinate features", NewConfigBuilder().Dim(64).CoordinateFeatures(-1), ErrInvalidConfiguration},
		{"bad precision", NewConfigBuilder().Dim(64).Precision(Precision(42)), ErrUnsupportedPrecision},
		{"bad kind", NewConfigBuilder().Dim(64).Kind(TransformKind(9)), ErrInvalidConfiguration},
		{"convolution zero channels", NewConfigBuilder().Dim(64).Convolution(0), ErrInvalidConfiguration},
		{"convolution negative channels", NewConfigBuilder().Dim(64).Convolution(-3), ErrInvalidConfiguration},
		{"convolution on inverse kind", NewConfigBuilder().Dim(64).Kind(KindComplexInverse).Convolution(1), ErrInvalidConfiguration},
		{"symmetric kernel without convolution", NewConfigBuilder().Dim(64).SymmetricKernel(), ErrInvalidConfiguration},
		{"zero padding beyond rank", NewConfigBuilder().Dim(64).ZeroPadding(1, 0, 8), ErrInvalidConfiguration},
		{"zero padding bounds reversed", NewConfigBuilder().Dim(64).ZeroPadding(0, 10, 4), ErrInvalidConfiguration},
		{"zero padding past length", NewConfigBuilder().Dim(64).ZeroPadding(0, 0, 65), ErrInvalidConfiguration},
		{"zero padding negative left", NewConfigBuilder().Dim(64).ZeroPadding(0, -4, 8), ErrInvalidConfiguration},
		{"valid zero padding", NewConfigBuilder().Dim(64).ZeroPadding(0, 32, 64), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.builder.Build()
			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestConfigBuilderSnapshot(t *testing.T) {
	// A built Config must be immune to later builder mutation.
	b := NewConfigBuilder().Dim(64).Precision(PrecisionDouble)
	cfg, err := b.Build()
	require.NoError(t, err)

	b.Dim(128).Precision(PrecisionHalf).Batches(7)
	assert.Equal(t, []int{64}, cfg.Lengths())
	assert.Equal(t, PrecisionDouble, cfg.Precision())
	assert.Equal(t, 1, cfg.Batches())

	// And the mutated builder still builds something independent.
	cfg2, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []int{128}, cfg2.Lengths())
	assert.Equal(t, 7, cfg2.Batches())
}

func TestConfigBufferSize(t *testing.T) {
	c2c, err := NewConfigBuilder().Dim(1024).Batches(2).Build()
	require.NoError(t, err)
	// 1024 complex64 elements × 8 bytes × 2 batches.
	assert.Equal(t, uint64(1024*8*2), c2c.BufferSize(RoleInput))
	assert.Equal(t, uint64(1024*8*2), c2c.BufferSize(RoleOutput))
	assert.Zero(t, c2c.BufferSize(RoleKernel))
	assert.Zero(t, c2c.BufferSize(RoleTemp))

	r2c, err := NewConfigBuilder().Dim(8).Kind(KindRealForward).Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(8*4), r2c.BufferSize(RoleInput))  // 8 float32
	assert.Equal(t, uint64(5*8), r2c.BufferSize(RoleOutput)) // 5 packed complex64

	c2r, err := NewConfigBuilder().Dim(8).Kind(KindRealInverse).Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(5*8), c2r.BufferSize(RoleInput))
	assert.Equal(t, uint64(8*4), c2r.BufferSize(RoleOutput))

	dbl, err := NewConfigBuilder().Dim(16).Precision(PrecisionDouble).Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(16*16), dbl.BufferSize(RoleInput))

	conv, err := NewConfigBuilder().Dim(32).Convolution(3).Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(3*32*8), conv.BufferSize(RoleKernel))

	fourStep, err := NewConfigBuilder().Dim(4096).DisableReorderFourStep().Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(4096*8), fourStep.BufferSize(RoleTemp))
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Single", PrecisionSingle.String())
	assert.Equal(t, "ComplexInverse", KindComplexInverse.String())
	assert.Equal(t, "Kernel", RoleKernel.String())

	p, err := PrecisionString("double")
	require.NoError(t, err)
	assert.Equal(t, PrecisionDouble, p)
}
