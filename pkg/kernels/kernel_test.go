package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test constants to avoid magic strings/numbers.
const (
	testKernelName        = "test_kernel"
	testKernelName2       = "test_kernel_2"
	testKernelDisplayName = "Test Kernel"
	testKernelDescription = "A test kernel for unit testing"
	testMultiplier        = 2
)

// newTestKernel creates a kernel that doubles the element count.
func newTestKernel(name string) *Func {
	return &Func{
		KernelMeta: KernelMeta{
			KernelName:        name,
			KernelDisplayName: testKernelDisplayName,
			KernelDescription: testKernelDescription,
			KernelDomain:      DomainFloat,
			KernelGroup:       GroupDispersion,
		},
		Fn: func(xs []float64, _ Params) (float64, error) {
			return float64(len(xs) * testMultiplier), nil
		},
	}
}

func TestKernelMeta(t *testing.T) {
	t.Parallel()

	k := newTestKernel(testKernelName)

	assert.Equal(t, testKernelName, k.Name())
	assert.Equal(t, testKernelDisplayName, k.DisplayName())
	assert.Equal(t, testKernelDescription, k.Description())
	assert.Equal(t, DomainFloat, k.Domain())
	assert.Equal(t, GroupDispersion, k.Group())
}

func TestFunc_Compute(t *testing.T) {
	t.Parallel()

	got, err := newTestKernel(testKernelName).Compute([]float64{1, 2, 3}, Params{})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 0)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())

	reg.Register(newTestKernel(testKernelName2))
	reg.Register(newTestKernel(testKernelName))

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{testKernelName, testKernelName2}, reg.Names())

	k, ok := reg.Get(testKernelName)
	require.True(t, ok)
	assert.Equal(t, testKernelName, k.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	kernels := reg.Kernels()
	require.Len(t, kernels, 2)
	assert.Equal(t, testKernelName, kernels[0].Name())
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(newTestKernel(testKernelName))

	k, err := reg.Lookup(testKernelName)
	require.NoError(t, err)
	assert.Equal(t, testKernelName, k.Name())

	_, err = reg.Lookup("missing")
	require.ErrorIs(t, err, ErrUnknownKernel)
	assert.Contains(t, err.Error(), `"missing"`)
}
