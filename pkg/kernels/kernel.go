// Package kernels exposes the statistics kernels under stable, named entry
// points for hosts that exchange plain float64 sequences.
//
// Each kernel:
//   - Converts the host sequence into its numeric domain
//   - Invokes one generic kernel instantiated for that domain
//   - Returns the scalar result widened to float64
//
// Names follow the established host bindings (median_float, mode_uint32, ...).
package kernels

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownKernel is returned when a name is not registered.
var ErrUnknownKernel = errors.New("unknown kernel")

// Domain is the numeric domain a kernel operates in.
type Domain string

// Numeric domains.
const (
	DomainFloat   Domain = "float"
	DomainFloat32 Domain = "float32"
	DomainInt     Domain = "int"
	DomainInt8    Domain = "int8"
	DomainInt16   Domain = "int16"
	DomainInt32   Domain = "int32"
	DomainInt64   Domain = "int64"
	DomainUint    Domain = "uint"
	DomainUint8   Domain = "uint8"
	DomainUint16  Domain = "uint16"
	DomainUint32  Domain = "uint32"
	DomainUint64  Domain = "uint64"
)

// Group is the engine a kernel belongs to.
type Group string

// Kernel groups.
const (
	GroupSelection  Group = "selection"
	GroupDispersion Group = "dispersion"
	GroupMode       Group = "mode"
)

// Params carries the auxiliary scalars some kernels take.
type Params struct {
	// K is the zero-based rank for kth_element kernels.
	K int `json:"k,omitempty" yaml:"k,omitempty"`

	// Interval is the class width for median_grouped.
	Interval float64 `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// Kernel is a named statistics entry point.
type Kernel interface {
	// Name returns the stable entry point name (snake_case, unique).
	Name() string

	// DisplayName returns a human-readable name.
	DisplayName() string

	// Description documents what the kernel returns and when it fails.
	Description() string

	// Domain returns the numeric domain input is converted into.
	Domain() Domain

	// Group returns the engine implementing the kernel.
	Group() Group

	// Exact reports whether the result is an element of the input, which a
	// reference must reproduce bit for bit.
	Exact() bool

	// Compute evaluates the kernel. xs is never modified.
	Compute(xs []float64, params Params) (float64, error)
}

// KernelMeta holds the common metadata for a kernel.
// Embed this in kernel implementations to satisfy the metadata methods.
type KernelMeta struct {
	KernelName        string
	KernelDisplayName string
	KernelDescription string
	KernelDomain      Domain
	KernelGroup       Group
	KernelExact       bool
}

// Name returns the entry point name.
func (m KernelMeta) Name() string { return m.KernelName }

// DisplayName returns a human-readable name.
func (m KernelMeta) DisplayName() string { return m.KernelDisplayName }

// Description returns the kernel documentation.
func (m KernelMeta) Description() string { return m.KernelDescription }

// Domain returns the numeric domain.
func (m KernelMeta) Domain() Domain { return m.KernelDomain }

// Group returns the engine.
func (m KernelMeta) Group() Group { return m.KernelGroup }

// Exact reports whether results are input elements.
func (m KernelMeta) Exact() bool { return m.KernelExact }

// Func adapts a plain function to the Kernel interface.
type Func struct {
	KernelMeta

	Fn func(xs []float64, params Params) (float64, error)
}

// Compute invokes the wrapped function.
func (f *Func) Compute(xs []float64, params Params) (float64, error) {
	return f.Fn(xs, params)
}

// Registry holds kernels by name.
type Registry struct {
	kernels map[string]Kernel
}

// NewRegistry creates an empty kernel registry.
func NewRegistry() *Registry {
	return &Registry{kernels: make(map[string]Kernel)}
}

// Register adds a kernel, replacing any kernel registered under the same name.
func (r *Registry) Register(k Kernel) {
	r.kernels[k.Name()] = k
}

// Get retrieves a kernel by name.
func (r *Registry) Get(name string) (Kernel, bool) {
	k, ok := r.kernels[name]

	return k, ok
}

// Lookup retrieves a kernel by name, failing with ErrUnknownKernel.
func (r *Registry) Lookup(name string) (Kernel, error) {
	k, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}

	return k, nil
}

// Names returns all registered kernel names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kernels))

	for name := range r.kernels {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Kernels returns all registered kernels ordered by name.
func (r *Registry) Kernels() []Kernel {
	names := r.Names()
	out := make([]Kernel, 0, len(names))

	for _, name := range names {
		out = append(out, r.kernels[name])
	}

	return out
}

// Len returns the number of registered kernels.
func (r *Registry) Len() int {
	return len(r.kernels)
}
