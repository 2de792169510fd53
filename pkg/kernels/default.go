package kernels

import (
	"fmt"

	"github.com/Sumatoshi-tech/faststat/pkg/alg/dispersion"
	"github.com/Sumatoshi-tech/faststat/pkg/alg/mode"
	"github.com/Sumatoshi-tech/faststat/pkg/alg/selection"
	"github.com/Sumatoshi-tech/faststat/pkg/alg/stats"
)

// Default returns a registry holding every kernel under its stable name.
func Default() *Registry {
	reg := NewRegistry()

	registerDispersion(reg)
	registerSelection(reg)
	registerMode(reg)

	return reg
}

// floatKernel lifts an aggregate over T into a Kernel over host sequences.
func floatKernel[T stats.Number](km KernelMeta, fn func([]T) (float64, error)) *Func {
	return &Func{
		KernelMeta: km,
		Fn: func(xs []float64, _ Params) (float64, error) {
			ys, err := convert[T](xs)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", km.KernelName, err)
			}

			return fn(ys)
		},
	}
}

// valueKernel lifts an operation returning a domain value into a Kernel.
func valueKernel[T stats.Number](km KernelMeta, fn func([]T, Params) (T, error)) *Func {
	km.KernelExact = true

	return &Func{
		KernelMeta: km,
		Fn: func(xs []float64, params Params) (float64, error) {
			ys, err := convert[T](xs)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", km.KernelName, err)
			}

			v, err := fn(ys, params)
			if err != nil {
				return 0, err
			}

			return float64(v), nil
		},
	}
}

func meta(name, display, description string, domain Domain, group Group) KernelMeta {
	return KernelMeta{
		KernelName:        name,
		KernelDisplayName: display,
		KernelDescription: description,
		KernelDomain:      domain,
		KernelGroup:       group,
	}
}

func registerDispersion(reg *Registry) {
	const (
		avgDesc = "Arithmetic mean. Fails with empty_input on an empty sequence."
		varDesc = "Fails with insufficient_data below two elements."
	)

	reg.Register(floatKernel(meta("avg_float", "Mean (float)", avgDesc, DomainFloat, GroupDispersion),
		dispersion.Mean[float64]))
	reg.Register(floatKernel(meta("avg_int", "Mean (int)", avgDesc, DomainInt64, GroupDispersion),
		dispersion.Mean[int64]))
	reg.Register(floatKernel(meta("avg_uint", "Mean (uint)", avgDesc, DomainUint64, GroupDispersion),
		dispersion.Mean[uint64]))
	reg.Register(floatKernel(meta("harmonic_mean", "Harmonic Mean",
		"n divided by the sum of reciprocals. Fails with domain_error on zero or negative values.",
		DomainFloat, GroupDispersion), dispersion.HarmonicMean[float64]))
	reg.Register(floatKernel(meta("variance", "Sample Variance",
		"Sum of squared deviations divided by n-1. "+varDesc, DomainFloat, GroupDispersion),
		dispersion.Variance[float64]))
	reg.Register(floatKernel(meta("pvariance", "Population Variance",
		"Sum of squared deviations divided by n. "+varDesc, DomainFloat, GroupDispersion),
		dispersion.PVariance[float64]))
	reg.Register(floatKernel(meta("stdev", "Sample Standard Deviation",
		"Square root of the sample variance. "+varDesc, DomainFloat, GroupDispersion),
		dispersion.Stdev[float64]))
	reg.Register(floatKernel(meta("pstdev", "Population Standard Deviation",
		"Square root of the population variance. "+varDesc, DomainFloat, GroupDispersion),
		dispersion.Pstdev[float64]))
}

func registerSelection(reg *Registry) {
	registerSelectionDomain[float64](reg, "float", DomainFloat)
	registerSelectionDomain[int64](reg, "int", DomainInt64)
	registerSelectionDomain[uint64](reg, "uint", DomainUint64)
	registerSelectionDomain[float32](reg, "float32", DomainFloat32)
	registerSelectionDomain[int32](reg, "int32", DomainInt32)
	registerSelectionDomain[uint32](reg, "uint32", DomainUint32)

	reg.Register(&Func{
		KernelMeta: meta("median_grouped", "Grouped Median",
			"Median of continuous data grouped in classes of width interval. "+
				"Fails with invalid_range when interval is not positive.",
			DomainFloat, GroupSelection),
		Fn: func(xs []float64, params Params) (float64, error) {
			return selection.MedianGrouped(xs, params.Interval)
		},
	})

	// kth_element is the historical untyped alias of kth_element_float.
	kth, _ := reg.Get("kth_element_float")
	alias := meta("kth_element", "K-th Element", kth.Description(), DomainFloat, GroupSelection)
	alias.KernelExact = true

	reg.Register(&Func{KernelMeta: alias, Fn: kth.Compute})
}

func registerSelectionDomain[T stats.Number](reg *Registry, suffix string, domain Domain) {
	reg.Register(floatKernel(meta("median_"+suffix, "Median ("+suffix+")",
		"Middle value; mean of the two middle values for even length. Fails with empty_input.",
		domain, GroupSelection), selection.Median[T]))
	reg.Register(valueKernel(meta("median_low_"+suffix, "Low Median ("+suffix+")",
		"Middle value; the smaller middle value for even length. Fails with empty_input.",
		domain, GroupSelection), func(xs []T, _ Params) (T, error) { return selection.MedianLow(xs) }))
	reg.Register(valueKernel(meta("median_high_"+suffix, "High Median ("+suffix+")",
		"Middle value; the larger middle value for even length. Fails with empty_input.",
		domain, GroupSelection), func(xs []T, _ Params) (T, error) { return selection.MedianHigh(xs) }))
	reg.Register(valueKernel(meta("kth_element_"+suffix, "K-th Element ("+suffix+")",
		"Element of rank k in ascending order. Fails with invalid_range when k is out of bounds.",
		domain, GroupSelection), func(xs []T, p Params) (T, error) { return selection.KthElement(xs, p.K) }))
}

func registerMode(reg *Registry) {
	registerModeDomain[float64](reg, "mode_float", DomainFloat)
	registerModeDomain[int64](reg, "mode_int", DomainInt64)
	registerModeDomain[uint64](reg, "mode_uint", DomainUint64)

	registerModeDomain[float32](reg, "mode_float32", DomainFloat32)
	registerModeDomain[float64](reg, "mode_float64", DomainFloat)
	registerModeDomain[int8](reg, "mode_int8", DomainInt8)
	registerModeDomain[int16](reg, "mode_int16", DomainInt16)
	registerModeDomain[int32](reg, "mode_int32", DomainInt32)
	registerModeDomain[int64](reg, "mode_int64", DomainInt64)
	registerModeDomain[uint8](reg, "mode_uint8", DomainUint8)
	registerModeDomain[uint16](reg, "mode_uint16", DomainUint16)
	registerModeDomain[uint32](reg, "mode_uint32", DomainUint32)
	registerModeDomain[uint64](reg, "mode_uint64", DomainUint64)
}

func registerModeDomain[T stats.Number](reg *Registry, name string, domain Domain) {
	reg.Register(valueKernel(meta(name, "Mode ("+string(domain)+")",
		"Most frequent value; ties go to the value seen first. Fails with empty_input.",
		domain, GroupMode), func(xs []T, _ Params) (T, error) { return mode.Mode(xs) }))
}
