// Package registry implements the metric directory: registration and lookup
// of metric specs, and dependency-aware dispatch over the registered metric
// functions.
package registry

import (
	"fmt"
	"unicode"
)

// MetricFn computes one metric over a pair of token sequences. The context
// map carries optional runtime dependencies (smoothing constants, boundary
// token sets). Returned keys are bare sub-metric names; the registry prefixes
// them with the metric id.
type MetricFn func(before, after []int, context map[string]interface{}) map[string]float64

// Semantics describes how a metric's values should be interpreted. It is
// purely descriptive metadata for consumers (display, aggregation); nothing
// here is enforced at computation time.
type Semantics struct {
	// Type categorizes the metric: "distance", "distribution", "structure",
	// or "complexity".
	Type string
	// HigherIsWorse is true for distances, false for similarities, nil when
	// direction is context dependent.
	HigherIsWorse *bool
	// Symmetric reports whether swapping before and after leaves the value
	// unchanged.
	Symmetric bool
	// Bounded holds the [min, max] value range, when one exists.
	Bounded *[2]float64
}

// NormHints carries display normalization hints for a metric.
type NormHints struct {
	// DefaultRange suggests axis bounds for visualization.
	DefaultRange [2]float64
	// PreferredTransform names the scale transform: "identity" or "log".
	PreferredTransform string
}

// MetricSpec is the immutable descriptor binding a metric id to its function
// and metadata.
type MetricSpec struct {
	// ID is the unique bare-identifier key, e.g. "ned".
	ID string
	// Name is the human-readable display name.
	Name string
	// Fn is the computation function.
	Fn MetricFn
	// Semantics is descriptive interpretation metadata.
	Semantics Semantics
	// Norm holds display normalization hints.
	Norm NormHints
	// Requires lists the context keys Fn needs; compute fails and computeAll
	// skips when one is absent.
	Requires []string
}

// Registry owns the id -> spec mapping. It is mutated only through Register
// and Unregister, preserves registration order for listing, and provides no
// internal synchronization: callers sharing a registry across goroutines must
// lock externally.
type Registry struct {
	specs map[string]MetricSpec
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{specs: make(map[string]MetricSpec)}
}

// Register adds a metric spec. The id must be a bare identifier and unused;
// the name must be non-empty; the function must be set.
func (r *Registry) Register(spec MetricSpec) error {
	if !isIdentifier(spec.ID) {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a bare identifier", spec.ID)}
	}
	if spec.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if spec.Fn == nil {
		return &ValidationError{Field: "fn", Reason: "must not be nil"}
	}
	if _, exists := r.specs[spec.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateMetric, spec.ID)
	}

	r.specs[spec.ID] = spec
	r.order = append(r.order, spec.ID)
	return nil
}

// Unregister removes a metric by id.
func (r *Registry) Unregister(id string) error {
	if _, exists := r.specs[id]; !exists {
		return fmt.Errorf("%w: %q", ErrMetricNotFound, id)
	}

	delete(r.specs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the spec registered under id.
func (r *Registry) Get(id string) (MetricSpec, bool) {
	spec, ok := r.specs[id]
	return spec, ok
}

// ListMetrics returns all registered specs in registration order.
func (r *Registry) ListMetrics() []MetricSpec {
	out := make([]MetricSpec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.specs[id])
	}
	return out
}

// MetricIDs returns the registered ids in registration order.
func (r *Registry) MetricIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	_, ok := r.specs[id]
	return ok
}

// Compute runs a single metric by id and prefixes every returned key with
// "{id}.". It fails with ErrMetricNotFound for an unknown id, and with
// MissingDependencyError naming the first unmet requirement when the context
// lacks a declared dependency.
func (r *Registry) Compute(id string, before, after []int, context map[string]interface{}) (map[string]float64, error) {
	spec, ok := r.specs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMetricNotFound, id)
	}

	if key, ok := unmetRequirement(spec, context); ok {
		return nil, &MissingDependencyError{MetricID: id, Key: key}
	}

	if context == nil {
		context = map[string]interface{}{}
	}

	raw := spec.Fn(before, after, context)
	prefixed := make(map[string]float64, len(raw))
	for k, v := range raw {
		prefixed[id+"."+k] = v
	}
	return prefixed, nil
}

// ComputeAll runs every registered metric and merges the prefixed outputs
// into one flat map. A metric whose declared requirements are not met by the
// context is silently skipped rather than failing the whole pass, so one
// registry can serve callers with partial capability.
func (r *Registry) ComputeAll(before, after []int, context map[string]interface{}) map[string]float64 {
	if context == nil {
		context = map[string]interface{}{}
	}

	results := make(map[string]float64)
	for _, id := range r.order {
		spec := r.specs[id]
		if _, missing := unmetRequirement(spec, context); missing {
			continue
		}
		for k, v := range spec.Fn(before, after, context) {
			results[id+"."+k] = v
		}
	}
	return results
}

// unmetRequirement returns the first declared context key absent from the
// context, if any.
func unmetRequirement(spec MetricSpec, context map[string]interface{}) (string, bool) {
	for _, key := range spec.Requires {
		if _, ok := context[key]; !ok {
			return key, true
		}
	}
	return "", false
}

// isIdentifier reports whether s is a bare identifier: a letter or underscore
// followed by letters, digits, or underscores. Letters are Unicode, not just
// ASCII.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
