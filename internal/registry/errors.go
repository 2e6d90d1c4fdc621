package registry

import (
	"errors"
	"fmt"
)

// ErrDuplicateMetric reports registration of an id that is already present.
var ErrDuplicateMetric = errors.New("duplicate metric id")

// ErrMetricNotFound reports lookup or computation of an unknown metric id.
var ErrMetricNotFound = errors.New("metric not found")

// ValidationError reports a malformed metric spec at registration time.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid metric spec: %s %s", e.Field, e.Reason)
}

// MissingDependencyError reports that a metric's declared context requirement
// was not satisfied on a direct compute call. Key names the first unmet
// requirement.
type MissingDependencyError struct {
	MetricID string
	Key      string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("metric %q requires context key %q", e.MetricID, e.Key)
}
