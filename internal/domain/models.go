package domain

import "time"

// Sample is one fresh reading of a resource's usage. It is produced on
// every tick and never cached or persisted.
type Sample struct {
	Fraction   float64 `json:"fraction"`
	UsedBytes  uint64  `json:"used_bytes"`
	TotalBytes uint64  `json:"total_bytes"`
}

// NewSample derives the utilization fraction from raw counters.
// A zero total yields fraction 0, not a division error.
func NewSample(used, total uint64) Sample {
	s := Sample{UsedBytes: used, TotalBytes: total}
	if total > 0 {
		s.Fraction = float64(used) / float64(total)
	}
	return s
}

// TargetStatus is the latest observed state of one monitored target,
// as exposed by the status API.
type TargetStatus struct {
	Name        string    `json:"name"`
	Fraction    float64   `json:"fraction"`
	UsedBytes   uint64    `json:"used_bytes"`
	TotalBytes  uint64    `json:"total_bytes"`
	Above       bool      `json:"above"`
	LastAlertAt time.Time `json:"last_alert_at"`
	SampledAt   time.Time `json:"sampled_at"`
	LastError   string    `json:"last_error,omitempty"`
}
